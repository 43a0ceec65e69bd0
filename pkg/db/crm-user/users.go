package crmuser

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
)

func (dbService *CRMUserDBService) CreateIndexesForUsers() {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionUsers().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "uid", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
			{
				Keys: bson.D{{Key: "role", Value: 1}},
			},
			{
				Keys: bson.D{{Key: "managers", Value: 1}},
			},
			{
				Keys: bson.D{{Key: "createdAt", Value: 1}},
			},
		},
	)
	if err != nil {
		slog.Error("Error creating indexes for users", slog.String("error", err.Error()))
	}
}

func (dbService *CRMUserDBService) AddUser(user userTypes.User) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	res, err := dbService.collectionUsers().InsertOne(ctx, user)
	if err != nil {
		return user, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (dbService *CRMUserDBService) GetUserByUID(uid string) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var user userTypes.User
	err := dbService.collectionUsers().FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	return user, err
}

func (dbService *CRMUserDBService) GetUserByID(id string) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var user userTypes.User
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user, err
	}
	err = dbService.collectionUsers().FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	return user, err
}

// GetUsers returns accounts filtered by role and/or assigned manager. Empty
// filter values are ignored.
func (dbService *CRMUserDBService) GetUsers(role string, managerID string) ([]userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	if managerID != "" {
		objID, err := primitive.ObjectIDFromHex(managerID)
		if err != nil {
			return nil, err
		}
		filter["managers"] = objID
	}

	cursor, err := dbService.collectionUsers().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []userTypes.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsersWithRole counts accounts out of the given id list that have the
// expected role. Used to validate manager reference lists.
func (dbService *CRMUserDBService) CountUsersWithRole(ids []primitive.ObjectID, role string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"_id":  bson.M{"$in": ids},
		"role": role,
	}
	return dbService.collectionUsers().CountDocuments(ctx, filter)
}

func (dbService *CRMUserDBService) HasUserWithRole(role string) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	count, err := dbService.collectionUsers().CountDocuments(ctx, bson.M{"role": role}, options.Count().SetLimit(1))
	return count > 0, err
}

// GetManagerRefs fetches the name and email of the given manager accounts,
// for populating manager references in responses.
func (dbService *CRMUserDBService) GetManagerRefs(ids []primitive.ObjectID) ([]userTypes.ManagerRef, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "email", Value: 1},
	})
	cursor, err := dbService.collectionUsers().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	refs := []userTypes.ManagerRef{}
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// UpdateUserFields applies the given field/value pairs as a flat $set on the
// account document and returns the updated record. Values must already be
// validated and coerced by the caller.
func (dbService *CRMUserDBService) UpdateUserFields(id string, fields bson.M) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var user userTypes.User
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user, err
	}

	fields["updatedAt"] = time.Now()
	err = dbService.collectionUsers().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	return user, err
}

func (dbService *CRMUserDBService) DeleteUser(id string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := dbService.collectionUsers().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindAndExecuteOnUsers iterates all matching accounts and calls fn for each
// one. Used by the export job to stream the full collection.
func (dbService *CRMUserDBService) FindAndExecuteOnUsers(
	ctx context.Context,
	filter bson.M,
	fn func(user userTypes.User) error,
) error {
	opts := options.Find()
	if dbService.noCursorTimeout {
		opts.SetNoCursorTimeout(true)
	}

	cursor, err := dbService.collectionUsers().Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user userTypes.User
		if err := cursor.Decode(&user); err != nil {
			slog.Error("Error decoding user during iteration", slog.String("error", err.Error()))
			continue
		}
		if err := fn(user); err != nil {
			return err
		}
	}
	return cursor.Err()
}
