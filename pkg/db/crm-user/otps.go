package crmuser

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
)

const (
	OTP_TTL = 60 * 5 // seconds
)

func (dbService *CRMUserDBService) CreateIndexesForOTPs() {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOTPs().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "uid", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "createdAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(OTP_TTL),
			},
		},
	)
	if err != nil {
		slog.Error("Error creating indexes for otps", slog.String("error", err.Error()))
	}
}

// UpsertOTP stores a pending code for the uid, replacing any previous
// unconsumed one.
func (dbService *CRMUserDBService) UpsertOTP(uid string, code string) (userTypes.OTP, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now()
	otp := userTypes.OTP{
		UID:       uid,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(OTP_TTL * time.Second),
	}
	_, err := dbService.collectionOTPs().ReplaceOne(
		ctx,
		bson.M{"uid": uid},
		otp,
		options.Replace().SetUpsert(true),
	)
	return otp, err
}

func (dbService *CRMUserDBService) FindOTP(uid string) (userTypes.OTP, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var otp userTypes.OTP
	err := dbService.collectionOTPs().FindOne(ctx, bson.M{"uid": uid}).Decode(&otp)
	return otp, err
}

func (dbService *CRMUserDBService) DeleteOTP(uid string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOTPs().DeleteOne(ctx, bson.M{"uid": uid})
	return err
}
