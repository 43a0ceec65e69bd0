package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/crarsdecor/CRM/pkg/apihelpers/middlewares"
	jwthandling "github.com/crarsdecor/CRM/pkg/jwt-handling"
	usermanagement "github.com/crarsdecor/CRM/pkg/user-management"
	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	umUtils "github.com/crarsdecor/CRM/pkg/user-management/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *HttpEndpoints) AddUserManagementAPI(rg *gin.RouterGroup) {
	usersGroup := rg.Group("/users")
	usersGroup.Use(mw.GetAndValidateCRMUserJWT(h.tokenSignKey))
	{
		usersGroup.POST("", mw.RequirePayload(), mw.IsAdminUser(), h.createUser)
		usersGroup.GET("", h.getUsers)
		usersGroup.GET("/:userId", h.getUser)
		usersGroup.PUT("/:userId", mw.RequirePayload(), mw.RequireRole(umTypes.ROLE_ADMIN, umTypes.ROLE_MANAGER, umTypes.ROLE_ACCOUNTANT), h.updateUser)
		usersGroup.PUT("/update/:userId", mw.RequirePayload(), mw.RequireRole(umTypes.ROLE_ADMIN, umTypes.ROLE_MANAGER, umTypes.ROLE_ACCOUNTANT), h.updateUserDetails)
		usersGroup.DELETE("/:userId", mw.IsAdminUser(), h.deleteUser)
	}
}

type CreateUserReq struct {
	UID        string   `json:"uid"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Role       string   `json:"role"`
	ManagerIDs []string `json:"managerIds"`
	Service    *string  `json:"service"`
	umTypes.Workflow
}

func (h *HttpEndpoints) createUser(c *gin.Context) {
	var req CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UID == "" || req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if !umTypes.IsValidRole(req.Role) || req.Role == umTypes.ROLE_ADMIN {
		slog.Error("invalid role in create user request", slog.String("role", req.Role))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	managerIDs := make([]primitive.ObjectID, 0, len(req.ManagerIDs))
	for _, idStr := range req.ManagerIDs {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manager reference"})
			return
		}
		managerIDs = append(managerIDs, id)
	}

	if req.Role == umTypes.ROLE_USER {
		if len(managerIDs) < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one manager is required"})
			return
		}
	}
	if len(managerIDs) > 0 {
		count, err := h.crmUserDBConn.CountUsersWithRole(managerIDs, umTypes.ROLE_MANAGER)
		if err != nil {
			slog.Error("failed to resolve manager references", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
		if count != int64(len(managerIDs)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manager reference"})
			return
		}
	}

	user, err := h.crmUserDBConn.AddUser(umTypes.User{
		UID:      umUtils.SanitizeUID(req.UID),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Managers: managerIDs,
		Service:  req.Service,
		Workflow: req.Workflow,
	})
	if err != nil {
		slog.Error("failed to create user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	slog.Info("user created", slog.String("uid", user.UID), slog.String("role", user.Role))
	c.JSON(http.StatusCreated, gin.H{"message": "user created", "user": user})
}

func (h *HttpEndpoints) getUsers(c *gin.Context) {
	role := c.DefaultQuery("role", "")
	managerID := c.DefaultQuery("managerId", "")

	users, err := h.crmUserDBConn.GetUsers(role, managerID)
	if err != nil {
		slog.Error("failed to fetch users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	refsByID, err := h.lookupManagerRefs(users)
	if err != nil {
		slog.Error("failed to resolve manager references", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	views := make([]gin.H, 0, len(users))
	for _, user := range users {
		views = append(views, adminUserView(user, pickManagerRefs(user, refsByID)))
	}
	c.JSON(http.StatusOK, views)
}

func (h *HttpEndpoints) getUser(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.CRMUserClaims)
	userID := c.Param("userId")

	if token.Role == umTypes.ROLE_USER && token.Subject != userID {
		slog.Warn("client tried to access foreign account", slog.String("userID", token.Subject))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
		return
	}

	user, err := h.crmUserDBConn.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	switch token.Role {
	case umTypes.ROLE_ADMIN:
		refs, err := h.crmUserDBConn.GetManagerRefs(user.Managers)
		if err != nil {
			slog.Error("failed to resolve manager references", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": adminUserView(user, refs)})
	case umTypes.ROLE_MANAGER, umTypes.ROLE_ACCOUNTANT:
		c.JSON(http.StatusOK, gin.H{"user": managerUserView(user)})
	default:
		c.JSON(http.StatusOK, gin.H{"user": clientUserView(user)})
	}
}

func (h *HttpEndpoints) updateUser(c *gin.Context) {
	userID := c.Param("userId")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd, err := usermanagement.BuildAccountUpdate(updates)
	if err != nil {
		switch {
		case errors.Is(err, usermanagement.ErrInvalidManagerReference):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manager reference"})
		case errors.Is(err, usermanagement.ErrReasonRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required when status is false"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	if upd.HasManagerIDs {
		count, err := h.crmUserDBConn.CountUsersWithRole(upd.ManagerIDs, umTypes.ROLE_MANAGER)
		if err != nil {
			slog.Error("failed to resolve manager references", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
		if count != int64(len(upd.ManagerIDs)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manager reference"})
			return
		}
		upd.Set["managers"] = upd.ManagerIDs
	}

	if len(upd.Set) < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields in payload"})
		return
	}

	user, err := h.crmUserDBConn.UpdateUserFields(userID, upd.Set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("failed to update user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated", "user": user})
}

type UpdateUserDetailsReq struct {
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	EnrollmentIDAmazon  *string `json:"enrollmentIdAmazon"`
	EnrollmentIDWebsite *string `json:"enrollmentIdWebsite"`
	PrimaryContact      *string `json:"primaryContact"`
}

func (h *HttpEndpoints) updateUserDetails(c *gin.Context) {
	userID := c.Param("userId")

	var req UpdateUserDetailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	set := bson.M{
		"name":  req.Name,
		"email": req.Email,
	}
	if req.EnrollmentIDAmazon != nil {
		set["enrollmentIdAmazon"] = *req.EnrollmentIDAmazon
	}
	if req.EnrollmentIDWebsite != nil {
		set["enrollmentIdWebsite"] = *req.EnrollmentIDWebsite
	}
	if req.PrimaryContact != nil {
		set["primaryContact"] = *req.PrimaryContact
	}

	user, err := h.crmUserDBConn.UpdateUserFields(userID, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("failed to update user details", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated", "user": user})
}

func (h *HttpEndpoints) deleteUser(c *gin.Context) {
	userID := c.Param("userId")

	err := usermanagement.DeleteUser(userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("failed to delete user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	slog.Info("user deleted", slog.String("userID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// lookupManagerRefs resolves the union of manager references of the given
// users with a single query.
func (h *HttpEndpoints) lookupManagerRefs(users []umTypes.User) (map[primitive.ObjectID]umTypes.ManagerRef, error) {
	idSet := map[primitive.ObjectID]struct{}{}
	for _, user := range users {
		for _, id := range user.Managers {
			idSet[id] = struct{}{}
		}
	}
	refsByID := make(map[primitive.ObjectID]umTypes.ManagerRef, len(idSet))
	if len(idSet) < 1 {
		return refsByID, nil
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	refs, err := h.crmUserDBConn.GetManagerRefs(ids)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		refsByID[ref.ID] = ref
	}
	return refsByID, nil
}

func pickManagerRefs(user umTypes.User, refsByID map[primitive.ObjectID]umTypes.ManagerRef) []umTypes.ManagerRef {
	refs := make([]umTypes.ManagerRef, 0, len(user.Managers))
	for _, id := range user.Managers {
		if ref, ok := refsByID[id]; ok {
			refs = append(refs, ref)
		}
	}
	return refs
}
