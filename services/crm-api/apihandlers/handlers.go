package apihandlers

import (
	"net/http"
	"time"

	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UserDBService is the slice of the account DB service the handlers use.
// Absent lookups return mongo.ErrNoDocuments.
type UserDBService interface {
	AddUser(user umTypes.User) (umTypes.User, error)
	GetUserByUID(uid string) (umTypes.User, error)
	GetUserByID(id string) (umTypes.User, error)
	GetUsers(role string, managerID string) ([]umTypes.User, error)
	HasUserWithRole(role string) (bool, error)
	CountUsersWithRole(ids []primitive.ObjectID, role string) (int64, error)
	GetManagerRefs(ids []primitive.ObjectID) ([]umTypes.ManagerRef, error)
	UpdateUserFields(id string, fields bson.M) (umTypes.User, error)
}

type HttpEndpoints struct {
	crmUserDBConn  UserDBService
	tokenSignKey   string
	tokenExpiresIn time.Duration
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	crmUserDBConn UserDBService,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:   tokenSignKey,
		tokenExpiresIn: tokenExpiresIn,
		crmUserDBConn:  crmUserDBConn,
	}
}
