package apihandlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	usermanagement "github.com/crarsdecor/CRM/pkg/user-management"
	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// stubUserDB serves the handler and user management interfaces with canned
// responses.
type stubUserDB struct {
	users       []umTypes.User
	managerRefs []umTypes.ManagerRef
	userByUID   map[string]umTypes.User
	uidErr      error
}

func (db *stubUserDB) AddUser(user umTypes.User) (umTypes.User, error) {
	user.ID = primitive.NewObjectID()
	return user, nil
}

func (db *stubUserDB) GetUserByUID(uid string) (umTypes.User, error) {
	if db.uidErr != nil {
		return umTypes.User{}, db.uidErr
	}
	user, ok := db.userByUID[uid]
	if !ok {
		return umTypes.User{}, mongo.ErrNoDocuments
	}
	return user, nil
}

func (db *stubUserDB) GetUserByID(id string) (umTypes.User, error) {
	return umTypes.User{}, mongo.ErrNoDocuments
}

func (db *stubUserDB) GetUsers(role string, managerID string) ([]umTypes.User, error) {
	return db.users, nil
}

func (db *stubUserDB) HasUserWithRole(role string) (bool, error) {
	return false, nil
}

func (db *stubUserDB) CountUsersWithRole(ids []primitive.ObjectID, role string) (int64, error) {
	return int64(len(ids)), nil
}

func (db *stubUserDB) GetManagerRefs(ids []primitive.ObjectID) ([]umTypes.ManagerRef, error) {
	return db.managerRefs, nil
}

func (db *stubUserDB) UpdateUserFields(id string, fields bson.M) (umTypes.User, error) {
	return umTypes.User{}, mongo.ErrNoDocuments
}

func (db *stubUserDB) DeleteUser(id string) error { return mongo.ErrNoDocuments }

func (db *stubUserDB) UpsertOTP(uid string, code string) (umTypes.OTP, error) {
	return umTypes.OTP{UID: uid, Code: code}, nil
}

func (db *stubUserDB) FindOTP(uid string) (umTypes.OTP, error) {
	return umTypes.OTP{}, mongo.ErrNoDocuments
}

func (db *stubUserDB) DeleteOTP(uid string) error { return nil }

func TestGetUsersResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	managerID := primitive.NewObjectID()
	db := &stubUserDB{
		users: []umTypes.User{
			{ID: primitive.NewObjectID(), UID: "MGR-1", Name: "Manager", Role: umTypes.ROLE_MANAGER},
			{ID: primitive.NewObjectID(), UID: "CL-1001", Name: "Client", Role: umTypes.ROLE_USER, Managers: []primitive.ObjectID{managerID}},
		},
		managerRefs: []umTypes.ManagerRef{{ID: managerID, Name: "Manager", Email: "manager@local"}},
	}
	h := NewHTTPHandler("test-key", time.Hour, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/users", nil)

	h.getUsers(c)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	// the list endpoint responds with a bare array, not a wrapper object
	var accounts []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("response should be a JSON array: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("unexpected number of accounts: %d", len(accounts))
	}
	if accounts[0]["uid"] != "MGR-1" {
		t.Errorf("unexpected first account: %v", accounts[0])
	}
}

func TestSigninErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	callSignin := func(db *stubUserDB) *httptest.ResponseRecorder {
		usermanagement.Init(db)
		h := NewHTTPHandler("test-key", time.Hour, db)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/auth/signin", strings.NewReader(`{"uid":"CL-1001","password":"pw"}`))
		h.signinWithPassword(c)
		return w
	}

	t.Run("with unknown uid", func(t *testing.T) {
		w := callSignin(&stubUserDB{userByUID: map[string]umTypes.User{}})
		if w.Code != http.StatusNotFound {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with a failing account lookup", func(t *testing.T) {
		// transport failures must not masquerade as bad credentials
		w := callSignin(&stubUserDB{uidErr: errors.New("connection reset by peer")})
		if w.Code != http.StatusInternalServerError {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}
