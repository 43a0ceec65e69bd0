package usermanagement

import (
	"errors"
	"testing"
	"time"

	userTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/mongo"
)

type memoryUserDB struct {
	users map[string]userTypes.User
	otps  map[string]userTypes.OTP
}

func newMemoryUserDB() *memoryUserDB {
	return &memoryUserDB{
		users: map[string]userTypes.User{},
		otps:  map[string]userTypes.OTP{},
	}
}

func (db *memoryUserDB) GetUserByUID(uid string) (userTypes.User, error) {
	user, ok := db.users[uid]
	if !ok {
		return userTypes.User{}, mongo.ErrNoDocuments
	}
	return user, nil
}

func (db *memoryUserDB) GetUserByID(id string) (userTypes.User, error) {
	for _, user := range db.users {
		if user.ID.Hex() == id {
			return user, nil
		}
	}
	return userTypes.User{}, mongo.ErrNoDocuments
}

func (db *memoryUserDB) DeleteUser(id string) error {
	for uid, user := range db.users {
		if user.ID.Hex() == id {
			delete(db.users, uid)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (db *memoryUserDB) UpsertOTP(uid string, code string) (userTypes.OTP, error) {
	now := time.Now()
	otp := userTypes.OTP{
		UID:       uid,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
	db.otps[uid] = otp
	return otp, nil
}

func (db *memoryUserDB) FindOTP(uid string) (userTypes.OTP, error) {
	otp, ok := db.otps[uid]
	if !ok {
		return userTypes.OTP{}, mongo.ErrNoDocuments
	}
	return otp, nil
}

func (db *memoryUserDB) DeleteOTP(uid string) error {
	delete(db.otps, uid)
	return nil
}

func TestCreateSignInOTP(t *testing.T) {
	db := newMemoryUserDB()
	Init(db)

	t.Run("stores a 6 digit code and hands it to the sender", func(t *testing.T) {
		var sentCode string
		err := CreateSignInOTP("CL-1001", func(code string, expiresAt time.Time) error {
			sentCode = code
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sentCode) != OTPCodeLength {
			t.Errorf("unexpected code length: %d", len(sentCode))
		}
		if db.otps["CL-1001"].Code != sentCode {
			t.Errorf("stored code does not match sent code")
		}
	})

	t.Run("a new sign-in overwrites the pending code", func(t *testing.T) {
		var sentCode string
		err := CreateSignInOTP("CL-1001", func(code string, expiresAt time.Time) error {
			sentCode = code
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(db.otps) != 1 {
			t.Errorf("unexpected number of pending records: %d", len(db.otps))
		}
		if db.otps["CL-1001"].Code != sentCode {
			t.Errorf("pending record was not replaced with the fresh code")
		}
	})

	t.Run("a failing sender propagates the error", func(t *testing.T) {
		sendErr := errors.New("mailbox unavailable")
		err := CreateSignInOTP("CL-1002", func(code string, expiresAt time.Time) error { return sendErr })
		if !errors.Is(err, sendErr) {
			t.Errorf("expected sender error, got: %v", err)
		}
	})
}

func TestVerifyOTP(t *testing.T) {
	db := newMemoryUserDB()
	Init(db)

	t.Run("with no pending record", func(t *testing.T) {
		err := VerifyOTP("CL-1001", "123456")
		if !errors.Is(err, ErrOtpNotFound) {
			t.Errorf("expected ErrOtpNotFound, got: %v", err)
		}
	})

	t.Run("with wrong code", func(t *testing.T) {
		otp, err := db.UpsertOTP("CL-1001", "123456")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err = VerifyOTP("CL-1001", "654321")
		if !errors.Is(err, ErrOtpMismatch) {
			t.Errorf("expected ErrOtpMismatch, got: %v", err)
		}
		if db.otps["CL-1001"].Code != otp.Code {
			t.Errorf("record should survive a mismatch")
		}
	})

	t.Run("correct code is single use", func(t *testing.T) {
		if _, err := db.UpsertOTP("CL-1001", "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := VerifyOTP("CL-1001", " 123456 "); err != nil {
			t.Fatalf("verification should succeed, got: %v", err)
		}
		err := VerifyOTP("CL-1001", "123456")
		if !errors.Is(err, ErrOtpNotFound) {
			t.Errorf("second use should fail with ErrOtpNotFound, got: %v", err)
		}
	})

	t.Run("expired code is rejected and the record deleted", func(t *testing.T) {
		db.otps["CL-1001"] = userTypes.OTP{
			UID:       "CL-1001",
			Code:      "123456",
			CreatedAt: time.Now().Add(-10 * time.Minute),
			ExpiresAt: time.Now().Add(-5 * time.Minute),
		}
		err := VerifyOTP("CL-1001", "123456")
		if !errors.Is(err, ErrOtpExpired) {
			t.Errorf("expected ErrOtpExpired, got: %v", err)
		}
		if _, ok := db.otps["CL-1001"]; ok {
			t.Errorf("expired record should be deleted")
		}
	})
}

func TestAuthenticateWithPassword(t *testing.T) {
	db := newMemoryUserDB()
	Init(db)
	db.users["CL-1001"] = userTypes.User{
		UID:      "CL-1001",
		Name:     "Test Client",
		Password: "secret123",
		Role:     userTypes.ROLE_USER,
	}

	t.Run("with unknown uid", func(t *testing.T) {
		_, err := AuthenticateWithPassword("CL-9999", "secret123")
		if !errors.Is(err, mongo.ErrNoDocuments) {
			t.Errorf("expected mongo.ErrNoDocuments, got: %v", err)
		}
	})

	t.Run("wrong password never creates a usable code", func(t *testing.T) {
		_, err := AuthenticateWithPassword("CL-1001", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
		if err := VerifyOTP("CL-1001", "123456"); !errors.Is(err, ErrOtpNotFound) {
			t.Errorf("no pending code should exist after a failed login, got: %v", err)
		}
	})

	t.Run("with correct password", func(t *testing.T) {
		user, err := AuthenticateWithPassword(" CL-1001 ", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Name != "Test Client" {
			t.Errorf("unexpected user: %v", user)
		}
	})
}
