package usermanagement

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	userTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	umUtils "github.com/crarsdecor/CRM/pkg/user-management/utils"
)

const OTPCodeLength = 6

// UserDBService is the slice of the account DB service this package needs.
// Absent lookups return mongo.ErrNoDocuments.
type UserDBService interface {
	GetUserByUID(uid string) (userTypes.User, error)
	GetUserByID(id string) (userTypes.User, error)
	DeleteUser(id string) error
	UpsertOTP(uid string, code string) (userTypes.OTP, error)
	FindOTP(uid string) (userTypes.OTP, error)
	DeleteOTP(uid string) error
}

var userDBService UserDBService

func Init(crmUserDBService UserDBService) {
	userDBService = crmUserDBService
}

// CreateSignInOTP generates a fresh 6 digit code for the uid, stores it with
// its expiry (overwriting any previous pending code) and hands it to the
// send callback. The record stays pending until verified or expired.
func CreateSignInOTP(
	uid string,
	send func(code string, expiresAt time.Time) error,
) error {
	code, err := umUtils.GenerateOTPCode(OTPCodeLength)
	if err != nil {
		return err
	}

	otp, err := userDBService.UpsertOTP(uid, code)
	if err != nil {
		return err
	}

	return send(otp.Code, otp.ExpiresAt)
}

// VerifyOTP checks the submitted code against the pending record for the
// uid. The record is deleted on success and on expiry, so a code can be used
// at most once.
func VerifyOTP(uid string, code string) error {
	otp, err := userDBService.FindOTP(uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOtpNotFound
		}
		return err
	}

	if otp.IsExpired(time.Now()) {
		if err := userDBService.DeleteOTP(uid); err != nil {
			return err
		}
		return ErrOtpExpired
	}

	// codes are compared as strings
	if strings.TrimSpace(code) != otp.Code {
		return ErrOtpMismatch
	}

	return userDBService.DeleteOTP(uid)
}

// DeleteUser removes the account and any pending OTP record for it.
func DeleteUser(userID string) error {
	user, err := userDBService.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := userDBService.DeleteUser(userID); err != nil {
		return err
	}

	if user.UID != "" {
		if err := userDBService.DeleteOTP(user.UID); err != nil {
			return err
		}
	}
	return nil
}

// AuthenticateWithPassword resolves the account for the uid and checks the
// supplied password with a constant time comparison.
func AuthenticateWithPassword(uid string, password string) (userTypes.User, error) {
	user, err := userDBService.GetUserByUID(umUtils.SanitizeUID(uid))
	if err != nil {
		return userTypes.User{}, err
	}
	if !umUtils.ComparePasswords(user.Password, password) {
		return userTypes.User{}, ErrInvalidCredentials
	}
	return user, nil
}
