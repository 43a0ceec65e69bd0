package usermanagement

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrOtpNotFound = errors.New("otp expired or not found")
	ErrOtpExpired  = errors.New("otp expired")
	ErrOtpMismatch = errors.New("otp does not match")

	ErrReasonRequired          = errors.New("reason is required when marking the account open status as not done")
	ErrInvalidManagerReference = errors.New("one or more managers not found or invalid")
	ErrInvalidFieldValue       = errors.New("invalid value for field")
)
