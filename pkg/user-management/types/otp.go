package types

import "time"

// OTP is the pending second factor for a sign-in attempt. At most one live
// record exists per uid; a new sign-in overwrites the previous one.
type OTP struct {
	UID       string    `bson:"uid" json:"uid"`
	Code      string    `bson:"code" json:"code"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

func (o OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
