package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a token encodes
type CRMUserClaims struct {
	UID  string `json:"uid,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewCRMUserToken(
	expiresIn time.Duration,
	id string,
	uid string,
	role string,
	secretKey string,
) (tokenString string, err error) {
	claims := CRMUserClaims{
		uid,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   id,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateCRMUserToken(tokenString string, secretKey string) (claims *CRMUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &CRMUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*CRMUserClaims)
	valid = valid && token.Valid
	return
}
