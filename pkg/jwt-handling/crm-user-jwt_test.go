package jwthandling

import (
	"testing"
	"time"
)

func TestCRMUserToken(t *testing.T) {
	signKey := "test-sign-key"

	t.Run("roundtrip keeps subject and role", func(t *testing.T) {
		token, err := GenerateNewCRMUserToken(time.Minute, "507f1f77bcf86cd799439011", "CL-1001", "manager", signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, valid, err := ValidateCRMUserToken(token, signKey)
		if err != nil || !valid {
			t.Fatalf("token should be valid, got err: %v", err)
		}
		if claims.Subject != "507f1f77bcf86cd799439011" {
			t.Errorf("unexpected subject: %s", claims.Subject)
		}
		if claims.UID != "CL-1001" {
			t.Errorf("unexpected uid: %s", claims.UID)
		}
		if claims.Role != "manager" {
			t.Errorf("unexpected role: %s", claims.Role)
		}
	})

	t.Run("with wrong sign key", func(t *testing.T) {
		token, err := GenerateNewCRMUserToken(time.Minute, "id", "uid", "user", signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, err := ValidateCRMUserToken(token, "other-key")
		if err == nil || valid {
			t.Error("token should not validate with wrong key")
		}
	})

	t.Run("with expired token", func(t *testing.T) {
		token, err := GenerateNewCRMUserToken(-time.Minute, "id", "uid", "user", signKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, err := ValidateCRMUserToken(token, signKey)
		if err == nil || valid {
			t.Error("expired token should not validate")
		}
	})
}
