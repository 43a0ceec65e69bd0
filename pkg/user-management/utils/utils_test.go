package utils

import (
	"testing"
)

func TestGenerateOTPCode(t *testing.T) {
	t.Run("with length 6", func(t *testing.T) {
		code, err := GenerateOTPCode(6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Errorf("unexpected code length: %d", len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Errorf("unexpected character in code: %s", code)
			}
		}
	})
}

func TestComparePasswords(t *testing.T) {
	t.Run("with matching passwords", func(t *testing.T) {
		if !ComparePasswords("secret123", "secret123") {
			t.Error("should be true")
		}
	})
	t.Run("with wrong password", func(t *testing.T) {
		if ComparePasswords("secret123", "secret124") {
			t.Error("should be false")
		}
	})
	t.Run("with different lengths", func(t *testing.T) {
		if ComparePasswords("secret123", "secret1234") {
			t.Error("should be false")
		}
	})
}

func TestCoerceBool(t *testing.T) {
	t.Run("with booleans", func(t *testing.T) {
		v, ok := CoerceBool(true)
		if !ok || !v {
			t.Error("should coerce true")
		}
		v, ok = CoerceBool(false)
		if !ok || v {
			t.Error("should coerce false")
		}
	})
	t.Run("with strings", func(t *testing.T) {
		v, ok := CoerceBool("true")
		if !ok || !v {
			t.Error("should coerce \"true\"")
		}
		v, ok = CoerceBool(" False ")
		if !ok || v {
			t.Error("should coerce \" False \"")
		}
	})
	t.Run("with unsupported values", func(t *testing.T) {
		if _, ok := CoerceBool(1); ok {
			t.Error("numbers should not coerce")
		}
		if _, ok := CoerceBool("yes"); ok {
			t.Error("arbitrary strings should not coerce")
		}
	})
}
