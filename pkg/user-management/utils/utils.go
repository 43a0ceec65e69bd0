package utils

import (
	"crypto/subtle"
	"strings"
)

// SanitizeUID normalizes a client identifier for lookups.
func SanitizeUID(uid string) string {
	return strings.TrimSpace(uid)
}

// ComparePasswords checks the supplied password against the stored one.
// Passwords are stored as provided; the comparison is plain equality done in
// constant time to avoid leaking the match position.
func ComparePasswords(stored string, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// CoerceBool normalizes a status value from the wire. Some call sites submit
// booleans, others the strings "true"/"false"; both are accepted and stored
// as booleans.
func CoerceBool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.TrimSpace(strings.ToLower(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
