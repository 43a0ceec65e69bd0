package accounts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccountExporter(t *testing.T) {
	t.Run("with no accounts", func(t *testing.T) {
		var buf bytes.Buffer
		ae, err := NewAccountExporter(&buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ae.Finish(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "_id,name,email,createdAt" {
			t.Errorf("unexpected output: %q", buf.String())
		}
		if ae.Count() != 0 {
			t.Errorf("unexpected count: %d", ae.Count())
		}
	})

	t.Run("with accounts", func(t *testing.T) {
		var buf bytes.Buffer
		ae, err := NewAccountExporter(&buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		id := primitive.NewObjectID()
		createdAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
		err = ae.WriteAccount(umTypes.User{
			ID:        id,
			Name:      "Test User",
			Email:     "test@example.com",
			CreatedAt: createdAt,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ae.Finish(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("unexpected number of lines: %d", len(lines))
		}
		want := id.Hex() + ",Test User,test@example.com,2025-03-14T09:30:00Z"
		if lines[1] != want {
			t.Errorf("unexpected record: %q, want %q", lines[1], want)
		}
		if ae.Count() != 1 {
			t.Errorf("unexpected count: %d", ae.Count())
		}
	})
}
