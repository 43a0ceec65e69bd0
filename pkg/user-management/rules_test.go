package usermanagement

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildAccountUpdate(t *testing.T) {
	t.Run("with plain field overwrites", func(t *testing.T) {
		upd, err := BuildAccountUpdate(map[string]interface{}{
			"name":            "New Name",
			"dateAmazon":      "2026-01-15",
			"listingsCountIn": float64(42),
			"gmsIn":           float64(1200.5),
			"fbaIn":           true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if upd.Set["name"] != "New Name" {
			t.Errorf("unexpected name: %v", upd.Set["name"])
		}
		if upd.Set["listingsCountIn"] != 42 {
			t.Errorf("unexpected listingsCountIn: %v", upd.Set["listingsCountIn"])
		}
		if upd.Set["gmsIn"] != 1200.5 {
			t.Errorf("unexpected gmsIn: %v", upd.Set["gmsIn"])
		}
		if upd.Set["fbaIn"] != true {
			t.Errorf("unexpected fbaIn: %v", upd.Set["fbaIn"])
		}
	})

	t.Run("unknown keys are dropped", func(t *testing.T) {
		upd, err := BuildAccountUpdate(map[string]interface{}{
			"name":         "x",
			"notAField":    "y",
			"role":         "admin",
			"createdAt":    "2020-01-01",
			"managers":     []interface{}{"abc"},
			"stage4Status": "nope",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(upd.Set) != 1 {
			t.Errorf("unexpected set: %v", upd.Set)
		}
	})

	t.Run("status false without reason is rejected", func(t *testing.T) {
		_, err := BuildAccountUpdate(map[string]interface{}{
			"accountOpenCom": false,
		})
		if !errors.Is(err, ErrReasonRequired) {
			t.Errorf("expected ErrReasonRequired, got: %v", err)
		}
	})

	t.Run("status false with reason passes", func(t *testing.T) {
		upd, err := BuildAccountUpdate(map[string]interface{}{
			"accountOpenCom":       false,
			"accountOpenComReason": "documents missing",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if upd.Set["accountOpenCom"] != false {
			t.Errorf("unexpected accountOpenCom: %v", upd.Set["accountOpenCom"])
		}
		if upd.Set["accountOpenComReason"] != "documents missing" {
			t.Errorf("unexpected reason: %v", upd.Set["accountOpenComReason"])
		}
	})

	t.Run("reason presence forces status to false", func(t *testing.T) {
		// preserved behavior: a reason wins over the requested status value
		upd, err := BuildAccountUpdate(map[string]interface{}{
			"accountOpenIn":       true,
			"accountOpenInReason": "x",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if upd.Set["accountOpenIn"] != false {
			t.Errorf("accountOpenIn should be forced to false, got: %v", upd.Set["accountOpenIn"])
		}
	})

	t.Run("status accepts string booleans", func(t *testing.T) {
		upd, err := BuildAccountUpdate(map[string]interface{}{
			"accountOpenIn": "true",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if upd.Set["accountOpenIn"] != true {
			t.Errorf("unexpected accountOpenIn: %v", upd.Set["accountOpenIn"])
		}

		_, err = BuildAccountUpdate(map[string]interface{}{
			"accountOpenIn": "false",
		})
		if !errors.Is(err, ErrReasonRequired) {
			t.Errorf("expected ErrReasonRequired for string \"false\", got: %v", err)
		}
	})

	t.Run("with manager reassignment", func(t *testing.T) {
		id1 := primitive.NewObjectID()
		id2 := primitive.NewObjectID()
		upd, err := BuildAccountUpdate(map[string]interface{}{
			"managerIds": []interface{}{id1.Hex(), id2.Hex()},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !upd.HasManagerIDs || len(upd.ManagerIDs) != 2 {
			t.Fatalf("unexpected manager ids: %v", upd.ManagerIDs)
		}
		if upd.ManagerIDs[0] != id1 || upd.ManagerIDs[1] != id2 {
			t.Errorf("manager ids do not match input")
		}
	})

	t.Run("with malformed manager id", func(t *testing.T) {
		_, err := BuildAccountUpdate(map[string]interface{}{
			"managerIds": []interface{}{"not-an-object-id"},
		})
		if !errors.Is(err, ErrInvalidManagerReference) {
			t.Errorf("expected ErrInvalidManagerReference, got: %v", err)
		}
	})

	t.Run("with invalid value for a typed field", func(t *testing.T) {
		_, err := BuildAccountUpdate(map[string]interface{}{
			"listingsCountIn": "a lot",
		})
		if !errors.Is(err, ErrInvalidFieldValue) {
			t.Errorf("expected ErrInvalidFieldValue, got: %v", err)
		}
	})
}
