package usermanagement

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	umUtils "github.com/crarsdecor/CRM/pkg/user-management/utils"
)

type fieldKind int

const (
	fieldString fieldKind = iota
	fieldBool
	fieldInt
	fieldNumber
)

// updatableFields enumerates every account field the partial update endpoint
// may overwrite, keyed by its document key. Role, id, timestamps and the
// manager list are managed separately and are not listed here.
var updatableFields = map[string]fieldKind{
	"uid":      fieldString,
	"name":     fieldString,
	"email":    fieldString,
	"password": fieldString,
	"service":  fieldString,

	"accountOpenIn":        fieldBool,
	"accountOpenInReason":  fieldString,
	"accountOpenCom":       fieldBool,
	"accountOpenComReason": fieldString,
	"accountLaunchIn":      fieldBool,

	"dateAmazon":          fieldString,
	"dateWebsite":         fieldString,
	"batchAmazon":         fieldString,
	"batchWebsite":        fieldString,
	"enrollmentIdAmazon":  fieldString,
	"enrollmentIdWebsite": fieldString,
	"primaryContact":      fieldString,

	"legalityAmazon":      fieldBool,
	"legalityAmazonDate":  fieldString,
	"legalityAmazonLink":  fieldString,
	"legalityWebsite":     fieldBool,
	"legalityWebsiteDate": fieldString,
	"legalityWebsiteLink": fieldString,

	"accountStatusIn":     fieldString,
	"accountStatusCom":    fieldString,
	"accountStatusGplIn":  fieldString,
	"accountStatusGplCom": fieldString,
	"gmsIn":               fieldNumber,
	"gmsCom":              fieldNumber,
	"fbaIn":               fieldBool,
	"fbaCom":              fieldBool,
	"dateFbaIn":           fieldString,
	"dateFbaCom":          fieldString,
	"fbaAmountIn":         fieldNumber,
	"fbaAmountCom":        fieldNumber,
	"fbaLiveIn":           fieldBool,
	"fbaLiveCom":          fieldBool,
	"fbaRegistration":     fieldBool,
	"listingsIn":          fieldBool,
	"listingsCom":         fieldBool,
	"listingsCountIn":     fieldInt,
	"listingsCountCom":    fieldInt,
	"projectedPayoutIn":   fieldNumber,
	"projectedPayoutCom":  fieldNumber,
	"projectedSlabIn":     fieldString,

	"stage1Status":         fieldString,
	"stage1Completion":     fieldBool,
	"stage1CompletionDate": fieldString,
	"stage1payment":        fieldString,
	"stage2Status":         fieldString,
	"stage2Completion":     fieldBool,
	"stage2CompletionDate": fieldString,
	"stage2payment":        fieldString,
	"stage3Status":         fieldString,
	"stage3Completion":     fieldBool,
	"stage3CompletionDate": fieldString,
	"stage3payment":        fieldString,
	"serverPurchase":       fieldBool,
	"archiveWebsite":       fieldBool,
}

// statusReasonPairs are the status fields that require a companion reason
// when marked "Not Done".
var statusReasonPairs = map[string]string{
	"accountOpenIn":  "accountOpenInReason",
	"accountOpenCom": "accountOpenComReason",
}

// AccountUpdate is the validated, normalized form of a partial update
// request, ready to be applied as a flat overwrite.
type AccountUpdate struct {
	Set bson.M

	// ManagerIDs is set when the request reassigns managers. The ids still
	// have to be checked against the store before applying.
	ManagerIDs    []primitive.ObjectID
	HasManagerIDs bool
}

// BuildAccountUpdate validates and normalizes a partial update payload.
// Unknown keys are dropped (the stored schema is closed), status values are
// coerced to booleans, and the status/reason coupling for the account open
// fields is enforced:
//   - setting a paired status to false without a non-empty reason fails with
//     ErrReasonRequired;
//   - a supplied reason forces the status to false, whatever was requested
//     for the status field itself.
func BuildAccountUpdate(updates map[string]interface{}) (*AccountUpdate, error) {
	upd := &AccountUpdate{Set: bson.M{}}

	if raw, ok := updates["managerIds"]; ok {
		ids, err := parseManagerIDs(raw)
		if err != nil {
			return nil, err
		}
		upd.ManagerIDs = ids
		upd.HasManagerIDs = true
	}

	handled := map[string]bool{"managerIds": true}

	for statusKey, reasonKey := range statusReasonPairs {
		raw, ok := updates[statusKey]
		if !ok {
			continue
		}
		status, ok := umUtils.CoerceBool(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFieldValue, statusKey)
		}

		reason := ""
		if rawReason, ok := updates[reasonKey]; ok {
			if s, ok := rawReason.(string); ok {
				reason = s
			}
		}

		if !status && strings.TrimSpace(reason) == "" {
			return nil, ErrReasonRequired
		}

		upd.Set[statusKey] = status
		upd.Set[reasonKey] = reason
		// reason presence wins over the requested status value
		if reason != "" {
			upd.Set[statusKey] = false
		}

		handled[statusKey] = true
		handled[reasonKey] = true
	}

	for key, value := range updates {
		if handled[key] {
			continue
		}
		kind, known := updatableFields[key]
		if !known {
			continue
		}
		if value == nil {
			continue
		}

		coerced, err := coerceField(key, kind, value)
		if err != nil {
			return nil, err
		}
		upd.Set[key] = coerced
	}

	return upd, nil
}

func parseManagerIDs(raw interface{}) ([]primitive.ObjectID, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: managerIds must be a list", ErrInvalidManagerReference)
	}
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, entry := range list {
		hex, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("%w: manager id must be a string", ErrInvalidManagerReference)
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidManagerReference, hex)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func coerceField(key string, kind fieldKind, value interface{}) (interface{}, error) {
	switch kind {
	case fieldString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFieldValue, key)
		}
		return s, nil
	case fieldBool:
		b, ok := umUtils.CoerceBool(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFieldValue, key)
		}
		return b, nil
	case fieldInt:
		switch v := value.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidFieldValue, key)
	case fieldNumber:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidFieldValue, key)
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidFieldValue, key)
}
