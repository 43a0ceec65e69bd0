package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles of the closed set an account can have.
const (
	ROLE_ADMIN      = "admin"
	ROLE_MANAGER    = "manager"
	ROLE_ACCOUNTANT = "accountant"
	ROLE_USER       = "user"
)

func IsValidRole(role string) bool {
	switch role {
	case ROLE_ADMIN, ROLE_MANAGER, ROLE_ACCOUNTANT, ROLE_USER:
		return true
	}
	return false
}

// User is the single account document for every actor in the system
// (admin, manager, accountant or client). Identity and role are fixed at
// creation, the workflow fields are filled in incrementally over the
// client's onboarding lifetime.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UID      string               `bson:"uid,omitempty" json:"uid,omitempty"`
	Name     string               `bson:"name" json:"name"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password" json:"-"`
	Role     string               `bson:"role" json:"role"`
	Managers []primitive.ObjectID `bson:"managers,omitempty" json:"managers,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Manager specific: which service line the manager works on
	// ("amazon" or "website").
	Service *string `bson:"service,omitempty" json:"service,omitempty"`

	Workflow `bson:",inline"`
}

// Workflow holds the per-stage onboarding fields of a client account. Every
// field is optional and independently updatable through the partial update
// endpoint; absent fields stay absent in the stored document.
type Workflow struct {
	// Amazon account opening
	AccountOpenIn        *bool   `bson:"accountOpenIn,omitempty" json:"accountOpenIn,omitempty"`
	AccountOpenInReason  *string `bson:"accountOpenInReason,omitempty" json:"accountOpenInReason,omitempty"`
	AccountOpenCom       *bool   `bson:"accountOpenCom,omitempty" json:"accountOpenCom,omitempty"`
	AccountOpenComReason *string `bson:"accountOpenComReason,omitempty" json:"accountOpenComReason,omitempty"`
	AccountLaunchIn      *bool   `bson:"accountLaunchIn,omitempty" json:"accountLaunchIn,omitempty"`

	// Enrollment
	DateAmazon          *string `bson:"dateAmazon,omitempty" json:"dateAmazon,omitempty"`
	DateWebsite         *string `bson:"dateWebsite,omitempty" json:"dateWebsite,omitempty"`
	BatchAmazon         *string `bson:"batchAmazon,omitempty" json:"batchAmazon,omitempty"`
	BatchWebsite        *string `bson:"batchWebsite,omitempty" json:"batchWebsite,omitempty"`
	EnrollmentIDAmazon  *string `bson:"enrollmentIdAmazon,omitempty" json:"enrollmentIdAmazon,omitempty"`
	EnrollmentIDWebsite *string `bson:"enrollmentIdWebsite,omitempty" json:"enrollmentIdWebsite,omitempty"`
	PrimaryContact      *string `bson:"primaryContact,omitempty" json:"primaryContact,omitempty"`

	// Legal / KYC
	LegalityAmazon      *bool   `bson:"legalityAmazon,omitempty" json:"legalityAmazon,omitempty"`
	LegalityAmazonDate  *string `bson:"legalityAmazonDate,omitempty" json:"legalityAmazonDate,omitempty"`
	LegalityAmazonLink  *string `bson:"legalityAmazonLink,omitempty" json:"legalityAmazonLink,omitempty"`
	LegalityWebsite     *bool   `bson:"legalityWebsite,omitempty" json:"legalityWebsite,omitempty"`
	LegalityWebsiteDate *string `bson:"legalityWebsiteDate,omitempty" json:"legalityWebsiteDate,omitempty"`
	LegalityWebsiteLink *string `bson:"legalityWebsiteLink,omitempty" json:"legalityWebsiteLink,omitempty"`

	// Amazon growth metrics
	AccountStatusIn     *string  `bson:"accountStatusIn,omitempty" json:"accountStatusIn,omitempty"`
	AccountStatusCom    *string  `bson:"accountStatusCom,omitempty" json:"accountStatusCom,omitempty"`
	AccountStatusGplIn  *string  `bson:"accountStatusGplIn,omitempty" json:"accountStatusGplIn,omitempty"`
	AccountStatusGplCom *string  `bson:"accountStatusGplCom,omitempty" json:"accountStatusGplCom,omitempty"`
	GmsIn               *float64 `bson:"gmsIn,omitempty" json:"gmsIn,omitempty"`
	GmsCom              *float64 `bson:"gmsCom,omitempty" json:"gmsCom,omitempty"`
	FbaIn               *bool    `bson:"fbaIn,omitempty" json:"fbaIn,omitempty"`
	FbaCom              *bool    `bson:"fbaCom,omitempty" json:"fbaCom,omitempty"`
	DateFbaIn           *string  `bson:"dateFbaIn,omitempty" json:"dateFbaIn,omitempty"`
	DateFbaCom          *string  `bson:"dateFbaCom,omitempty" json:"dateFbaCom,omitempty"`
	FbaAmountIn         *float64 `bson:"fbaAmountIn,omitempty" json:"fbaAmountIn,omitempty"`
	FbaAmountCom        *float64 `bson:"fbaAmountCom,omitempty" json:"fbaAmountCom,omitempty"`
	FbaLiveIn           *bool    `bson:"fbaLiveIn,omitempty" json:"fbaLiveIn,omitempty"`
	FbaLiveCom          *bool    `bson:"fbaLiveCom,omitempty" json:"fbaLiveCom,omitempty"`
	FbaRegistration     *bool    `bson:"fbaRegistration,omitempty" json:"fbaRegistration,omitempty"`
	ListingsIn          *bool    `bson:"listingsIn,omitempty" json:"listingsIn,omitempty"`
	ListingsCom         *bool    `bson:"listingsCom,omitempty" json:"listingsCom,omitempty"`
	ListingsCountIn     *int     `bson:"listingsCountIn,omitempty" json:"listingsCountIn,omitempty"`
	ListingsCountCom    *int     `bson:"listingsCountCom,omitempty" json:"listingsCountCom,omitempty"`
	ProjectedPayoutIn   *float64 `bson:"projectedPayoutIn,omitempty" json:"projectedPayoutIn,omitempty"`
	ProjectedPayoutCom  *float64 `bson:"projectedPayoutCom,omitempty" json:"projectedPayoutCom,omitempty"`
	ProjectedSlabIn     *string  `bson:"projectedSlabIn,omitempty" json:"projectedSlabIn,omitempty"`

	// Website build stages
	Stage1Status         *string `bson:"stage1Status,omitempty" json:"stage1Status,omitempty"`
	Stage1Completion     *bool   `bson:"stage1Completion,omitempty" json:"stage1Completion,omitempty"`
	Stage1CompletionDate *string `bson:"stage1CompletionDate,omitempty" json:"stage1CompletionDate,omitempty"`
	Stage1Payment        *string `bson:"stage1payment,omitempty" json:"stage1payment,omitempty"`
	Stage2Status         *string `bson:"stage2Status,omitempty" json:"stage2Status,omitempty"`
	Stage2Completion     *bool   `bson:"stage2Completion,omitempty" json:"stage2Completion,omitempty"`
	Stage2CompletionDate *string `bson:"stage2CompletionDate,omitempty" json:"stage2CompletionDate,omitempty"`
	Stage2Payment        *string `bson:"stage2payment,omitempty" json:"stage2payment,omitempty"`
	Stage3Status         *string `bson:"stage3Status,omitempty" json:"stage3Status,omitempty"`
	Stage3Completion     *bool   `bson:"stage3Completion,omitempty" json:"stage3Completion,omitempty"`
	Stage3CompletionDate *string `bson:"stage3CompletionDate,omitempty" json:"stage3CompletionDate,omitempty"`
	Stage3Payment        *string `bson:"stage3payment,omitempty" json:"stage3payment,omitempty"`
	ServerPurchase       *bool   `bson:"serverPurchase,omitempty" json:"serverPurchase,omitempty"`
	ArchiveWebsite       *bool   `bson:"archiveWebsite,omitempty" json:"archiveWebsite,omitempty"`
}

// ManagerRef is the populated form of a manager reference in API responses.
type ManagerRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}
