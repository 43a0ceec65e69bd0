package apihandlers

import (
	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	"github.com/gin-gonic/gin"
)

// Per-role projections of an account document. The admin view carries the
// full record with populated manager references, the manager and accountant
// view the operational subset, the client view only their own enrollment
// information.

func adminUserView(user umTypes.User, managers []umTypes.ManagerRef) gin.H {
	return gin.H{
		"id":        user.ID.Hex(),
		"uid":       user.UID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"service":   user.Service,
		"managers":  managers,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
		"workflow":  user.Workflow,
	}
}

func managerUserView(user umTypes.User) gin.H {
	return gin.H{
		"id":        user.ID.Hex(),
		"uid":       user.UID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"service":   user.Service,
		"createdAt": user.CreatedAt,
		"workflow":  user.Workflow,
	}
}

func clientUserView(user umTypes.User) gin.H {
	return gin.H{
		"id":      user.ID.Hex(),
		"uid":     user.UID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"service": user.Service,
		"enrollment": gin.H{
			"enrollmentIdAmazon":  user.EnrollmentIDAmazon,
			"enrollmentIdWebsite": user.EnrollmentIDWebsite,
			"dateAmazon":          user.DateAmazon,
			"dateWebsite":         user.DateWebsite,
			"batchAmazon":         user.BatchAmazon,
			"batchWebsite":        user.BatchWebsite,
			"primaryContact":      user.PrimaryContact,
		},
		"workflow": user.Workflow,
	}
}
