package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	mw "github.com/crarsdecor/CRM/pkg/apihelpers/middlewares"
	jwthandling "github.com/crarsdecor/CRM/pkg/jwt-handling"
	emailsending "github.com/crarsdecor/CRM/pkg/messaging/email-sending"
	usermanagement "github.com/crarsdecor/CRM/pkg/user-management"
	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	umUtils "github.com/crarsdecor/CRM/pkg/user-management/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup-admin", mw.RequirePayload(), h.signupAdmin)
		authGroup.POST("/signin", mw.RequirePayload(), h.signinWithPassword)
		authGroup.POST("/verify-otp", mw.RequirePayload(), h.verifyOTP)
	}
}

type SignupAdminReq struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) signupAdmin(c *gin.Context) {
	var req SignupAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UID == "" || req.Name == "" || req.Email == "" || req.Password == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	hasAdmin, err := h.crmUserDBConn.HasUserWithRole(umTypes.ROLE_ADMIN)
	if err != nil {
		slog.Error("failed to check for existing admin", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		return
	}
	if hasAdmin {
		slog.Warn("attempt to create a second admin account", slog.String("uid", req.UID))
		c.JSON(http.StatusForbidden, gin.H{"error": "admin account already exists"})
		return
	}

	user, err := h.crmUserDBConn.AddUser(umTypes.User{
		UID:      umUtils.SanitizeUID(req.UID),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     umTypes.ROLE_ADMIN,
	})
	if err != nil {
		slog.Error("failed to create admin account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		return
	}

	slog.Info("admin account created", slog.String("uid", user.UID))
	c.JSON(http.StatusCreated, gin.H{"message": "admin created", "uid": user.UID})
}

type SigninReq struct {
	UID      string `json:"uid"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) signinWithPassword(c *gin.Context) {
	var req SigninReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UID == "" || req.Password == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	user, err := usermanagement.AuthenticateWithPassword(req.UID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			slog.Warn("signin attempt with unknown uid", slog.String("uid", req.UID))
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, usermanagement.ErrInvalidCredentials):
			slog.Warn("signin attempt with wrong password", slog.String("uid", req.UID))
			randomWait(5, 10)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			slog.Error("failed to look up account during signin", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		}
		return
	}

	err = usermanagement.CreateSignInOTP(user.UID, func(code string, expiresAt time.Time) error {
		return emailsending.SendLoginOTPEmail(user.UID, code, expiresAt)
	})
	if err != nil {
		slog.Error("failed to send sign-in OTP", slog.String("uid", user.UID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP"})
		return
	}

	token, err := jwthandling.GenerateNewCRMUserToken(
		h.tokenExpiresIn,
		user.ID.Hex(),
		user.UID,
		user.Role,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent to your email",
		"uid":     user.UID,
		"role":    user.Role,
		"token":   token,
	})
}

type VerifyOTPReq struct {
	UID string `json:"uid"`
	OTP string `json:"otp"`
}

func (h *HttpEndpoints) verifyOTP(c *gin.Context) {
	var req VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UID == "" || req.OTP == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	err := usermanagement.VerifyOTP(umUtils.SanitizeUID(req.UID), req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, usermanagement.ErrOtpNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "otp expired or not found"})
		case errors.Is(err, usermanagement.ErrOtpExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "otp expired"})
		case errors.Is(err, usermanagement.ErrOtpMismatch):
			slog.Warn("otp verification failed", slog.String("uid", req.UID))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid otp"})
		default:
			slog.Error("unexpected error during otp verification", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify OTP"})
		}
		return
	}

	user, err := h.crmUserDBConn.GetUserByUID(umUtils.SanitizeUID(req.UID))
	if err != nil {
		slog.Error("user not found after otp verification", slog.String("uid", req.UID))
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	token, err := jwthandling.GenerateNewCRMUserToken(
		h.tokenExpiresIn,
		user.ID.Hex(),
		user.UID,
		user.Role,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP verified",
		"role":    user.Role,
		"token":   token,
	})
}
