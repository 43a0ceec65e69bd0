package main

import (
	"log/slog"
	"time"

	"github.com/crarsdecor/CRM/services/crm-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var conf CrmApiConfig

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.UserManagementConfig.CRMUserJWTConfig.SignKey,
		conf.UserManagementConfig.CRMUserJWTConfig.ExpiresIn,
		crmUserDBService,
	)
	v1APIHandlers.AddAuthAPI(v1Root)
	v1APIHandlers.AddUserManagementAPI(v1Root)

	// Start the server
	slog.Info("Starting CRM API on port " + conf.GinConfig.Port)
	err := router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited CRM API", slog.String("error", err.Error()))
		return
	}
}
