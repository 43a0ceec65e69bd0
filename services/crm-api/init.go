package main

import (
	"os"
	"time"

	"github.com/crarsdecor/CRM/pkg/db"
	emailsending "github.com/crarsdecor/CRM/pkg/messaging/email-sending"
	smtpclient "github.com/crarsdecor/CRM/pkg/smtp-client"
	usermanagement "github.com/crarsdecor/CRM/pkg/user-management"
	"github.com/crarsdecor/CRM/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	crmUserDB "github.com/crarsdecor/CRM/pkg/db/crm-user"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_CRM_USER_DB_USERNAME  = "CRM_USER_DB_USERNAME"
	ENV_CRM_USER_DB_PASSWORD  = "CRM_USER_DB_PASSWORD"
	ENV_CRM_USER_JWT_SIGN_KEY = "CRM_USER_JWT_SIGN_KEY"
	ENV_SMTP_USERNAME         = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD         = "SMTP_PASSWORD"
)

type CrmApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserManagementConfig struct {
		CRMUserJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"crm_user_jwt_config" yaml:"crm_user_jwt_config"`
	} `json:"user_management_config" yaml:"user_management_config"`

	// DB configs
	DBConfigs struct {
		CRMUserDB db.DBConfigYaml `json:"crm_user_db" yaml:"crm_user_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs struct {
		// server list inline, or in a separate file referenced by path
		SmtpServerConfig     smtpclient.SmtpServerList `json:"smtp_server_config" yaml:"smtp_server_config"`
		SmtpServerConfigPath string                    `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`
		OtpRecipient         string                    `json:"otp_recipient" yaml:"otp_recipient"`
	} `json:"messaging_configs" yaml:"messaging_configs"`
}

var (
	crmUserDBService *crmUserDB.CRMUserDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Load external smtp server list if configured
	if conf.MessagingConfigs.SmtpServerConfigPath != "" {
		if err := conf.MessagingConfigs.SmtpServerConfig.ReadFromFile(conf.MessagingConfigs.SmtpServerConfigPath); err != nil {
			panic(err)
		}
	}

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// init user management
	usermanagement.Init(crmUserDBService)

	// init message sending
	initMessageSending()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_CRM_USER_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.CRMUserDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_CRM_USER_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.CRMUserDB.Password = dbPassword
	}

	if signKey := os.Getenv(ENV_CRM_USER_JWT_SIGN_KEY); signKey != "" {
		conf.UserManagementConfig.CRMUserJWTConfig.SignKey = signKey
	}

	if smtpUsername := os.Getenv(ENV_SMTP_USERNAME); smtpUsername != "" {
		for i := range conf.MessagingConfigs.SmtpServerConfig.Servers {
			conf.MessagingConfigs.SmtpServerConfig.Servers[i].SetUsername(smtpUsername)
		}
	}

	if smtpPassword := os.Getenv(ENV_SMTP_PASSWORD); smtpPassword != "" {
		for i := range conf.MessagingConfigs.SmtpServerConfig.Servers {
			conf.MessagingConfigs.SmtpServerConfig.Servers[i].SetPassword(smtpPassword)
		}
	}
}

func initDBs() {
	var err error
	crmUserDBService, err = crmUserDB.NewCRMUserDBService(db.DBConfigFromYamlObj(conf.DBConfigs.CRMUserDB))
	if err != nil {
		panic(err)
	}
}

func initMessageSending() {
	smtpClients, err := smtpclient.NewSmtpClients(conf.MessagingConfigs.SmtpServerConfig)
	if err != nil {
		panic(err)
	}
	emailsending.InitMessageSendingVariables(
		smtpClients,
		conf.MessagingConfigs.OtpRecipient,
	)
}
