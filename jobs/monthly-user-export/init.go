package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/crarsdecor/CRM/pkg/db"
	smtpclient "github.com/crarsdecor/CRM/pkg/smtp-client"
	"github.com/crarsdecor/CRM/pkg/utils"
	"gopkg.in/yaml.v2"

	crmUserDB "github.com/crarsdecor/CRM/pkg/db/crm-user"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_CRM_USER_DB_USERNAME = "CRM_USER_DB_USERNAME"
	ENV_CRM_USER_DB_PASSWORD = "CRM_USER_DB_PASSWORD"
	ENV_SMTP_USERNAME        = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD        = "SMTP_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		CRMUserDB db.DBConfigYaml `json:"crm_user_db" yaml:"crm_user_db"`
	} `json:"db_configs" yaml:"db_configs"`

	ExportPath string `json:"export_path" yaml:"export_path"`

	UserReport struct {
		Recipients       []string                  `json:"recipients" yaml:"recipients"`
		SmtpServerConfig smtpclient.SmtpServerList `json:"smtp_server_config" yaml:"smtp_server_config"`
	} `json:"user_report" yaml:"user_report"`
}

var conf config

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

	// Override secrets from environment variables
	secretsOverride()

	// init db
	initDBs()

	if conf.ExportPath == "" {
		err := fmt.Errorf("export path must be set to define where to store the export files")
		slog.Error("Error reading config", slog.String("error", err.Error()))
		panic(err)
	}

	if _, err := os.Stat(conf.ExportPath); os.IsNotExist(err) {
		// create folder
		err = os.MkdirAll(conf.ExportPath, os.ModePerm)
		if err != nil {
			slog.Error("Error creating export path", slog.String("error", err.Error()))
			panic(err)
		}
	}

	if len(conf.UserReport.Recipients) < 1 {
		err := fmt.Errorf("at least one report recipient must be configured")
		slog.Error("Error reading config", slog.String("error", err.Error()))
		panic(err)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_CRM_USER_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.CRMUserDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_CRM_USER_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.CRMUserDB.Password = dbPassword
	}

	if smtpUsername := os.Getenv(ENV_SMTP_USERNAME); smtpUsername != "" {
		for i := range conf.UserReport.SmtpServerConfig.Servers {
			conf.UserReport.SmtpServerConfig.Servers[i].SetUsername(smtpUsername)
		}
	}

	if smtpPassword := os.Getenv(ENV_SMTP_PASSWORD); smtpPassword != "" {
		for i := range conf.UserReport.SmtpServerConfig.Servers {
			conf.UserReport.SmtpServerConfig.Servers[i].SetPassword(smtpPassword)
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
