package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/crarsdecor/CRM/pkg/exporter/accounts"
	emailsending "github.com/crarsdecor/CRM/pkg/messaging/email-sending"
	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	slog.Info("Starting monthly user export job")
	start := time.Now()

	exportFilePath, err := exportUsers()
	if err != nil {
		slog.Error("Error exporting users", slog.String("error", err.Error()))
		return
	}

	err = emailsending.SendUserReportEmail(
		conf.UserReport.SmtpServerConfig,
		conf.UserReport.Recipients,
		exportFilePath,
	)
	if err != nil {
		slog.Error("Error sending user report email", slog.String("error", err.Error()))
	} else {
		slog.Info("User report email sent", slog.String("file", exportFilePath))
	}

	if err := os.Remove(exportFilePath); err != nil {
		slog.Error("Error removing export file", slog.String("file", exportFilePath), slog.String("error", err.Error()))
	}

	if err := crmUserDBService.DBClient.Disconnect(context.Background()); err != nil {
		slog.Error("Error closing DB connection", slog.String("error", err.Error()))
	}
	slog.Info("Monthly user export job completed", slog.String("duration", time.Since(start).String()))
}

func exportUsers() (string, error) {
	exportFilePath := filepath.Join(conf.ExportPath, "users.csv")

	file, err := os.Create(exportFilePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	exporter, err := accounts.NewAccountExporter(file)
	if err != nil {
		return "", err
	}

	err = crmUserDBService.FindAndExecuteOnUsers(
		context.Background(),
		bson.M{},
		func(user umTypes.User) error {
			return exporter.WriteAccount(user)
		},
	)
	if err != nil {
		return "", err
	}
	if err := exporter.Finish(); err != nil {
		return "", err
	}

	slog.Info("Users exported", slog.Int("count", exporter.Count()), slog.String("file", exportFilePath))
	return exportFilePath, nil
}
