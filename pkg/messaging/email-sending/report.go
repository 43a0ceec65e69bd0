package emailsending

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	smtpclient "github.com/crarsdecor/CRM/pkg/smtp-client"
	"github.com/jordan-wright/email"
)

// SendUserReportEmail delivers the exported account list as an attachment.
// Report jobs run once and exit, so this opens a single connection instead
// of going through the pooled clients.
func SendUserReportEmail(serverList smtpclient.SmtpServerList, to []string, attachmentPath string) error {
	if len(serverList.Servers) < 1 {
		return errors.New("no smtp servers defined")
	}
	if len(to) < 1 {
		return errors.New("report recipient not configured")
	}
	server := serverList.Servers[0]

	e := email.NewEmail()
	e.From = serverList.From
	e.To = to
	e.Subject = fmt.Sprintf("Monthly User Report - %s", time.Now().UTC().Format("2006-01"))
	e.Text = []byte("Attached is the monthly user report.")
	e.HTML = []byte("<p>Attached is the monthly user report.</p>")
	if _, err := e.AttachFile(attachmentPath); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", server.AuthData.Username, server.AuthData.Password, server.Host)
	if server.AuthData.Username == "" && server.AuthData.Password == "" {
		auth = nil
	}
	tlsOpts := &tls.Config{
		InsecureSkipVerify: server.InsecureSkipVerify,
		ServerName:         server.Host,
	}
	return e.SendWithStartTLS(server.Address(), auth, tlsOpts)
}
