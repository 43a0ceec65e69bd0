package emailsending

import (
	"errors"
	"fmt"
	"time"

	smtpclient "github.com/crarsdecor/CRM/pkg/smtp-client"
)

var (
	smtpClients *smtpclient.SmtpClients

	// login codes are always delivered to the operator mailbox
	otpRecipient string
)

func InitMessageSendingVariables(
	clients *smtpclient.SmtpClients,
	otpRecipientAddr string,
) {
	smtpClients = clients
	otpRecipient = otpRecipientAddr
}

// SendLoginOTPEmail delivers a sign-in code for the given account to the operator mailbox.
func SendLoginOTPEmail(uid string, code string, expiresAt time.Time) error {
	if smtpClients == nil {
		return errors.New("smtp clients not initialized")
	}
	if otpRecipient == "" {
		return errors.New("otp recipient not configured")
	}

	subject := "Your Login OTP"
	text := fmt.Sprintf("Login code for %s: %s\nThe code expires at %s.", uid, code, expiresAt.UTC().Format(time.RFC1123))
	html := fmt.Sprintf("<p>Login code for <b>%s</b>:</p><h2>%s</h2><p>The code expires at %s.</p>", uid, code, expiresAt.UTC().Format(time.RFC1123))

	return smtpClients.SendMail(
		[]string{otpRecipient},
		subject,
		text,
		html,
		nil,
		nil,
	)
}
