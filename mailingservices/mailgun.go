package mailingservices

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	domain := os.Getenv("MG_DOMAIN")
	apiKey := os.Getenv("MG_PUBLIC_API_KEY")
	m.From = os.Getenv("EMAIL_FROM")
	if domain == "" || apiKey == "" {
		logrus.Warn("mailgun not configured, outgoing mail disabled")
		return
	}
	m.Client = mailgun.NewMailgun(domain, apiKey)
}

func (m *Mailgun) send(to, subject, body string) error {
	if m.Client == nil {
		logrus.Debugf("mail skipped (no client): %s -> %s", subject, to)
		return nil
	}
	message := m.Client.NewMessage(m.From, subject, body, to)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _, err := m.Client.Send(ctx, message)
	return err
}

func (m *Mailgun) SendResetPasswordMail(to, resetURL string) error {
	body := fmt.Sprintf("A password reset was requested for your account.\n\nReset it here: %s\n\nIf you did not request this, ignore this mail.", resetURL)
	return m.send(to, "Reset your password", body)
}

func (m *Mailgun) SendRedemptionFulfilledMail(to, itemName string) error {
	body := fmt.Sprintf("Good news! Your redemption for %q has been fulfilled.", itemName)
	return m.send(to, "Your reward is on its way", body)
}
