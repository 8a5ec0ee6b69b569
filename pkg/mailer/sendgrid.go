package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type SendGridClient struct {
	cfg    Config
	client *sendgrid.Client
}

func NewSendGridClient(cfg Config) *SendGridClient {
	return &SendGridClient{cfg: cfg, client: sendgrid.NewSendClient(cfg.APIKey)}
}

// Send delivers one email with a plain-text and an HTML body.
func (c *SendGridClient) Send(ctx context.Context, toName, to, subject, plain, html string) error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(c.cfg.FromName, c.cfg.FromEmail),
		subject,
		mail.NewEmail(toName, to),
		plain,
		html,
	)

	response, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}
	return nil
}
