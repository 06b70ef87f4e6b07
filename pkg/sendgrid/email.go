package sendgrid

import (
	"context"
	"fmt"

	sendgridlib "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Email struct {
	To        string
	ToName    string
	Subject   string
	PlainText string
	HTMLBody  string
}

// Client is the outbound email surface. Implementations must be safe for
// concurrent use.
type Client interface {
	Send(ctx context.Context, email *Email) error
}

type client struct {
	sg        *sendgridlib.Client
	fromEmail string
	fromName  string
}

func NewClient(apiKey string, fromEmail string, fromName string) Client {
	return &client{sg: sendgridlib.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// Send implements Client.
func (c *client) Send(ctx context.Context, email *Email) error {

	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(email.ToName, email.To)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = email.Subject
	message.AddPersonalizations(personalization)

	if email.PlainText != "" {
		message.AddContent(mail.NewContent("text/plain", email.PlainText))
	}

	if email.HTMLBody != "" {
		message.AddContent(mail.NewContent("text/html", email.HTMLBody))
	}

	response, err := c.sg.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
