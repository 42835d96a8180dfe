package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/dtroode/kameti-auth/internal/model"
)

// sender is the part of *gomail.Client used to deliver messages.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Config holds SMTP delivery parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Secure   bool
	FromName string
}

var _ model.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier sends mail through an SMTP relay.
type SMTPNotifier struct {
	client   sender
	from     string
	fromName string
}

func NewSMTPNotifier(cfg Config) (*SMTPNotifier, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}
	if cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return newSMTPNotifier(client, cfg.User, cfg.FromName), nil
}

func newSMTPNotifier(client sender, from, fromName string) *SMTPNotifier {
	return &SMTPNotifier{
		client:   client,
		from:     from,
		fromName: fromName,
	}
}

// Send delivers a multipart text and html message to a single recipient.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, text, html string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(n.fromName, n.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	if html != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, html)
	}

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
