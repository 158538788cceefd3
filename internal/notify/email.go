package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// mailSender is the part of mail.Client the sink uses.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailSink sends digests over SMTP. Authentication is used only when a user is set.
type EmailSink struct {
	from   string
	to     []string
	client mailSender
}

// NewEmailSink creates an EmailSink for the given server and recipients.
func NewEmailSink(host string, port int, user, password string, to []string) (*EmailSink, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client for %s: %w", host, err)
	}

	return &EmailSink{from: user, to: to, client: client}, nil
}

// Name implements DigestSink.
func (e *EmailSink) Name() string {
	return "email"
}

// DeliverDigest implements DigestSink. The context bounds dialing and sending.
func (e *EmailSink) DeliverDigest(ctx context.Context, subject, body string) error {
	const opn = "notify.EmailSink.DeliverDigest"

	msg, err := buildMessage(e.from, e.to, subject, body)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	if err = e.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: failed to send mail: %w", opn, err)
	}

	return nil
}

// buildMessage renders a plain text UTF-8 message with Date and Message-ID set.
func buildMessage(from string, to []string, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithCharset(mail.CharsetUTF8), mail.WithEncoding(mail.EncodingQP))

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to...); err != nil {
		return nil, fmt.Errorf("invalid recipients %v: %w", to, err)
	}

	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}
