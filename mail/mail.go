package mail

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spachava753/crm/contacts"
)

// DefaultFrom is the sender address used when none is configured.
const DefaultFrom = "crm@localhost"

// SendInput is the send primitive input.
type SendInput struct {
	To      contacts.Contact
	Subject string
	Body    string
}

// SendOutput acknowledges a simulated send.
//
// Raw holds the composed RFC 5322 message that would have been transmitted.
type SendOutput struct {
	MessageID string
	Recipient string
	Raw       []byte
}

// Simulator composes outgoing messages and logs them instead of delivering.
type Simulator struct {
	log  *zap.Logger
	from string
	now  func() time.Time
}

// NewSimulator returns a Simulator sending as from. A nil logger discards
// output; an empty from uses DefaultFrom.
func NewSimulator(log *zap.Logger, from string) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	from = strings.TrimSpace(from)
	if from == "" {
		from = DefaultFrom
	}
	return &Simulator{log: log, from: from, now: time.Now}
}

// Send validates input, composes the message and logs it. Nothing leaves the
// process; a nil error means the send was acknowledged.
func (s *Simulator) Send(ctx context.Context, input SendInput) (SendOutput, error) {
	if err := validateSendInput(input); err != nil {
		return SendOutput{}, err
	}
	if err := ctx.Err(); err != nil {
		return SendOutput{}, fmt.Errorf("mail: send canceled: %w", err)
	}

	now := s.now()
	messageID := generateMessageID(s.from, now)
	raw := buildOutgoingMessage(s.from, input, messageID, now)
	recipient := strings.TrimSpace(input.To.Email)

	s.log.Info("email sent (simulated)",
		zap.String("to", recipient),
		zap.String("contact_id", input.To.ID),
		zap.String("subject", input.Subject),
		zap.String("body", input.Body),
		zap.String("message_id", messageID),
	)

	return SendOutput{MessageID: messageID, Recipient: recipient, Raw: raw}, nil
}

func validateSendInput(input SendInput) error {
	if strings.TrimSpace(input.To.Email) == "" {
		return errors.New("mail: recipient email is required")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return errors.New("mail: subject is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return errors.New("mail: body is required")
	}
	return nil
}

func buildOutgoingMessage(from string, input SendInput, messageID string, now time.Time) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", sanitizeHeader(from)),
		fmt.Sprintf("To: %s", recipientHeader(input.To)),
		fmt.Sprintf("Subject: %s", sanitizeHeader(input.Subject)),
		fmt.Sprintf("Date: %s", now.Format(time.RFC1123Z)),
		fmt.Sprintf("Message-ID: %s", messageID),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + normalizeBody(input.Body) + "\r\n")
}

func recipientHeader(contact contacts.Contact) string {
	address := sanitizeHeader(contact.Email)
	name := sanitizeHeader(strings.TrimSpace(contact.FirstName + " " + contact.LastName))
	if name == "" {
		return address
	}
	return (&netmail.Address{Name: name, Address: address}).String()
}

func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.TrimSpace(value)
}

func normalizeBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")
	return strings.TrimSpace(body)
}

func generateMessageID(address string, now time.Time) string {
	domain := "localhost"
	if at := strings.LastIndex(address, "@"); at >= 0 && at < len(address)-1 {
		domain = address[at+1:]
	}
	return fmt.Sprintf("<%d.%s>", now.UnixNano(), domain)
}
