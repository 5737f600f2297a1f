package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spachava753/crm/contacts"
)

func fixedSimulator(log *zap.Logger) *Simulator {
	sim := NewSimulator(log, "crm@example.com")
	sim.now = func() time.Time {
		return time.Date(2026, 10, 18, 12, 0, 0, 42, time.UTC)
	}
	return sim
}

func TestSendComposesAndLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sim := fixedSimulator(zap.New(core))

	out, err := sim.Send(context.Background(), SendInput{
		To:      contacts.Contact{ID: "c1", FirstName: "Max", LastName: "Muster", Email: "max@x.com"},
		Subject: "Hello\r\nBcc: evil@x.com",
		Body:    "line one\nline two\n",
	})
	be.Err(t, err, nil)
	be.Equal(t, out.Recipient, "max@x.com")
	be.Equal(t, out.MessageID, "<1792324800000000042.example.com>")

	raw := string(out.Raw)
	be.True(t, strings.Contains(raw, "From: crm@example.com\r\n"))
	be.True(t, strings.Contains(raw, "To: \"Max Muster\" <max@x.com>\r\n"))
	be.True(t, strings.Contains(raw, "Subject: Hello  Bcc: evil@x.com\r\n"))
	be.True(t, strings.Contains(raw, "Date: Sun, 18 Oct 2026 12:00:00 +0000\r\n"))
	be.True(t, strings.HasSuffix(raw, "\r\n\r\nline one\r\nline two\r\n"))

	entries := logs.FilterMessage("email sent (simulated)").All()
	be.Equal(t, len(entries), 1)
	fields := entries[0].ContextMap()
	be.Equal(t, fields["to"], any("max@x.com"))
	be.Equal(t, fields["subject"], any("Hello\r\nBcc: evil@x.com"))
	be.Equal(t, fields["contact_id"], any("c1"))
}

func TestSendRecipientWithoutName(t *testing.T) {
	sim := fixedSimulator(nil)
	out, err := sim.Send(context.Background(), SendInput{
		To:      contacts.Contact{Email: "anon@x.com"},
		Subject: "s",
		Body:    "b",
	})
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(out.Raw), "To: anon@x.com\r\n"))
}

func TestSendRequiresFields(t *testing.T) {
	sim := NewSimulator(nil, "")
	to := contacts.Contact{FirstName: "Max", Email: "max@x.com"}

	_, err := sim.Send(context.Background(), SendInput{To: contacts.Contact{FirstName: "Max"}, Subject: "s", Body: "b"})
	be.Err(t, err, "recipient email is required")

	_, err = sim.Send(context.Background(), SendInput{To: to, Subject: " ", Body: "b"})
	be.Err(t, err, "subject is required")

	_, err = sim.Send(context.Background(), SendInput{To: to, Subject: "s"})
	be.Err(t, err, "body is required")
}

func TestSendHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(nil, "").Send(ctx, SendInput{
		To:      contacts.Contact{Email: "max@x.com"},
		Subject: "s",
		Body:    "b",
	})
	be.Err(t, err, context.Canceled)
}

func TestGenerateMessageID(t *testing.T) {
	now := time.Unix(0, 7)
	be.Equal(t, generateMessageID("a@b.org", now), "<7.b.org>")
	be.Equal(t, generateMessageID("nobody", now), "<7.localhost>")
	be.Equal(t, generateMessageID("trailing@", now), "<7.localhost>")
}
