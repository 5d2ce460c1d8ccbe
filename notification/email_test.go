package notification

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
)

func TestEmailSenderLogOnly(t *testing.T) {
	tests := []struct {
		name string
		cfg  EmailConfig
	}{
		{"no credentials", EmailConfig{Host: "smtp.example.com"}},
		{"no password", EmailConfig{Host: "smtp.example.com", Username: "bot@example.com"}},
		{"no host", EmailConfig{Username: "bot@example.com", Password: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewEmailSender(tt.cfg)
			if !sender.LogOnly() {
				t.Fatal("LogOnly() = false, want true")
			}
			err := sender.Send(context.Background(), Message{ToEmail: "maker@example.com", Body: "hello"})
			if err != nil {
				t.Errorf("Send() error = %v, want nil in log-only mode", err)
			}
		})
	}
}

func TestEmailSenderRequiresRecipient(t *testing.T) {
	sender := NewEmailSender(EmailConfig{})
	if err := sender.Send(context.Background(), Message{Body: "hello"}); err == nil {
		t.Error("Send() without recipient returned no error")
	}
}

func TestEmailSenderCompose(t *testing.T) {
	sender := NewEmailSender(EmailConfig{
		Host:     "smtp.example.com",
		Username: "bot@example.com",
		Password: "secret",
		AppURL:   "https://app.example.com",
	})
	sender.now = func() time.Time { return time.Date(2025, 6, 23, 9, 0, 0, 0, time.UTC) }

	raw, err := sender.Compose(Message{
		ToEmail:  "maker@example.com",
		ToName:   "Maker",
		Body:     "Reminder: Email draft is due on Jun 23, 2025",
		LaunchID: "launch-1",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("CreateReader() error = %v", err)
	}
	subject, err := mr.Header.Subject()
	if err != nil || subject != ReminderSubject {
		t.Errorf("Subject() = %q, %v, want %q", subject, err, ReminderSubject)
	}
	from, err := mr.Header.AddressList("From")
	if err != nil || len(from) != 1 || from[0].Address != "bot@example.com" {
		t.Errorf("From = %v, %v, want bot@example.com", from, err)
	}
	to, err := mr.Header.AddressList("To")
	if err != nil || len(to) != 1 || to[0].Address != "maker@example.com" || to[0].Name != "Maker" {
		t.Errorf("To = %v, %v, want Maker <maker@example.com>", to, err)
	}
	date, err := mr.Header.Date()
	if err != nil || !date.Equal(sender.now()) {
		t.Errorf("Date = %v, %v", date, err)
	}

	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart() error = %v", err)
	}
	if _, ok := part.Header.(*mail.InlineHeader); !ok {
		t.Fatalf("part header = %T, want inline", part.Header)
	}
	body, err := io.ReadAll(part.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)
	for _, want := range []string{
		"Hi Maker,",
		"Reminder: Email draft is due on Jun 23, 2025",
		"View Your Launch",
		`href="https://app.example.com/launches/launch-1"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("body missing %q:\n%s", want, html)
		}
	}
}

func TestEmailSenderComposeEscapesBody(t *testing.T) {
	sender := NewEmailSender(EmailConfig{Username: "bot@example.com"})
	raw, err := sender.Compose(Message{ToEmail: "maker@example.com", Body: "<script>alert(1)</script>"})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("CreateReader() error = %v", err)
	}
	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart() error = %v", err)
	}
	body, _ := io.ReadAll(part.Body)
	if strings.Contains(string(body), "<script>") {
		t.Error("body contains unescaped markup")
	}
	if !strings.Contains(string(body), "Hi there,") {
		t.Error("body missing fallback greeting")
	}
	if strings.Contains(string(body), "View Your Launch") {
		t.Error("body links to a launch without an app URL")
	}
}
