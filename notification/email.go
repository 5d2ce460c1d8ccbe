package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"

	"gotolaunch/logger"
)

const ReminderSubject = "GoToLaunch Reminder - Launch Checklist Update"

var reminderEmail = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 24px;">
      <h2 style="color: #da552f;">GoToLaunch</h2>
      <p>Hi {{.Name}},</p>
      <p>{{.Body}}</p>
      {{if .LaunchURL}}<p><a href="{{.LaunchURL}}" style="background: #da552f; color: #ffffff; padding: 10px 18px; border-radius: 4px; text-decoration: none;">View Your Launch</a></p>{{end}}
      <p style="font-size: 12px; color: #888888;">You are receiving this because you have an upcoming launch on GoToLaunch.</p>
    </div>
  </body>
</html>
`))

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// AppURL is the web app base used for the "View Your Launch" link.
	AppURL string
}

// EmailSender delivers reminders over SMTP. Without credentials it runs in
// log-only mode: deliveries are logged and reported as successful.
type EmailSender struct {
	cfg EmailConfig
	now func() time.Time
}

func NewEmailSender(cfg EmailConfig) *EmailSender {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &EmailSender{cfg: cfg, now: time.Now}
}

// LogOnly reports whether SMTP credentials are missing.
func (e *EmailSender) LogOnly() bool {
	return e.cfg.Host == "" || e.cfg.Username == "" || e.cfg.Password == ""
}

func (e *EmailSender) Send(ctx context.Context, msg Message) error {
	if msg.ToEmail == "" {
		return fmt.Errorf("recipient email is required")
	}
	if e.LogOnly() {
		logger.Info("smtp not configured, reminder logged only", "to", msg.ToEmail, "message", msg.Body)
		return nil
	}

	raw, err := e.Compose(msg)
	if err != nil {
		return err
	}
	if err := e.deliver(ctx, msg.ToEmail, raw); err != nil {
		return fmt.Errorf("SMTP send error: %w", err)
	}
	logger.Debug("reminder email sent", "to", msg.ToEmail)
	return nil
}

// Compose renders the full MIME message for msg.
func (e *EmailSender) Compose(msg Message) ([]byte, error) {
	var body bytes.Buffer
	err := reminderEmail.Execute(&body, struct {
		Name      string
		Body      string
		LaunchURL string
	}{
		Name:      greetingName(msg),
		Body:      msg.Body,
		LaunchURL: e.launchURL(msg.LaunchID),
	})
	if err != nil {
		return nil, fmt.Errorf("render reminder email: %w", err)
	}

	var h mail.Header
	h.SetDate(e.now())
	h.SetSubject(ReminderSubject)
	h.SetAddressList("From", []*mail.Address{{Name: "GoToLaunch", Address: e.cfg.From}})
	h.SetAddressList("To", []*mail.Address{{Name: msg.ToName, Address: msg.ToEmail}})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return nil, fmt.Errorf("write mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close mail writer: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *EmailSender) launchURL(launchID string) string {
	if e.cfg.AppURL == "" || launchID == "" {
		return ""
	}
	return e.cfg.AppURL + "/launches/" + launchID
}

func greetingName(msg Message) string {
	if msg.ToName != "" {
		return msg.ToName
	}
	return "there"
}

// deliver runs one SMTP session. Port 465 uses implicit TLS; other ports
// upgrade with STARTTLS when the server offers it.
func (e *EmailSender) deliver(ctx context.Context, to string, raw []byte) error {
	addr := net.JoinHostPort(e.cfg.Host, e.cfg.Port)
	tlsConfig := &tls.Config{ServerName: e.cfg.Host}

	dialer := &net.Dialer{Timeout: 15 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if e.cfg.Port == "465" {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, e.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok && e.cfg.Port != "465" {
		if err := client.StartTLS(tlsConfig); err != nil {
			return err
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(e.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
