package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RENDER", "PORT", "JWT_SECRET_KEY", "APP_URL", "DB_DRIVER", "DB_DSN",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM",
		"REMINDER_CRON", "REMINDER_SEND_TIMEOUT", "LOG_LEVEL", "LOG_FILE",
		"GOOGLE_APPLICATION_CREDENTIALS_1",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.SMTP.Port != "587" {
		t.Errorf("SMTP.Port = %q, want 587", cfg.SMTP.Port)
	}
	if cfg.Reminder.Cadence != DefaultReminderCron {
		t.Errorf("Reminder.Cadence = %q, want %q", cfg.Reminder.Cadence, DefaultReminderCron)
	}
	if cfg.Reminder.SendTimeout != DefaultReminderSendTimeout {
		t.Errorf("Reminder.SendTimeout = %v, want %v", cfg.Reminder.SendTimeout, DefaultReminderSendTimeout)
	}
	if cfg.AppURL != "http://localhost:3000" {
		t.Errorf("AppURL = %q", cfg.AppURL)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with no secret and DSN returned no error")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://localhost/gotolaunch")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_URL", "https://gotolaunch.app/")
	t.Setenv("REMINDER_CRON", "*/1 * * * *")
	t.Setenv("REMINDER_SEND_TIMEOUT", "45s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9090" || cfg.Database.Driver != "postgres" || cfg.JWTSecret != "secret" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.AppURL != "https://gotolaunch.app" {
		t.Errorf("AppURL = %q, want trailing slash trimmed", cfg.AppURL)
	}
	if cfg.Reminder.Cadence != "*/1 * * * *" || cfg.Reminder.SendTimeout != 45*time.Second {
		t.Errorf("Reminder = %+v", cfg.Reminder)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SMTP_HOST")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SMTP_HOST=smtp.example.com\n"), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("SMTP_HOST") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SMTP.Host != "smtp.example.com" {
		t.Errorf("SMTP.Host = %q, want value from env file", cfg.SMTP.Host)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("REMINDER_SEND_TIMEOUT", "0s")
	if _, err := Load(""); err == nil {
		t.Error("Load() with zero send timeout returned no error")
	}
}
