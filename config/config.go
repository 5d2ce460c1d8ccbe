package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"gotolaunch/logger"
)

const (
	DefaultReminderCron        = "*/5 * * * *"
	DefaultReminderSendTimeout = 30 * time.Second
)

type Config struct {
	Port      string
	JWTSecret string
	AppURL    string

	Database Database
	SMTP     SMTP
	Reminder Reminder
	Log      logger.Config

	// FirebaseCredentials is the service account file used for push delivery.
	// Push is disabled when empty.
	FirebaseCredentials string
}

type Database struct {
	Driver string
	DSN    string
}

type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Reminder struct {
	Cadence     string
	SendTimeout time.Duration
}

// Load reads configuration from the environment. envFile is loaded first when
// it exists; values already present in the environment win.
func Load(envFile string) (*Config, error) {
	if os.Getenv("RENDER") == "" && envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			logger.Debug("env file not loaded, using process environment", "file", envFile)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("REMINDER_CRON", DefaultReminderCron)
	v.SetDefault("REMINDER_SEND_TIMEOUT", DefaultReminderSendTimeout)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Port:      v.GetString("PORT"),
		JWTSecret: v.GetString("JWT_SECRET_KEY"),
		AppURL:    strings.TrimRight(v.GetString("APP_URL"), "/"),
		Database: Database{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:    v.GetString("DB_DSN"),
		},
		SMTP: SMTP{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Reminder: Reminder{
			Cadence:     v.GetString("REMINDER_CRON"),
			SendTimeout: v.GetDuration("REMINDER_SEND_TIMEOUT"),
		},
		Log: logger.Config{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		FirebaseCredentials: v.GetString("GOOGLE_APPLICATION_CREDENTIALS_1"),
	}

	if cfg.Reminder.SendTimeout <= 0 {
		return nil, fmt.Errorf("REMINDER_SEND_TIMEOUT must be positive, got %s", cfg.Reminder.SendTimeout)
	}
	return cfg, nil
}

// Validate reports settings required to serve HTTP traffic.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing required environment variable JWT_SECRET_KEY")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("missing required environment variable DB_DSN")
	}
	return nil
}
