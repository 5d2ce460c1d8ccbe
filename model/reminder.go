package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder is a one-time notification. Sent is true exactly when SentAt is set.
type Reminder struct {
	ReminderID  string     `gorm:"column:reminder_id;primaryKey;type:varchar(36)"`
	UserID      string     `gorm:"column:user_id;type:varchar(36);not null;index"`
	LaunchID    string     `gorm:"column:launch_id;type:varchar(36);not null;index"`
	ChecklistID *string    `gorm:"column:checklist_id;type:varchar(36);index"`
	SendAt      time.Time  `gorm:"column:send_at;not null;index:idx_reminders_due,priority:2"`
	Message     string     `gorm:"column:message;type:text;not null"`
	Sent        bool       `gorm:"column:sent;not null;default:false;index:idx_reminders_due,priority:1"`
	SentAt      *time.Time `gorm:"column:sent_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Reminder) TableName() string {
	return "reminders"
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ReminderID == "" {
		r.ReminderID = uuid.NewString()
	}
	return nil
}

func (r *Reminder) BeforeSave(tx *gorm.DB) error {
	r.SendAt = r.SendAt.UTC()
	if r.SentAt != nil {
		sentAt := r.SentAt.UTC()
		r.SentAt = &sentAt
	}
	return nil
}
