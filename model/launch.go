package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LaunchUpcoming  = "upcoming"
	LaunchLive      = "live"
	LaunchCompleted = "completed"
)

type Launch struct {
	LaunchID    string    `gorm:"column:launch_id;primaryKey;type:varchar(36)"`
	UserID      string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_launches_user_created,priority:1"`
	ProductName string    `gorm:"column:product_name;type:varchar(255);not null"`
	ProductURL  string    `gorm:"column:product_url;type:varchar(2048);not null"`
	LaunchDate  time.Time `gorm:"column:launch_date;not null"`
	Timezone    string    `gorm:"column:timezone;type:varchar(64);default:'UTC';not null"`
	Status      string    `gorm:"column:status;type:varchar(16);default:'upcoming';not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index:idx_launches_user_created,priority:2"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Launch) TableName() string {
	return "launches"
}

func (l *Launch) BeforeCreate(tx *gorm.DB) error {
	if l.LaunchID == "" {
		l.LaunchID = uuid.NewString()
	}
	return nil
}

func (l *Launch) BeforeSave(tx *gorm.DB) error {
	l.LaunchDate = l.LaunchDate.UTC()
	return nil
}

// Location returns the launch's declared timezone, falling back to UTC.
func (l *Launch) Location() *time.Location {
	if l.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
