package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryPre    = "pre"
	CategoryLaunch = "launch"
	CategoryPost   = "post"
)

// ValidCategory reports whether c is one of the checklist phases.
func ValidCategory(c string) bool {
	switch c {
	case CategoryPre, CategoryLaunch, CategoryPost:
		return true
	}
	return false
}

type Checklist struct {
	ChecklistID string    `gorm:"column:checklist_id;primaryKey;type:varchar(36)"`
	LaunchID    string    `gorm:"column:launch_id;type:varchar(36);not null;index:idx_checklists_launch_completed,priority:1"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	DueDate     time.Time `gorm:"column:due_date;not null"`
	Category    string    `gorm:"column:category;type:varchar(16);default:'pre';not null"`
	Completed   bool      `gorm:"column:completed;not null;default:false;index:idx_checklists_launch_completed,priority:2"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Checklist) TableName() string {
	return "checklists"
}

func (c *Checklist) BeforeCreate(tx *gorm.DB) error {
	if c.ChecklistID == "" {
		c.ChecklistID = uuid.NewString()
	}
	return nil
}

func (c *Checklist) BeforeSave(tx *gorm.DB) error {
	c.DueDate = c.DueDate.UTC()
	return nil
}
