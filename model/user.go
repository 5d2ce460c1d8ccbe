package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanFree = "free"
	PlanPaid = "paid"
)

// User is the identity provider's view of an account.
type User struct {
	UserID    string    `gorm:"column:user_id;primaryKey;type:varchar(36)"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	Plan      string    `gorm:"column:plan;type:varchar(16);default:'free';not null"`
	Timezone  string    `gorm:"column:timezone;type:varchar(64);default:'UTC';not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}
