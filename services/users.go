package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"gotolaunch/model"
)

// UserDirectory reads accounts owned by the identity provider.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (u *UserDirectory) Get(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := u.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, lookupError(err, "user", userID)
	}
	return &user, nil
}

func (u *UserDirectory) LookupRecipient(ctx context.Context, userID string) (Recipient, error) {
	user, err := u.Get(ctx, userID)
	if err != nil {
		return Recipient{}, err
	}
	if user.Email == "" {
		return Recipient{}, fmt.Errorf("user %s has no email address", userID)
	}
	return Recipient{Email: user.Email, Name: user.Name}, nil
}

// Create registers an account. It exists for local setups where no identity
// provider writes the users table.
func (u *UserDirectory) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return nil, validationError("invalid email %q", user.Email)
	}
	if user.Plan == "" {
		user.Plan = model.PlanFree
	}
	if user.Plan != model.PlanFree && user.Plan != model.PlanPaid {
		return nil, validationError("plan must be free or paid")
	}
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}
	if _, err := loadLocation(user.Timezone); err != nil {
		return nil, err
	}
	if err := u.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", user.Email, err)
	}
	return &user, nil
}
