package services

import (
	"context"
	"errors"
	"testing"

	"gotolaunch/model"
	"gotolaunch/testutil"
)

func TestUserDirectory(t *testing.T) {
	ctx := context.Background()
	users := NewUserDirectory(testutil.NewTestDB(t))

	created, err := users.Create(ctx, model.User{Email: " maker@example.com ", Name: "Maker"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Plan != model.PlanFree || created.Timezone != "UTC" || created.Email != "maker@example.com" {
		t.Errorf("Create() = %+v, want free plan, UTC and trimmed email", created)
	}

	recipient, err := users.LookupRecipient(ctx, created.UserID)
	if err != nil {
		t.Fatalf("LookupRecipient() error = %v", err)
	}
	if recipient != (Recipient{Email: "maker@example.com", Name: "Maker"}) {
		t.Errorf("LookupRecipient() = %+v", recipient)
	}

	if _, err := users.LookupRecipient(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LookupRecipient(ghost) error = %v, want ErrNotFound", err)
	}

	invalid := []model.User{
		{Email: "not-an-email"},
		{Email: "a@example.com", Plan: "enterprise"},
		{Email: "b@example.com", Timezone: "Nowhere/Land"},
	}
	for _, u := range invalid {
		if _, err := users.Create(ctx, u); !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%+v) error = %v, want ErrValidation", u, err)
		}
	}
}
