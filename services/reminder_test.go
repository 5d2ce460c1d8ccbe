package services

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"gotolaunch/model"
	"gotolaunch/testutil"
)

func TestReminderMessage(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"utc", time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), "Reminder: Email draft is due on Jun 23, 2025"},
		{"local calendar day", time.Date(2025, 6, 23, 0, 0, 0, 0, tokyo), "Reminder: Email draft is due on Jun 23, 2025"},
		{"same instant in utc", time.Date(2025, 6, 23, 0, 0, 0, 0, tokyo).UTC(), "Reminder: Email draft is due on Jun 22, 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReminderMessage("Email draft", tt.due); got != tt.want {
				t.Errorf("ReminderMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScheduleForChecklistItem(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := NewReminderService(db)
	due := time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)
	item := model.Checklist{ChecklistID: "item-1", LaunchID: "launch-1", Title: "Email draft", DueDate: due}

	reminder, err := svc.ScheduleForChecklistItem(ctx, "user-1", "launch-1", item)
	if err != nil {
		t.Fatalf("ScheduleForChecklistItem() error = %v", err)
	}

	stored, err := svc.Get(ctx, reminder.ReminderID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !stored.SendAt.Equal(due) {
		t.Errorf("sendAt = %v, want %v", stored.SendAt, due)
	}
	if stored.Sent || stored.SentAt != nil {
		t.Errorf("new reminder sent = %v, sentAt = %v, want unsent", stored.Sent, stored.SentAt)
	}
	if stored.ChecklistID == nil || *stored.ChecklistID != "item-1" {
		t.Errorf("checklistID = %v, want item-1", stored.ChecklistID)
	}
	if stored.Message != "Reminder: Email draft is due on Jun 23, 2025" {
		t.Errorf("message = %q", stored.Message)
	}

	if _, err := svc.ScheduleForChecklistItem(ctx, "", "launch-1", item); !errors.Is(err, ErrValidation) {
		t.Errorf("missing user error = %v, want ErrValidation", err)
	}
	if _, err := svc.ScheduleForChecklistItem(ctx, "user-1", "launch-1", model.Checklist{ChecklistID: "x", Title: "t"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing due date error = %v, want ErrValidation", err)
	}
}

func TestReminderListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := NewReminderService(db)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i, offset := range []int{1, 3, 2} {
		item := model.Checklist{ChecklistID: string(rune('a' + i)), Title: "t", DueDate: base.AddDate(0, 0, offset)}
		if _, err := svc.ScheduleForChecklistItem(ctx, "user-1", "launch-1", item); err != nil {
			t.Fatalf("ScheduleForChecklistItem() error = %v", err)
		}
	}
	other := model.Checklist{ChecklistID: "z", Title: "t", DueDate: base}
	if _, err := svc.ScheduleForChecklistItem(ctx, "user-2", "launch-2", other); err != nil {
		t.Fatalf("ScheduleForChecklistItem() error = %v", err)
	}

	byUser, err := svc.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	byLaunch, err := svc.ListByLaunch(ctx, "launch-1")
	if err != nil {
		t.Fatalf("ListByLaunch() error = %v", err)
	}
	for name, list := range map[string][]model.Reminder{"ListByUser": byUser, "ListByLaunch": byLaunch} {
		if len(list) != 3 {
			t.Fatalf("%s() returned %d reminders, want 3", name, len(list))
		}
		for i := 1; i < len(list); i++ {
			if list[i].SendAt.After(list[i-1].SendAt) {
				t.Errorf("%s() not sorted newest first at %d", name, i)
			}
		}
	}
}

func TestReminderDeleteOwned(t *testing.T) {
	ctx := context.Background()
	svc := NewReminderService(testutil.NewTestDB(t))
	item := model.Checklist{ChecklistID: "item-1", Title: "t", DueDate: time.Now()}
	reminder, err := svc.ScheduleForChecklistItem(ctx, "owner", "launch-1", item)
	if err != nil {
		t.Fatalf("ScheduleForChecklistItem() error = %v", err)
	}

	if err := svc.DeleteOwned(ctx, "intruder", reminder.ReminderID); !errors.Is(err, ErrForbidden) {
		t.Errorf("DeleteOwned(intruder) error = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteOwned(ctx, "owner", reminder.ReminderID); err != nil {
		t.Fatalf("DeleteOwned(owner) error = %v", err)
	}
	if err := svc.DeleteOwned(ctx, "owner", reminder.ReminderID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteOwned() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}
