package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gotolaunch/model"
)

const reminderDateLayout = "Jan 2, 2006"

type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// ReminderMessage renders the reminder text for a checklist item. The date is
// formatted in due's own location.
func ReminderMessage(title string, due time.Time) string {
	return fmt.Sprintf("Reminder: %s is due on %s", title, due.Format(reminderDateLayout))
}

// ScheduleForChecklistItem creates an unsent reminder firing at the item's due
// date.
func (s *ReminderService) ScheduleForChecklistItem(ctx context.Context, userID, launchID string, item model.Checklist) (*model.Reminder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError("userId is required")
	}
	if strings.TrimSpace(launchID) == "" {
		return nil, validationError("launchId is required")
	}
	if item.ChecklistID == "" {
		return nil, validationError("checklist item has no id")
	}
	if item.DueDate.IsZero() {
		return nil, validationError("checklist item %s has no due date", item.ChecklistID)
	}

	checklistID := item.ChecklistID
	reminder := model.Reminder{
		UserID:      userID,
		LaunchID:    launchID,
		ChecklistID: &checklistID,
		SendAt:      item.DueDate,
		Message:     ReminderMessage(item.Title, item.DueDate),
		Sent:        false,
	}
	if err := s.db.WithContext(ctx).Create(&reminder).Error; err != nil {
		return nil, fmt.Errorf("failed to schedule reminder for checklist item %s: %w", checklistID, err)
	}
	return &reminder, nil
}

func (s *ReminderService) ListByUser(ctx context.Context, userID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("send_at DESC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for user %s: %w", userID, err)
	}
	return reminders, nil
}

func (s *ReminderService) ListByLaunch(ctx context.Context, launchID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := s.db.WithContext(ctx).
		Where("launch_id = ?", launchID).
		Order("send_at DESC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for launch %s: %w", launchID, err)
	}
	return reminders, nil
}

func (s *ReminderService) Get(ctx context.Context, reminderID string) (*model.Reminder, error) {
	var reminder model.Reminder
	if err := s.db.WithContext(ctx).Where("reminder_id = ?", reminderID).First(&reminder).Error; err != nil {
		return nil, lookupError(err, "reminder", reminderID)
	}
	return &reminder, nil
}

// GetOwned returns the reminder only when userID owns it.
func (s *ReminderService) GetOwned(ctx context.Context, userID, reminderID string) (*model.Reminder, error) {
	reminder, err := s.Get(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder.UserID != userID {
		return nil, fmt.Errorf("reminder %s: %w", reminderID, ErrForbidden)
	}
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, reminderID string) error {
	result := s.db.WithContext(ctx).Where("reminder_id = ?", reminderID).Delete(&model.Reminder{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete reminder %s: %w", reminderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return lookupError(gorm.ErrRecordNotFound, "reminder", reminderID)
	}
	return nil
}

// DeleteOwned deletes the reminder only when userID owns it.
func (s *ReminderService) DeleteOwned(ctx context.Context, userID, reminderID string) error {
	if _, err := s.GetOwned(ctx, userID, reminderID); err != nil {
		return err
	}
	err := s.Delete(ctx, reminderID)
	if errors.Is(err, ErrNotFound) {
		// Removed concurrently; the caller's intent is satisfied.
		return nil
	}
	return err
}
