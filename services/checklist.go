package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"gotolaunch/model"
)

type ChecklistService struct {
	db *gorm.DB
}

func NewChecklistService(db *gorm.DB) *ChecklistService {
	return &ChecklistService{db: db}
}

// CustomChecklistInput describes a user-authored checklist item.
type CustomChecklistInput struct {
	LaunchID    string
	Title       string
	Description string
	DueDate     time.Time
	Category    string
}

// ChecklistPatch holds the fields to change on a checklist item. Nil fields
// are left untouched.
type ChecklistPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Category    *string
	Completed   *bool
}

type ChecklistStats struct {
	Total           int64
	Completed       int64
	Pending         int64
	ProgressPercent int
}

// Progress renders the completion percentage, e.g. "33%".
func (s ChecklistStats) Progress() string {
	return fmt.Sprintf("%d%%", s.ProgressPercent)
}

// ComputeStats derives pending and progress from raw counts. Progress is
// rounded half away from zero and is 0 for an empty checklist.
func ComputeStats(total, completed int64) ChecklistStats {
	stats := ChecklistStats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
	}
	if total > 0 {
		stats.ProgressPercent = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return stats
}

// CreateMany persists items in a single transaction; either all are stored or
// none are.
func (s *ChecklistService) CreateMany(ctx context.Context, items []model.Checklist) ([]model.Checklist, error) {
	if len(items) == 0 {
		return items, nil
	}
	for i := range items {
		if err := validateChecklist(&items[i]); err != nil {
			return nil, err
		}
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist items: %w", err)
	}
	return items, nil
}

func (s *ChecklistService) CreateCustom(ctx context.Context, in CustomChecklistInput) (*model.Checklist, error) {
	item := model.Checklist{
		LaunchID:    strings.TrimSpace(in.LaunchID),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Category:    strings.TrimSpace(in.Category),
	}
	if item.Category == "" {
		item.Category = model.CategoryPre
	}
	if err := validateChecklist(&item); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}
	return &item, nil
}

func validateChecklist(item *model.Checklist) error {
	if item.LaunchID == "" {
		return validationError("launchId is required")
	}
	if item.Title == "" {
		return validationError("title is required")
	}
	if item.DueDate.IsZero() {
		return validationError("dueDate is required")
	}
	if !model.ValidCategory(item.Category) {
		return validationError("category must be one of pre, launch, post")
	}
	return nil
}

// ListByLaunch returns a launch's items by due date, oldest first. Items due
// at the same instant keep their creation order.
func (s *ChecklistService) ListByLaunch(ctx context.Context, launchID string) ([]model.Checklist, error) {
	var items []model.Checklist
	err := s.db.WithContext(ctx).
		Where("launch_id = ?", launchID).
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist for launch %s: %w", launchID, err)
	}
	return items, nil
}

func (s *ChecklistService) Get(ctx context.Context, checklistID string) (*model.Checklist, error) {
	var item model.Checklist
	if err := s.db.WithContext(ctx).Where("checklist_id = ?", checklistID).First(&item).Error; err != nil {
		return nil, lookupError(err, "checklist item", checklistID)
	}
	return &item, nil
}

// Toggle flips the completion flag in the database and returns the stored item.
func (s *ChecklistService) Toggle(ctx context.Context, checklistID string) (*model.Checklist, error) {
	var item model.Checklist
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Checklist{}).
			Where("checklist_id = ?", checklistID).
			Update("completed", gorm.Expr("NOT completed"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("checklist_id = ?", checklistID).First(&item).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lookupError(err, "checklist item", checklistID)
		}
		return nil, fmt.Errorf("failed to toggle checklist item %s: %w", checklistID, err)
	}
	return &item, nil
}

// Update applies a sparse patch and returns the stored item.
func (s *ChecklistService) Update(ctx context.Context, checklistID string, patch ChecklistPatch) (*model.Checklist, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, validationError("title cannot be empty")
		}
		updates["title"] = title
	}
	if patch.Description != nil {
		updates["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.DueDate != nil {
		if patch.DueDate.IsZero() {
			return nil, validationError("dueDate cannot be empty")
		}
		updates["due_date"] = patch.DueDate.UTC()
	}
	if patch.Category != nil {
		if !model.ValidCategory(*patch.Category) {
			return nil, validationError("category must be one of pre, launch, post")
		}
		updates["category"] = *patch.Category
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	var item model.Checklist
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_id = ?", checklistID).First(&item).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		// UpdateColumns skips the BeforeSave hook; due_date is normalized above.
		updates["updated_at"] = time.Now().UTC()
		if err := tx.Model(&model.Checklist{}).Where("checklist_id = ?", checklistID).UpdateColumns(updates).Error; err != nil {
			return err
		}
		return tx.Where("checklist_id = ?", checklistID).First(&item).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lookupError(err, "checklist item", checklistID)
		}
		return nil, fmt.Errorf("failed to update checklist item %s: %w", checklistID, err)
	}
	return &item, nil
}

// Delete removes the item and every reminder attached to it.
func (s *ChecklistService) Delete(ctx context.Context, checklistID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("checklist_id = ?", checklistID).Delete(&model.Checklist{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("checklist_id = ?", checklistID).Delete(&model.Reminder{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lookupError(err, "checklist item", checklistID)
		}
		return fmt.Errorf("failed to delete checklist item %s: %w", checklistID, err)
	}
	return nil
}

// Stats counts a launch's items. An unknown launch yields all zeros.
func (s *ChecklistService) Stats(ctx context.Context, launchID string) (ChecklistStats, error) {
	var total, completed int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Checklist{}).Where("launch_id = ?", launchID).Count(&total).Error; err != nil {
		return ChecklistStats{}, fmt.Errorf("failed to count checklist for launch %s: %w", launchID, err)
	}
	if err := db.Model(&model.Checklist{}).Where("launch_id = ? AND completed = ?", launchID, true).Count(&completed).Error; err != nil {
		return ChecklistStats{}, fmt.Errorf("failed to count completed checklist for launch %s: %w", launchID, err)
	}
	return ComputeStats(total, completed), nil
}
