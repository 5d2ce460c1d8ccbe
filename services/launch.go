package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"gotolaunch/logger"
	"gotolaunch/model"
)

var productURLPattern = regexp.MustCompile(`^(https?:\/\/)?([\da-z\.-]+)\.([a-z\.]{2,6})([\/\w \.-]*)*\/?$`)

// ReminderScheduler creates the reminder for one checklist item.
type ReminderScheduler interface {
	ScheduleForChecklistItem(ctx context.Context, userID, launchID string, item model.Checklist) (*model.Reminder, error)
}

type LaunchService struct {
	db         *gorm.DB
	users      *UserDirectory
	checklists *ChecklistService
	reminders  ReminderScheduler
}

func NewLaunchService(db *gorm.DB, users *UserDirectory, checklists *ChecklistService, reminders ReminderScheduler) *LaunchService {
	return &LaunchService{
		db:         db,
		users:      users,
		checklists: checklists,
		reminders:  reminders,
	}
}

// LaunchInput is the caller-supplied part of a new launch. LaunchDate accepts
// RFC 3339 or YYYY-MM-DD; Timezone defaults to the owner's.
type LaunchInput struct {
	ProductName string
	ProductURL  string
	LaunchDate  string
	Timezone    string
}

type ReminderFailure struct {
	ChecklistID string
	Err         error
}

// GenerationReport records what the checklist pipeline produced for a launch.
type GenerationReport struct {
	Items            []model.Checklist
	Reminders        []model.Reminder
	ReminderFailures []ReminderFailure
}

func loadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, validationError("unknown timezone %q", name)
	}
	return loc, nil
}

// Create stores a launch for a paid user, then generates its checklist and
// reminders. A failing generation step is logged and reflected in the report
// but does not fail the launch. Generation runs to completion even if ctx is
// cancelled once the launch is stored.
func (s *LaunchService) Create(ctx context.Context, userID string, in LaunchInput) (*model.Launch, *GenerationReport, error) {
	name := strings.TrimSpace(in.ProductName)
	productURL := strings.TrimSpace(in.ProductURL)
	if name == "" || productURL == "" || strings.TrimSpace(in.LaunchDate) == "" {
		return nil, nil, validationError("productName, productUrl and launchDate are required")
	}
	if !productURLPattern.MatchString(strings.ToLower(productURL)) {
		return nil, nil, validationError("invalid product URL")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user.Plan != model.PlanPaid {
		return nil, nil, fmt.Errorf("%w: a paid plan is required to create launches", ErrForbidden)
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = user.Timezone
	}
	if tz == "" {
		tz = "UTC"
	}
	loc, err := loadLocation(tz)
	if err != nil {
		return nil, nil, err
	}
	launchDate, err := ParseDate(in.LaunchDate, loc)
	if err != nil {
		return nil, nil, err
	}

	launch := model.Launch{
		UserID:      userID,
		ProductName: name,
		ProductURL:  productURL,
		LaunchDate:  launchDate,
		Timezone:    tz,
		Status:      model.LaunchUpcoming,
	}
	if err := s.db.WithContext(ctx).Create(&launch).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create launch: %w", err)
	}
	logger.Info("launch created", "launch", launch.LaunchID, "user", userID, "launchDate", launchDate.Format(time.RFC3339))

	report := s.generate(context.WithoutCancel(ctx), &launch, launchDate.In(loc))
	return &launch, report, nil
}

// generate runs the checklist pipeline. launchDate must be in the launch's
// timezone so offsets and reminder text follow local calendar days.
func (s *LaunchService) generate(ctx context.Context, launch *model.Launch, launchDate time.Time) *GenerationReport {
	report := &GenerationReport{}
	items, err := s.checklists.CreateMany(ctx, GenerateChecklist(launch.LaunchID, launchDate))
	if err != nil {
		logger.Error("checklist generation failed", "launch", launch.LaunchID, "err", err)
		return report
	}
	report.Items = items

	loc := launchDate.Location()
	for _, item := range items {
		item.DueDate = item.DueDate.In(loc)
		reminder, err := s.reminders.ScheduleForChecklistItem(ctx, launch.UserID, launch.LaunchID, item)
		if err != nil {
			logger.Warn("reminder scheduling failed", "launch", launch.LaunchID, "checklist", item.ChecklistID, "err", err)
			report.ReminderFailures = append(report.ReminderFailures, ReminderFailure{ChecklistID: item.ChecklistID, Err: err})
			continue
		}
		report.Reminders = append(report.Reminders, *reminder)
	}
	logger.Info("launch checklist generated", "launch", launch.LaunchID, "items", len(report.Items), "reminders", len(report.Reminders))
	return report
}

func (s *LaunchService) List(ctx context.Context, userID string) ([]model.Launch, error) {
	var launches []model.Launch
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&launches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list launches for user %s: %w", userID, err)
	}
	return launches, nil
}

// Authorize returns the launch when userID owns it.
func (s *LaunchService) Authorize(ctx context.Context, userID, launchID string) (*model.Launch, error) {
	var launch model.Launch
	if err := s.db.WithContext(ctx).Where("launch_id = ?", launchID).First(&launch).Error; err != nil {
		return nil, lookupError(err, "launch", launchID)
	}
	if launch.UserID != userID {
		return nil, fmt.Errorf("launch %s: %w", launchID, ErrForbidden)
	}
	return &launch, nil
}

func (s *LaunchService) Get(ctx context.Context, userID, launchID string) (*model.Launch, error) {
	return s.Authorize(ctx, userID, launchID)
}

// Delete removes the launch with its checklist items and reminders.
func (s *LaunchService) Delete(ctx context.Context, userID, launchID string) error {
	if _, err := s.Authorize(ctx, userID, launchID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("launch_id = ?", launchID).Delete(&model.Reminder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("launch_id = ?", launchID).Delete(&model.Checklist{}).Error; err != nil {
			return err
		}
		result := tx.Where("launch_id = ?", launchID).Delete(&model.Launch{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lookupError(err, "launch", launchID)
		}
		return fmt.Errorf("failed to delete launch %s: %w", launchID, err)
	}
	logger.Info("launch deleted", "launch", launchID, "user", userID)
	return nil
}
