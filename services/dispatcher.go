package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"gorm.io/gorm"

	"gotolaunch/logger"
	"gotolaunch/model"
	"gotolaunch/notification"
)

const DefaultSendTimeout = 30 * time.Second

// Recipient is where a reminder is delivered.
type Recipient struct {
	Email string
	Name  string
}

// RecipientLookup resolves the owner of a reminder into a delivery address.
type RecipientLookup interface {
	LookupRecipient(ctx context.Context, userID string) (Recipient, error)
}

// DispatchStats summarizes one sweep.
type DispatchStats struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Dispatcher delivers due reminders. Delivery is at-least-once: a reminder is
// marked sent only after its sink reports success.
type Dispatcher struct {
	db          *gorm.DB
	users       RecipientLookup
	sender      notification.Sender
	sendTimeout time.Duration
	now         func() time.Time
}

func NewDispatcher(db *gorm.DB, users RecipientLookup, sender notification.Sender, sendTimeout time.Duration) *Dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	return &Dispatcher{
		db:          db,
		users:       users,
		sender:      sender,
		sendTimeout: sendTimeout,
		now:         time.Now,
	}
}

// WithClock replaces the clock used for eligibility and sent_at.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// PendingReminders returns unsent reminders whose send time has passed,
// oldest first.
func (d *Dispatcher) PendingReminders(ctx context.Context) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := d.db.WithContext(ctx).
		Where("sent = ? AND send_at <= ?", false, d.now().UTC()).
		Order("send_at ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending reminders: %w", err)
	}
	return reminders, nil
}

// DispatchPending runs one sweep. It never returns an error: internal
// failures are logged and reported as an empty result.
func (d *Dispatcher) DispatchPending(ctx context.Context) (stats DispatchStats) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("reminder sweep panicked", "panic", r, "stack", string(debug.Stack()))
			stats = DispatchStats{}
		}
	}()

	reminders, err := d.PendingReminders(ctx)
	if err != nil {
		logger.Error("reminder sweep aborted", "err", err)
		return DispatchStats{}
	}
	if len(reminders) == 0 {
		logger.Debug("no pending reminders")
		return stats
	}

	logger.Info("dispatching reminders", "pending", len(reminders))
	for _, reminder := range reminders {
		if err := d.deliver(ctx, reminder); err != nil {
			stats.Failed++
			logger.Warn("reminder delivery failed", "reminder", reminder.ReminderID, "user", reminder.UserID, "err", err)
			continue
		}
		stats.Sent++
	}
	logger.Info("reminders dispatched", "sent", stats.Sent, "failed", stats.Failed)
	return stats
}

func (d *Dispatcher) deliver(ctx context.Context, reminder model.Reminder) error {
	recipient, err := d.users.LookupRecipient(ctx, reminder.UserID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	msg := notification.Message{
		ToEmail:  recipient.Email,
		ToName:   recipient.Name,
		Body:     reminder.Message,
		LaunchID: reminder.LaunchID,
	}
	if err := d.send(ctx, msg); err != nil {
		return err
	}

	sentAt := d.now().UTC()
	result := d.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("reminder_id = ? AND sent = ?", reminder.ReminderID, false).
		UpdateColumns(map[string]interface{}{
			"sent":       true,
			"sent_at":    sentAt,
			"updated_at": sentAt,
		})
	if result.Error != nil {
		return fmt.Errorf("mark sent after delivery: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Warn("reminder already marked sent by another sweep", "reminder", reminder.ReminderID)
	}
	return nil
}

// send bounds one delivery by the configured timeout. A sink that ignores
// cancellation is abandoned once the deadline passes.
func (d *Dispatcher) send(ctx context.Context, msg notification.Message) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errChan <- fmt.Errorf("sender panicked: %v", r)
			}
		}()
		errChan <- d.sender.Send(sendCtx, msg)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("send: %w", err)
		}
		return nil
	case <-sendCtx.Done():
		return fmt.Errorf("send timed out after %s: %w", d.sendTimeout, sendCtx.Err())
	}
}
