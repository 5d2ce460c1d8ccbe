package dto

import (
	"time"

	"gotolaunch/model"
)

type ReminderResponse struct {
	ID          string     `json:"id"`
	LaunchID    string     `json:"launchId"`
	ChecklistID *string    `json:"checklistId,omitempty"`
	Message     string     `json:"message"`
	SendAt      time.Time  `json:"sendAt"`
	Sent        bool       `json:"sent"`
	SentAt      *time.Time `json:"sentAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewReminderResponse(r model.Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:          r.ReminderID,
		LaunchID:    r.LaunchID,
		ChecklistID: r.ChecklistID,
		Message:     r.Message,
		SendAt:      r.SendAt.UTC(),
		Sent:        r.Sent,
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if r.SentAt != nil {
		sentAt := r.SentAt.UTC()
		resp.SentAt = &sentAt
	}
	return resp
}

func NewReminderResponses(reminders []model.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, NewReminderResponse(r))
	}
	return out
}

// PendingReminder is the short form listed by the pending-count endpoint.
type PendingReminder struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	SendAt  time.Time `json:"sendAt"`
}

func NewPendingReminders(reminders []model.Reminder) []PendingReminder {
	out := make([]PendingReminder, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, PendingReminder{ID: r.ReminderID, Message: r.Message, SendAt: r.SendAt.UTC()})
	}
	return out
}
