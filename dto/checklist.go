package dto

import (
	"time"

	"gotolaunch/model"
	"gotolaunch/services"
)

type CreateChecklistRequest struct {
	LaunchID    string `json:"launchId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" binding:"required"`
	Category    string `json:"category" binding:"omitempty,oneof=pre launch post"`
}

// UpdateChecklistRequest is a sparse patch; omitted fields are unchanged.
type UpdateChecklistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Category    *string `json:"category" binding:"omitempty,oneof=pre launch post"`
	Completed   *bool   `json:"completed"`
}

type ChecklistResponse struct {
	ID          string    `json:"id"`
	LaunchID    string    `json:"launchId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewChecklistResponse(item model.Checklist) ChecklistResponse {
	return ChecklistResponse{
		ID:          item.ChecklistID,
		LaunchID:    item.LaunchID,
		Title:       item.Title,
		Description: item.Description,
		DueDate:     item.DueDate.UTC(),
		Category:    item.Category,
		Completed:   item.Completed,
		CreatedAt:   item.CreatedAt.UTC(),
	}
}

func NewChecklistResponses(items []model.Checklist) []ChecklistResponse {
	out := make([]ChecklistResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewChecklistResponse(item))
	}
	return out
}

type StatsResponse struct {
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Pending   int64  `json:"pending"`
	Progress  string `json:"progress"`
}

func NewStatsResponse(stats services.ChecklistStats) StatsResponse {
	return StatsResponse{
		Total:     stats.Total,
		Completed: stats.Completed,
		Pending:   stats.Pending,
		Progress:  stats.Progress(),
	}
}
