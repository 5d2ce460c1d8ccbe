package dto

import (
	"time"

	"gotolaunch/model"
	"gotolaunch/services"
)

type CreateLaunchRequest struct {
	ProductName string `json:"productName" binding:"required"`
	ProductURL  string `json:"productUrl" binding:"required"`
	LaunchDate  string `json:"launchDate" binding:"required"`
	Timezone    string `json:"timezone"`
}

type LaunchResponse struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	ProductURL  string    `json:"productUrl"`
	LaunchDate  time.Time `json:"launchDate"`
	Timezone    string    `json:"timezone"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewLaunchResponse(l model.Launch) LaunchResponse {
	return LaunchResponse{
		ID:          l.LaunchID,
		ProductName: l.ProductName,
		ProductURL:  l.ProductURL,
		LaunchDate:  l.LaunchDate.UTC(),
		Timezone:    l.Timezone,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt.UTC(),
	}
}

func NewLaunchResponses(launches []model.Launch) []LaunchResponse {
	out := make([]LaunchResponse, 0, len(launches))
	for _, l := range launches {
		out = append(out, NewLaunchResponse(l))
	}
	return out
}

type ReminderFailureResponse struct {
	ChecklistID string `json:"checklistId"`
	Error       string `json:"error"`
}

type GenerationResponse struct {
	Items            []ChecklistResponse       `json:"items"`
	Reminders        []ReminderResponse        `json:"reminders"`
	ReminderFailures []ReminderFailureResponse `json:"reminderFailures"`
}

func NewGenerationResponse(report *services.GenerationReport) GenerationResponse {
	resp := GenerationResponse{
		Items:            []ChecklistResponse{},
		Reminders:        []ReminderResponse{},
		ReminderFailures: []ReminderFailureResponse{},
	}
	if report == nil {
		return resp
	}
	resp.Items = NewChecklistResponses(report.Items)
	resp.Reminders = NewReminderResponses(report.Reminders)
	for _, f := range report.ReminderFailures {
		resp.ReminderFailures = append(resp.ReminderFailures, ReminderFailureResponse{
			ChecklistID: f.ChecklistID,
			Error:       f.Err.Error(),
		})
	}
	return resp
}
