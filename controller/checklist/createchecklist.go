package checklist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/controller"
	"gotolaunch/dto"
	"gotolaunch/services"
)

func CreateChecklist(c *gin.Context, checklists *services.ChecklistService, launches *services.LaunchService) {
	var req dto.CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide launchId, title and dueDate"})
		return
	}

	ctx := c.Request.Context()
	launch, err := launches.Authorize(ctx, controller.UserID(c), req.LaunchID)
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to create checklist item")
		return
	}

	dueDate, err := services.ParseDate(req.DueDate, launch.Location())
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to create checklist item")
		return
	}

	item, err := checklists.CreateCustom(ctx, services.CustomChecklistInput{
		LaunchID:    launch.LaunchID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Category:    req.Category,
	})
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to create checklist item")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Checklist item created successfully",
		"checklist": dto.NewChecklistResponse(*item),
	})
}
