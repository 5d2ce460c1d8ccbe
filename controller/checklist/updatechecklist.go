package checklist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/controller"
	"gotolaunch/dto"
	"gotolaunch/services"
)

func ToggleChecklist(c *gin.Context, checklists *services.ChecklistService, launches *services.LaunchService) {
	ctx := c.Request.Context()
	checklistID := c.Param("id")
	if _, _, err := ownedItem(ctx, checklists, launches, controller.UserID(c), checklistID); err != nil {
		controller.ErrorResponse(c, err, "Failed to toggle checklist item")
		return
	}

	item, err := checklists.Toggle(ctx, checklistID)
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to toggle checklist item")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Checklist item updated",
		"checklist": dto.NewChecklistResponse(*item),
	})
}

func UpdateChecklist(c *gin.Context, checklists *services.ChecklistService, launches *services.LaunchService) {
	var req dto.UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := c.Request.Context()
	checklistID := c.Param("id")
	_, launch, err := ownedItem(ctx, checklists, launches, controller.UserID(c), checklistID)
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to update checklist item")
		return
	}

	patch := services.ChecklistPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
	}
	if req.DueDate != nil {
		dueDate, err := services.ParseDate(*req.DueDate, launch.Location())
		if err != nil {
			controller.ErrorResponse(c, err, "Failed to update checklist item")
			return
		}
		patch.DueDate = &dueDate
	}

	item, err := checklists.Update(ctx, checklistID, patch)
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to update checklist item")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Checklist item updated successfully",
		"checklist": dto.NewChecklistResponse(*item),
	})
}
