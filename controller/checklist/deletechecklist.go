package checklist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/controller"
	"gotolaunch/services"
)

func DeleteChecklist(c *gin.Context, checklists *services.ChecklistService, launches *services.LaunchService) {
	ctx := c.Request.Context()
	checklistID := c.Param("id")
	if _, _, err := ownedItem(ctx, checklists, launches, controller.UserID(c), checklistID); err != nil {
		controller.ErrorResponse(c, err, "Failed to delete checklist item")
		return
	}

	if err := checklists.Delete(ctx, checklistID); err != nil {
		controller.ErrorResponse(c, err, "Failed to delete checklist item")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Checklist item deleted successfully",
	})
}
