package checklist

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/controller"
	"gotolaunch/dto"
	"gotolaunch/model"
	"gotolaunch/services"
)

func ChecklistController(router gin.IRouter, auth gin.HandlerFunc, checklists *services.ChecklistService, launches *services.LaunchService) {
	router.POST("/checklist/custom", auth, func(c *gin.Context) {
		CreateChecklist(c, checklists, launches)
	})
	router.GET("/checklist/:id", auth, func(c *gin.Context) {
		GetChecklist(c, checklists, launches)
	})
	router.GET("/checklist/:id/stats", auth, func(c *gin.Context) {
		GetStats(c, checklists, launches)
	})
	router.PUT("/checklist/:id/toggle", auth, func(c *gin.Context) {
		ToggleChecklist(c, checklists, launches)
	})
	router.PUT("/checklist/:id", auth, func(c *gin.Context) {
		UpdateChecklist(c, checklists, launches)
	})
	router.DELETE("/checklist/:id", auth, func(c *gin.Context) {
		DeleteChecklist(c, checklists, launches)
	})
}

// GetChecklist lists a launch's items with their stats. The path parameter
// is the launch id.
func GetChecklist(c *gin.Context, checklists *services.ChecklistService, launches *services.LaunchService) {
	ctx := c.Request.Context()
	launchID := c.Param("id")
	if _, err := launches.Authorize(ctx, controller.UserID(c), launchID); err != nil {
		controller.ErrorResponse(c, err, "Failed to get checklist")
		return
	}

	items, err := checklists.ListByLaunch(ctx, launchID)
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to get checklist")
		return
	}
	stats, err := checklists.Stats(ctx, launchID)
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to get checklist stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"launchId":   launchID,
		"stats":      dto.NewStatsResponse(stats),
		"checklists": dto.NewChecklistResponses(items),
	})
}

func GetStats(c *gin.Context, checklists *services.ChecklistService, launches *services.LaunchService) {
	ctx := c.Request.Context()
	launchID := c.Param("id")
	if _, err := launches.Authorize(ctx, controller.UserID(c), launchID); err != nil {
		controller.ErrorResponse(c, err, "Failed to get checklist stats")
		return
	}

	stats, err := checklists.Stats(ctx, launchID)
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to get checklist stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"launchId": launchID,
		"stats":    dto.NewStatsResponse(stats),
	})
}

// ownedItem loads a checklist item and checks that userID owns its launch.
func ownedItem(ctx context.Context, checklists *services.ChecklistService, launches *services.LaunchService, userID, checklistID string) (*model.Checklist, *model.Launch, error) {
	item, err := checklists.Get(ctx, checklistID)
	if err != nil {
		return nil, nil, err
	}
	launch, err := launches.Authorize(ctx, userID, item.LaunchID)
	if err != nil {
		return nil, nil, err
	}
	return item, launch, nil
}
