package reminder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/controller"
	"gotolaunch/dto"
	"gotolaunch/scheduler"
	"gotolaunch/services"
)

// ReminderController registers the reminder routes. admin guards the
// endpoints that expose or act on every user's reminders.
func ReminderController(router gin.IRouter, auth, admin gin.HandlerFunc, reminders *services.ReminderService, launches *services.LaunchService, dispatcher *services.Dispatcher, driver *scheduler.Driver) {
	router.GET("/reminder/user", auth, func(c *gin.Context) {
		GetUserReminders(c, reminders)
	})
	router.GET("/reminder/launch/:launchId", auth, func(c *gin.Context) {
		GetLaunchReminders(c, reminders, launches)
	})
	router.GET("/reminder/pending-count", auth, admin, func(c *gin.Context) {
		GetPendingCount(c, dispatcher)
	})
	router.POST("/reminder/send-pending", auth, admin, func(c *gin.Context) {
		SendPendingReminders(c, driver)
	})
	router.GET("/reminder/cron-status", auth, admin, func(c *gin.Context) {
		GetCronStatus(c, driver)
	})
	router.DELETE("/reminder/:id", auth, func(c *gin.Context) {
		DeleteReminder(c, reminders)
	})
}

func GetUserReminders(c *gin.Context, reminders *services.ReminderService) {
	list, err := reminders.ListByUser(c.Request.Context(), controller.UserID(c))
	if err != nil {
		controller.ErrorResponse(c, err, "Error fetching reminders")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(list),
		"reminders": dto.NewReminderResponses(list),
	})
}

func GetLaunchReminders(c *gin.Context, reminders *services.ReminderService, launches *services.LaunchService) {
	ctx := c.Request.Context()
	launchID := c.Param("launchId")
	if _, err := launches.Authorize(ctx, controller.UserID(c), launchID); err != nil {
		controller.ErrorResponse(c, err, "Error fetching launch reminders")
		return
	}

	list, err := reminders.ListByLaunch(ctx, launchID)
	if err != nil {
		controller.ErrorResponse(c, err, "Error fetching launch reminders")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"launchId":  launchID,
		"count":     len(list),
		"reminders": dto.NewReminderResponses(list),
	})
}

func DeleteReminder(c *gin.Context, reminders *services.ReminderService) {
	if err := reminders.DeleteOwned(c.Request.Context(), controller.UserID(c), c.Param("id")); err != nil {
		controller.ErrorResponse(c, err, "Error deleting reminder")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reminder deleted successfully",
	})
}
