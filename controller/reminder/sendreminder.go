package reminder

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/controller"
	"gotolaunch/dto"
	"gotolaunch/scheduler"
	"gotolaunch/services"
)

func GetPendingCount(c *gin.Context, dispatcher *services.Dispatcher) {
	reminders, err := dispatcher.PendingReminders(c.Request.Context())
	if err != nil {
		controller.ErrorResponse(c, err, "Error fetching pending count")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pendingCount": len(reminders),
		"reminders":    dto.NewPendingReminders(reminders),
	})
}

// SendPendingReminders runs a sweep immediately instead of waiting for the
// next tick. The sweep finishes even if the client disconnects.
func SendPendingReminders(c *gin.Context, driver *scheduler.Driver) {
	stats := driver.RunNow(context.WithoutCancel(c.Request.Context()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Pending reminders processed",
		"stats":   stats,
	})
}

func GetCronStatus(c *gin.Context, driver *scheduler.Driver) {
	c.JSON(http.StatusOK, driver.Status())
}
