package launch

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/controller"
	"gotolaunch/dto"
	"gotolaunch/services"
)

func LaunchController(router gin.IRouter, auth gin.HandlerFunc, launches *services.LaunchService) {
	router.POST("/launch/create", auth, func(c *gin.Context) {
		CreateLaunch(c, launches)
	})
	router.GET("/launch/all", auth, func(c *gin.Context) {
		GetLaunches(c, launches)
	})
	router.GET("/launch/:id", auth, func(c *gin.Context) {
		GetLaunch(c, launches)
	})
	router.DELETE("/launch/:id", auth, func(c *gin.Context) {
		DeleteLaunch(c, launches)
	})
}

func CreateLaunch(c *gin.Context, launches *services.LaunchService) {
	var req dto.CreateLaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide productName, productUrl and launchDate"})
		return
	}

	launch, report, err := launches.Create(c.Request.Context(), controller.UserID(c), services.LaunchInput{
		ProductName: req.ProductName,
		ProductURL:  req.ProductURL,
		LaunchDate:  req.LaunchDate,
		Timezone:    req.Timezone,
	})
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to create launch")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Launch created successfully",
		"launch":    dto.NewLaunchResponse(*launch),
		"checklist": dto.NewGenerationResponse(report),
	})
}

func GetLaunches(c *gin.Context, launches *services.LaunchService) {
	list, err := launches.List(c.Request.Context(), controller.UserID(c))
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to get launches")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(list),
		"launches": dto.NewLaunchResponses(list),
	})
}

func GetLaunch(c *gin.Context, launches *services.LaunchService) {
	launch, err := launches.Get(c.Request.Context(), controller.UserID(c), c.Param("id"))
	if err != nil {
		controller.ErrorResponse(c, err, "Failed to get launch")
		return
	}
	c.JSON(http.StatusOK, gin.H{"launch": dto.NewLaunchResponse(*launch)})
}

func DeleteLaunch(c *gin.Context, launches *services.LaunchService) {
	if err := launches.Delete(c.Request.Context(), controller.UserID(c), c.Param("id")); err != nil {
		controller.ErrorResponse(c, err, "Failed to delete launch")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Launch deleted successfully",
	})
}
