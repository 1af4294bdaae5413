package controllers

import (
	"net/http"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	push *services.PushService
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{push: push}
}

// POST /devices  { "platform": "android", "token": "..." }
func (dc *DeviceController) Register(c *gin.Context) {
	var input struct {
		Platform string `json:"platform" binding:"required"`
		Token    string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.push.RegisterDevice(c.GetString("userID"), input.Platform, input.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": dev.ID, "platform": dev.Platform})
}
