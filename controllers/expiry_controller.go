package controllers

import (
	"net/http"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"

	"github.com/gin-gonic/gin"
)

type ExpiryController struct {
	expiry *services.ExpiryService
}

func NewExpiryController(expiry *services.ExpiryService) *ExpiryController {
	return &ExpiryController{expiry: expiry}
}

// GET /ingredients/expiring
func (ec *ExpiryController) List(c *gin.Context) {
	out, err := ec.expiry.Expiring(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /ingredients/expiring/notify: fan the alert out to hub, push, email.
func (ec *ExpiryController) Notify(c *gin.Context) {
	notified, err := ec.expiry.Notify(c.GetString("userID"), c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notified": len(notified)})
}
