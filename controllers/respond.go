package controllers

import (
	"net/http"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates a typed service error into the UI-facing flag pair:
// a stable code the UI can branch on and a transient toast message. The code
// comes from the error taxonomy, never from matching on error text.
func respondError(c *gin.Context, err error) {
	code := utils.Code(err)
	c.JSON(statusFor(code), gin.H{"code": code, "message": toastFor(code)})
}

func statusFor(code string) int {
	switch code {
	case "remote_unavailable":
		return http.StatusBadGateway
	case "not_found":
		return http.StatusNotFound
	case "auth_rejected":
		return http.StatusUnauthorized
	case "malformed_response":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toastFor(code string) string {
	switch code {
	case "remote_unavailable":
		return "Network problem, please try again"
	case "not_found":
		return "Not found"
	case "auth_rejected":
		return "Please sign in again"
	case "malformed_response":
		return "Unexpected response from server"
	case "local_storage_failure":
		return "Could not update your pantry"
	default:
		return "Something went wrong"
	}
}
