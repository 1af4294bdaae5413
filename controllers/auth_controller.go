package controllers

import (
	"log"
	"net/http"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users     *services.UserService
	analytics services.Analytics
	state     *AuthState
}

func NewAuthController(users *services.UserService, analytics services.Analytics) *AuthController {
	return &AuthController{users: users, analytics: analytics, state: NewAuthState()}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ac.state.Set(input.Email, StateAuthenticating, "")
	res := ac.users.Login(c.Request.Context(), input.Email, input.Password)

	switch res.Status {
	case services.LoginSuccess:
		token, err := utils.GenerateJWT(res.Session.UserID, res.Session.Email)
		if err != nil {
			ac.state.Set(input.Email, StateError, "could not establish session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}
		ac.state.Set(input.Email, StateSuccess, "")
		ac.analytics.Event("login", res.Session.Email)
		c.JSON(http.StatusOK, gin.H{"status": StateSuccess, "token": token, "userId": res.Session.UserID})

	case services.LoginUserNotFound:
		ac.state.Set(input.Email, StateUserNotFound, "")
		c.JSON(http.StatusNotFound, gin.H{"status": StateUserNotFound})

	default:
		ac.state.Set(input.Email, StateError, res.Message)
		c.JSON(http.StatusUnauthorized, gin.H{"status": StateError, "message": res.Message})
	}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emailVerified, err := ac.users.Register(c.Request.Context(), input.Email, input.Password, input.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	go func(email, username string) {
		if err := utils.SendWelcomeEmail(email, username); err != nil {
			log.Printf("welcome email: %v", err)
		}
	}(input.Email, input.Username)

	ac.analytics.Event("register", input.Email)
	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "emailVerified": emailVerified})
}

// State reports one login flow's state, keyed by the email the attempt used;
// terminal states are consumed by this read and reset to idle.
func (ac *AuthController) State(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter required"})
		return
	}
	state, message := ac.state.Consume(email)
	c.JSON(http.StatusOK, gin.H{"status": state, "message": message})
}

type RefreshInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) RefreshSession(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refreshed := ac.users.RefreshSessionIfNeeded(c.Request.Context(), input.Email, input.Password)
	c.JSON(http.StatusOK, gin.H{"refreshed": refreshed})
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Always the same answer, the caller must not learn whether the account exists.
	if err := ac.users.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
}
