package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// AuthHandlers handles authentication HTTP requests for the user store
type AuthHandlers struct {
	userRepo    domain.UserDirectory
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(userRepo domain.UserDirectory, passwordSvc domain.PasswordService, tokenSvc domain.TokenService) *AuthHandlers {
	return &AuthHandlers{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// LoginRequest represents login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser is the profile block of a login response
type LoginUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Login verifies credentials and mints a bearer token. The response shape is
// the contract the client's session manager validates against: success,
// token and user must all be present.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.userRepo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is inactive"})
		return
	}
	if !h.passwordSvc.Verify(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := h.tokenSvc.Generate(user.Username, user.Role)
	if err != nil {
		log.Printf("login: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": LoginUser{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
		},
	})
}
