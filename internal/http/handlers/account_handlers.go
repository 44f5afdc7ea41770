package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// defaultAccountUsername is the seeded customer returned when the queried
// user cannot be resolved, matching the demo API's permissive behavior.
const defaultAccountUsername = "neil"

// AccountHandlers serves the minimal account projection the transfer form
// reads its fee from
type AccountHandlers struct {
	userRepo    domain.UserDirectory
	accountRepo domain.AccountDirectory
}

// NewAccountHandlers creates new account handlers
func NewAccountHandlers(userRepo domain.UserDirectory, accountRepo domain.AccountDirectory) *AccountHandlers {
	return &AccountHandlers{
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

// List returns the accounts for ?user=<identifier>. The identifier may be a
// username or the "First Last" display name the client session carries.
func (h *AccountHandlers) List(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("user"))

	username := h.resolveUsername(c, raw)
	account, err := h.accountRepo.FindByUsername(c.Request.Context(), username)
	if err != nil {
		account, err = h.accountRepo.FindByUsername(c.Request.Context(), defaultAccountUsername)
	}
	if err != nil {
		log.Printf("GET /accounts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch accounts"})
		return
	}

	c.JSON(http.StatusOK, []domain.Account{*account})
}

// resolveUsername maps a raw identifier to a stored username. A "First Last"
// display name is matched case-insensitively against the user directory.
func (h *AccountHandlers) resolveUsername(c *gin.Context, raw string) string {
	if raw == "" {
		return defaultAccountUsername
	}
	if !strings.Contains(raw, " ") {
		return strings.ToLower(raw)
	}

	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		return defaultAccountUsername
	}
	for i := range users {
		display := users[i].FirstName + " " + users[i].LastName
		if strings.EqualFold(display, raw) {
			return users[i].Username
		}
	}
	return defaultAccountUsername
}

// UserHandlers serves the admin-only user listing
type UserHandlers struct {
	userRepo domain.UserDirectory
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userRepo domain.UserDirectory) *UserHandlers {
	return &UserHandlers{userRepo: userRepo}
}

// UserSummary is a user record with credentials stripped
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

// List returns every user, password hashes excluded
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}

	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, UserSummary{
			ID:        users[i].ID,
			Username:  users[i].Username,
			FirstName: users[i].FirstName,
			LastName:  users[i].LastName,
			Email:     users[i].Email,
			Role:      users[i].Role,
			IsActive:  users[i].IsActive,
		})
	}
	c.JSON(http.StatusOK, out)
}
