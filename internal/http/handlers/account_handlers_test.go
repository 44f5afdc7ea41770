package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrozdorothy3-debug/swed/domain"
	"github.com/mrozdorothy3-debug/swed/internal/mocks"
)

func seededDirectory() (*mocks.MockUserDirectory, *mocks.MockAccountDirectory) {
	users := mocks.NewMockUserDirectory()
	users.ListFunc = func(ctx context.Context) ([]domain.User, error) {
		return []domain.User{
			{ID: 1, Username: "neil", FirstName: "Neil", LastName: "Harryman", Role: domain.RoleCustomer, IsActive: true},
			{ID: 2, Username: "lucy", FirstName: "Lucy", LastName: "Harrold", Role: domain.RoleCustomer, IsActive: true},
		}, nil
	}

	accounts := mocks.NewMockAccountDirectory()
	accounts.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.Account, error) {
		switch username {
		case "neil":
			return &domain.Account{ID: "primary", Type: "checking", Balance: 30000, TransferFee: 3000}, nil
		case "lucy":
			return &domain.Account{ID: "primary", Type: "checking", Balance: 27980, TransferFee: 1500}, nil
		}
		return nil, domain.ErrAccountNotFound
	}
	return users, accounts
}

func performAccounts(h *AccountHandlers, query string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/accounts", h.List)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts"+query, nil))
	return w
}

func TestAccountHandlers_List(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expectedFee float64
	}{
		{"by username", "?user=neil", 3000},
		{"by display name", "?user=Neil%20Harryman", 3000},
		{"display name is case-insensitive", "?user=lucy%20harrold", 1500},
		{"unknown user falls back to the default", "?user=nobody", 3000},
		{"unknown display name falls back to the default", "?user=No%20Body", 3000},
		{"missing query falls back to the default", "", 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, accounts := seededDirectory()
			h := NewAccountHandlers(users, accounts)

			w := performAccounts(h, tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var got []domain.Account
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Len(t, got, 1)
			assert.Equal(t, "primary", got[0].ID)
			assert.Equal(t, tt.expectedFee, got[0].TransferFee)
		})
	}
}

func TestAccountHandlers_ListStorageFailure(t *testing.T) {
	users, accounts := seededDirectory()
	accounts.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.Account, error) {
		return nil, domain.ErrAccountNotFound
	}
	h := NewAccountHandlers(users, accounts)

	w := performAccounts(h, "?user=neil")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUserHandlers_List(t *testing.T) {
	users, _ := seededDirectory()
	users.ListFunc = func(ctx context.Context) ([]domain.User, error) {
		return []domain.User{
			{ID: 1, Username: "neil", FirstName: "Neil", LastName: "Harryman", Email: "neil.harryman@example.com", PasswordHash: "secret-hash", Role: domain.RoleCustomer, IsActive: true},
		}, nil
	}
	h := NewUserHandlers(users)

	r := gin.New()
	r.GET("/api/users", h.List)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), "secret-hash"), "password hash leaked")

	var got []UserSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "neil", got[0].Username)
	assert.Equal(t, domain.RoleCustomer, got[0].Role)
}
