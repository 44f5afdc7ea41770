package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrozdorothy3-debug/swed/domain"
	"github.com/mrozdorothy3-debug/swed/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// createTestEnforcer builds an in-memory enforcer with the role policy model
func createTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`
	m, err := model.NewModelFromString(modelText)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	return e
}

func TestAuthMW_WithJWT(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"valid bearer token", "Bearer token_admin", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic abc123", http.StatusUnauthorized},
		{"invalid token", "Bearer junk", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAuthMW(mocks.NewMockTokenService())

			r := gin.New()
			r.GET("/protected", mw.WithJWT(), func(c *gin.Context) {
				username, _ := c.Get("username")
				c.JSON(http.StatusOK, gin.H{"username": username})
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "admin")
			}
		})
	}
}

func TestAuthMW_WithJWT_ExpiredToken(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenExpired
	}
	mw := NewAuthMW(tokenSvc)

	r := gin.New()
	r.GET("/protected", mw.WithJWT(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer token_admin")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestCasbinMW_Enforce(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		roleSet        bool
		expectedStatus int
	}{
		{"admin role allowed", domain.RoleAdmin, true, http.StatusOK},
		{"customer role forbidden", domain.RoleCustomer, true, http.StatusForbidden},
		{"missing role", "", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := createTestEnforcer(t)
			_, err := e.AddPolicy("role_admin", "/api/users", "GET")
			require.NoError(t, err)
			mw := NewCasbinMW(e)

			r := gin.New()
			r.GET("/api/users", func(c *gin.Context) {
				if tt.roleSet {
					c.Set("user_role", tt.role)
				}
			}, mw.Enforce(), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
