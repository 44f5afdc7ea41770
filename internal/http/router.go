package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/mrozdorothy3-debug/swed/internal/http/handlers"
	"github.com/mrozdorothy3-debug/swed/internal/http/middleware"
)

// BuildRouter assembles the user-store API. /accounts is public like the
// original demo API; the admin listing sits behind JWT plus the role policy.
func BuildRouter(ah *handlers.AuthHandlers, ach *handlers.AccountHandlers, uh *handlers.UserHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.POST("/login", ah.Login)

	r.GET("/accounts", ach.List)

	adm := r.Group("/api").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/users", uh.List)

	return r
}
