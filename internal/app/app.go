package app

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrozdorothy3-debug/swed/internal/config"
	httpx "github.com/mrozdorothy3-debug/swed/internal/http"
	"github.com/mrozdorothy3-debug/swed/internal/http/handlers"
	"github.com/mrozdorothy3-debug/swed/internal/http/middleware"
	"github.com/mrozdorothy3-debug/swed/internal/infrastructure/auth"
	"github.com/mrozdorothy3-debug/swed/internal/infrastructure/database"
	"github.com/mrozdorothy3-debug/swed/internal/infrastructure/repositories"
)

// Run starts the user-store API server
func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	gdb, err := database.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)

	userRepo := repositories.NewUserRepository(gdb)
	accountRepo := repositories.NewAccountRepository(gdb)

	if err := Seed(userRepo, accountRepo, passwordSvc); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(userRepo, passwordSvc, tokenSvc)
	accountH := handlers.NewAccountHandlers(userRepo, accountRepo)
	userH := handlers.NewUserHandlers(userRepo)

	jwtMW := middleware.NewAuthMW(tokenSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, accountH, userH, jwtMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/api/users", "GET")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("user store listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
