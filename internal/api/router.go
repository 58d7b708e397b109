package api

import (
	"net/http"
	"time"

	"opti_campaign/internal/api/handler"
	"opti_campaign/internal/api/middleware"
	"opti_campaign/internal/app/service"
	"opti_campaign/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokenManager *security.TokenManager,
	authService *service.AuthService,
	campaignService *service.CampaignService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a token found in "Authorization: Bearer T" and puts claims in
	// context. Enforcement happens per-route in middleware.Authenticator.
	r.Use(jwtauth.Verifier(tokenManager.JWTAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r)

	// Campaign routes (authenticated)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	r.Route("/campaigns", func(cr chi.Router) {
		cr.Use(middleware.Authenticator)
		campaignHandler.RegisterRoutes(cr)
	})

	return r
}
