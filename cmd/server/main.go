package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opti_campaign/internal/api"
	"opti_campaign/internal/app/service"
	"opti_campaign/internal/common/security"
	"opti_campaign/internal/domain/repository"
	"opti_campaign/internal/platform/config"
	"opti_campaign/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	log.Println("Configuration loaded.")

	// 2. Initialize Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	// 3. Apply Migrations
	if cfg.RunMigrations {
		if err := database.Migrate(cfg.DBURL()); err != nil {
			log.Fatalf("Could not run migrations: %v", err)
		}
		log.Println("Migrations applied.")
	}

	// 4. Seed the admin user when configured
	if cfg.SeedAdminUsername != "" && cfg.SeedAdminPassword != "" {
		if err := database.SeedAdminUser(context.Background(), db, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
			log.Fatalf("Could not seed admin user: %v", err)
		}
		log.Printf("Seeded user %q.", cfg.SeedAdminUsername)
	}

	// 5. Initialize Token Manager
	tokenManager := security.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTExp())

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	campaignRepo := repository.NewPgCampaignRepository(db)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, tokenManager)
	campaignService := service.NewCampaignService(campaignRepo)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(tokenManager, authService, campaignService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
