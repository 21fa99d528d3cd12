package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scribehq/scribe-be/internal/api"
	"github.com/scribehq/scribe-be/internal/api/handlers"
	"github.com/scribehq/scribe-be/internal/auth"
	"github.com/scribehq/scribe-be/internal/config"
	"github.com/scribehq/scribe-be/internal/database"
	"github.com/scribehq/scribe-be/internal/logger"
	"github.com/scribehq/scribe-be/internal/monitoring"
	"github.com/scribehq/scribe-be/internal/request"
	"github.com/scribehq/scribe-be/internal/services"
	"github.com/scribehq/scribe-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db.DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	tokens := auth.NewManager(cfg.JWTSecret)

	// Set up services
	userService := services.NewUserService()
	blogService := services.NewBlogService()
	eventService := services.NewEventService()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up and run the guest account reaper
	reaper, err := monitoring.NewGuestReaper(db, userService, eventService, cfg.ReaperSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize guest reaper")
	}
	go reaper.Run()

	// Set up handlers and router
	factory := request.NewFactory(db)
	authHandler := handlers.NewAuthHandler(userService, eventService, tokens, cfg)
	blogHandler := handlers.NewBlogHandler(blogService, eventService, hub)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	router := api.NewRouter(cfg, factory, tokens, authHandler, blogHandler, eventHandler, wsHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
