package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/config"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/handlers"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/middleware"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/routes"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/services/backend"
	ai "github.com/bcs230015/Meeting-Mangagement-chatbot/services/intelligence"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// The process must not start without a model credential.
	if config.AppConfig.GeminiAPIKey == "" {
		logger.Sugar().Fatal("main: GEMINI_API_KEY is not set")
	}

	backendClient := backend.NewClient(config.AppConfig.BackendURL, logger)

	// Obtain the bearer token once for the process lifetime. A rejected
	// login is terminal; there is no retry.
	loginCtx, cancelLogin := context.WithTimeout(context.Background(), 15*time.Second)
	token, err := backendClient.Login(loginCtx, config.AppConfig.BackendUsername, config.AppConfig.BackendPassword)
	cancelLogin()
	if err != nil {
		logger.Sugar().Fatalf("main: backend login failed: %v", err)
	}

	geminiClient := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	orchestrator := ai.NewOrchestrator(backendClient, logger)
	conversation := ai.NewConversation(geminiClient.NewSession, orchestrator, token, logger)

	utils.StartHealthMonitor(config.AppConfig.BackendURL)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	aiHandler := handlers.NewAIHandler(conversation)
	routes.RegisterRoutes(router, aiHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8090"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
