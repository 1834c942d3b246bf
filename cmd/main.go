package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trends-service/config"
	"trends-service/handler"
	"trends-service/metrics"
	"trends-service/router"
	"trends-service/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	metrics.Init("trends-service", "1.0", "production")

	// Services get their credentials injected at construction; missing keys
	// switch them into fallback mode rather than failing startup.
	trendService := service.NewTrendService(cfg.YouTubeAPIKey, cfg.YouTubeRegion)
	insightService := service.NewInsightService(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Optional NATS report publisher
	var publisher *handler.ReportPublisher
	if cfg.NATSUrl != "" {
		var err error
		publisher, err = handler.NewReportPublisher(cfg.NATSUrl, handler.ReportSubject)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS, report events disabled: %v", err)
		} else {
			defer publisher.Close()
		}
	}

	h := handler.NewTrendHandler(trendService, insightService, publisher)
	r := router.Setup(h)

	// Setup HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in background
	go func() {
		log.Printf("Trends service starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down trends service...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Trends service stopped")
}
