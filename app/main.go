package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calcomb/calcomb/app/api"
	"github.com/calcomb/calcomb/app/cache"
	"github.com/calcomb/calcomb/app/calendar"
	"github.com/calcomb/calcomb/app/cfg"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting Cal Comb server (version %s)...", appCfg.Version)

	// Load calendar configurations
	log.Printf("Loading calendar configurations from %s...", appCfg.CalendarsDir)
	configCache := calendar.NewConfigCache(appCfg.CalendarsDir)
	if err := configCache.Run(); err != nil {
		log.Fatal("Failed to load calendar configurations:", err)
	}
	log.Printf("Loaded %d calendar configurations", configCache.GetConfigCount())

	// Ensure the cache directory exists up front
	if _, err := cache.NewFileCache(appCfg.CacheDir, appCfg.CacheTTL); err != nil {
		log.Fatal("Failed to initialize feed cache:", err)
	}
	log.Printf("Feed cache directory: %s (TTL %ds)", appCfg.CacheDir, appCfg.CacheTTL)

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(configCache, httpClient, appCfg.CacheDir)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("Endpoints available:")
		log.Printf("  Calendar:      http://localhost:%s/calendars/<name>", appCfg.Port)
		log.Printf("  iCalendar:     http://localhost:%s/calendars/<name>?format=ics", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Cal Comb server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("Cal Comb server shutdown complete")
}
