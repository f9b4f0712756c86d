package main

import (
	"context"
	"log"
	"net/http"

	"lightpath/internal/config"
	"lightpath/internal/controllers"
	"lightpath/internal/hooks"
	"lightpath/internal/logger"
	"lightpath/internal/routes"
	"lightpath/internal/weather"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database, migrate and seed roles
	config.InitDB()

	// Optional weather enrichment for trip creation
	if key := config.GetEnv("OPENWEATHER_API_KEY", ""); key != "" {
		controllers.SetWeatherClient(weather.NewClient(key))
	}

	// Post-commit registration hooks: audit log + notification fan-out
	notifier := hooks.NewNotifier()
	if err := notifier.Start(context.Background()); err != nil {
		log.Fatalf("notifier failed to start: %v", err)
	}
	hooks.Default.Register("audit-log", hooks.AuditLog)
	hooks.Default.Register("welcome-notification", notifier.Hook())

	r := routes.SetupRouter()

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
