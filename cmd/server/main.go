package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/yaoyun631/team-me-crm-firebase/internal/router"
	"github.com/yaoyun631/team-me-crm-firebase/internal/view"
	"github.com/yaoyun631/team-me-crm-firebase/pkg/config"
	"github.com/yaoyun631/team-me-crm-firebase/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize Firebase (Firestore + storage bucket). Missing
	// credentials abort before serving.
	ctx := context.Background()
	app, err := firebase.InitFirebase(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer app.Close()

	// Create Echo instance
	e := echo.New()
	e.Renderer = view.NewRenderer()

	// Setup global middleware
	router.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	router.SetupRoutes(e, app.Firestore, app.Bucket, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
