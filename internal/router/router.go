package router

import (
	"log"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/yaoyun631/team-me-crm-firebase/internal/handlers"
	"github.com/yaoyun631/team-me-crm-firebase/internal/middleware"
	"github.com/yaoyun631/team-me-crm-firebase/internal/repositories"
	"github.com/yaoyun631/team-me-crm-firebase/internal/storage"
	"github.com/yaoyun631/team-me-crm-firebase/pkg/config"
)

// SetupMiddleware configures global Echo middleware.
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte(cfg.SessionSecret))))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
func SetupRoutes(e *echo.Echo, fs *firestore.Client, bucket *gcs.BucketHandle, cfg *config.Config) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and the photo store ---
	userRepo := repositories.NewFirestoreUserRepository(fs)
	buyerRepo := repositories.NewFirestoreBuyerRepository(fs)
	sellerRepo := repositories.NewFirestoreSellerRepository(fs)
	buyerFollowupRepo := repositories.NewFirestoreFollowupRepository(fs, "buyer_followups", "buyer_id")
	sellerFollowupRepo := repositories.NewFirestoreFollowupRepository(fs, "seller_followups", "seller_id")
	postRepo := repositories.NewFirestoreBlogPostRepository(fs)
	photoStore := storage.NewGCSPhotoStore(bucket, cfg.StorageBucket)

	// --- Unprotected routes: login, logout, index redirect ---
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// --- Protected routes (session login required) ---
	app := e.Group("", middleware.RequireLogin())

	buyerHandler := handlers.NewBuyerHandler(buyerRepo, buyerFollowupRepo, photoStore)
	buyerHandler.RegisterBuyerRoutes(app)
	log.Println("Buyer routes configured.")

	sellerHandler := handlers.NewSellerHandler(sellerRepo, sellerFollowupRepo, photoStore)
	sellerHandler.RegisterSellerRoutes(app)
	log.Println("Seller routes configured.")

	blogHandler := handlers.NewBlogHandler(postRepo, photoStore)
	blogHandler.RegisterBlogRoutes(app)
	log.Println("Blog routes configured.")

	log.Println("All routes configured.")
}
