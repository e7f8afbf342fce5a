package router

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/database"
	"github.com/gradpath/consultancy-api/handlers"
	admin_handlers "github.com/gradpath/consultancy-api/handlers/admin"
	auth_handlers "github.com/gradpath/consultancy-api/handlers/auth"
	course_handlers "github.com/gradpath/consultancy-api/handlers/course"
	profile_handlers "github.com/gradpath/consultancy-api/handlers/profile"
	search_handlers "github.com/gradpath/consultancy-api/handlers/search"
	"github.com/gradpath/consultancy-api/services/spaces"
	"github.com/gradpath/consultancy-api/utils"
	"github.com/gradpath/consultancy-api/utils/cache"
	"github.com/gradpath/consultancy-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for login brute force protection
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize Spaces client for logo uploads (optional)
	var spacesClient *spaces.Client
	if os.Getenv("SPACES_ACCESS_KEY") != "" {
		spacesClient, err = spaces.NewClient(spaces.Config{
			AccessKey: os.Getenv("SPACES_ACCESS_KEY"),
			SecretKey: os.Getenv("SPACES_SECRET_KEY"),
			Bucket:    os.Getenv("SPACES_BUCKET"),
			Region:    os.Getenv("SPACES_REGION"),
			Endpoint:  os.Getenv("SPACES_ENDPOINT"),
			CDNURL:    os.Getenv("SPACES_CDN_URL"),
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize Spaces client: %v. Logo uploads will be disabled.", err)
		}
	}

	// Initialize auth middleware with DB for token lookup
	authMiddleware := middleware.NewAuthMiddleware(db)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, bruteForceProtection)
	profileHandler := profile_handlers.NewProfileHandler(db, spacesClient)
	courseHandler := course_handlers.NewCourseHandler(db)
	searchHandler := search_handlers.NewSearchHandler(db)
	adminHandler := admin_handlers.NewAdminHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:5173"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins: allowedOrigins,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", profileHandler.GetProfile)
	profileGroup.Put("/", profileHandler.UpdateProfile)
	profileGroup.Delete("/", profileHandler.DeleteAccount)
	profileGroup.Post("/logo", profileHandler.UploadLogo)

	// Course routes (protected, consultancy-scoped)
	courseGroup := api.Group("/courses", authMiddleware.Required())
	courseGroup.Post("/add", courseHandler.AddCourse)
	courseGroup.Put("/edit/:id", courseHandler.EditCourse)
	courseGroup.Delete("/delete/:id", courseHandler.DeleteCourse)
	courseGroup.Post("/link", courseHandler.LinkCourse)
	courseGroup.Post("/unlink", courseHandler.UnlinkCourse)

	// Search routes (public)
	api.Get("/search", searchHandler.Search)

	// Admin routes (staff only)
	adminGroup := api.Group("/admin", authMiddleware.RequireAdmin())

	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users", adminHandler.CreateUser)
	adminGroup.Put("/users/:id", adminHandler.UpdateUser)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)

	adminGroup.Get("/consultancies", adminHandler.ListConsultancies)
	adminGroup.Post("/consultancies", adminHandler.CreateConsultancy)
	adminGroup.Put("/consultancies/verify/:id", adminHandler.VerifyConsultancy)
	adminGroup.Put("/consultancies/:id", adminHandler.UpdateConsultancy)
	adminGroup.Delete("/consultancies/:id", adminHandler.DeleteConsultancy)

	adminGroup.Get("/courses", adminHandler.ListCourses)
	adminGroup.Post("/courses", adminHandler.CreateCourse)
	adminGroup.Put("/courses/:id", adminHandler.UpdateCourse)
	adminGroup.Delete("/courses/:id", adminHandler.DeleteCourse)
}
