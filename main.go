package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"mgarquitectura/api-gateway/cache"
	"mgarquitectura/api-gateway/config"
	"mgarquitectura/api-gateway/handlers"
	"mgarquitectura/api-gateway/middleware"
	"mgarquitectura/api-gateway/services"
	"mgarquitectura/api-gateway/store"
	"mgarquitectura/api-gateway/utils"
)

func main() {
	cfg := config.Load()
	logger := config.InitLogger()

	clients, err := config.NewSupabaseClients(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	h := &handlers.ApplicationHandler{
		Logger:         logger,
		Fallback:       store.NewDemo(),
		FallbackPolicy: cfg.ContentFallback,
		Cache:          cache.New(5 * time.Minute),
		AdminEmail:     cfg.AdminEmail,
		AdminPassword:  cfg.AdminPassword,
	}

	if cfg.SupabaseConfigured() {
		bucket := store.NewBucket(logger, clients.Admin.Storage, cfg.StorageBucket)
		h.Projects = store.NewProjects(logger, clients, bucket)
		h.Hero = store.NewHero(logger, clients)
		h.Images = bucket
		logger.Info("Supabase clients initialized")
	} else {
		logger.Warn("Supabase is not configured, running in demo mode")
	}

	if cfg.MailConfigured() {
		h.Mailer = services.NewMailer(logger, cfg.ResendAPIKey, cfg.ContactFrom, cfg.ContactTo)
	} else {
		logger.Warn("RESEND_API_KEY not set, contact relay disabled")
	}

	var tokens *utils.TokenManager
	if cfg.AuthConfigured() {
		tokens = utils.NewTokenManager(cfg.JWTSecret, 12*time.Hour)
		h.Tokens = tokens
	} else {
		logger.Warn("ADMIN_PASSWORD or JWT_SECRET not set, admin routes disabled")
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", h.Health)

	// API v1 routes
	apiV1 := app.Group("/api/v1")

	// Public site content
	apiV1.Get("/projects", h.GetPublishedProjects)
	apiV1.Get("/projects/:id", h.GetProject)
	apiV1.Get("/hero-slides", h.GetHeroSlides)
	apiV1.Post("/contact", h.SendContactMessage)
	apiV1.Post("/auth/login", h.Login)

	// Admin routes, gated by the session token
	admin := apiV1.Group("/admin", middleware.RequireAdmin(tokens))
	admin.Get("/projects", h.GetAllProjects)
	admin.Post("/projects", h.CreateProject)
	admin.Patch("/projects/:id", h.UpdateProject)
	admin.Delete("/projects/:id", h.DeleteProject)
	admin.Put("/projects/:id/images/:imageId/cover", h.SetCoverImage)
	admin.Delete("/projects/:id/images/:imageId", h.DeleteProjectImage)
	admin.Post("/hero-slides", h.UpdateHeroSlides)
	admin.Get("/flash", h.GetFlash)

	logger.Infof("Starting API Gateway on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
