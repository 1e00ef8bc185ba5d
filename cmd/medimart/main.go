package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"medimart/internal/config"
	"medimart/internal/http/handlers"
	applog "medimart/internal/log"
	"medimart/internal/repos"
	"medimart/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and hide internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, authSvc)

	api := app.Group("/api")

	// Search (the storefront's main read path gets its own tighter limit)
	api.Get("/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.SearchHandler.Search)

	// Products
	api.Get("/products/slug/:slug", deps.ProductHandler.BySlug)
	api.Post("/products/slug/:slug/reviews", handlers.RequireUser(authSvc), deps.ProductHandler.AddReview)
	api.Get("/products/:id", deps.ProductHandler.Get)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Update)
	api.Post("/cart/remove", deps.CartHandler.Remove)

	// Orders
	api.Post("/orders", deps.OrderHandler.Place)
	api.Get("/orders", deps.OrderHandler.History)
	api.Get("/orders/:id", deps.OrderHandler.View)

	// Auth (login throttled)
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/profile", handlers.RequireUser(authSvc), authH.Profile)
	api.Put("/auth/profile", handlers.RequireUser(authSvc), authH.UpdateProfile)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/summary", deps.AdminHandler.Summary)
	admin.Get("/orders", deps.AdminHandler.OrdersList)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
