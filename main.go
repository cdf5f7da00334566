package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/sitelens/sitelens/internal/config"
	"github.com/sitelens/sitelens/internal/db"
	"github.com/sitelens/sitelens/internal/history"
	linksctl "github.com/sitelens/sitelens/internal/links"
	screenshotctl "github.com/sitelens/sitelens/internal/screenshot"
	"github.com/sitelens/sitelens/internal/search"
	"github.com/sitelens/sitelens/pkg/browser"
	"github.com/sitelens/sitelens/pkg/capture"
	"github.com/sitelens/sitelens/pkg/links"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	if err := browser.Install(); err != nil {
		log.Printf("Failed to install browsers, screenshots may degrade: %v", err)
	}

	pool := browser.NewPool(cfg.PoolSize)
	if err := pool.Initialize(); err != nil {
		log.Printf("Failed to initialize browser pool, running degraded: %v", err)
	}

	cache, err := capture.NewCache(cfg.CacheDir, cfg.MaxCacheSize)
	if err != nil {
		log.Fatalf("Failed to initialize screenshot cache: %v", err)
	}

	svc := capture.NewService(pool, cache)

	db.Connect()
	if gdb := db.GetDB(); gdb != nil {
		svc.Recorder = history.NewRecorder(gdb)
	}

	searchSvc, err := search.NewService()
	if err != nil {
		log.Printf("Search disabled: %v", err)
	}

	cr := cron.New()
	if _, err := cr.AddFunc("@every 5m", cache.Sweep); err != nil {
		log.Printf("Failed to schedule cache sweep: %v", err)
	}
	cr.Start()

	app := fiber.New()
	app.Use(cors.New())

	screenshotctl.MountController(app.Group("/screenshot"), svc, cfg)
	linksctl.MountController(app, links.NewFinder(), cfg.MaxPathDepth)
	search.MountController(app, searchSvc)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"service":      "sitelens",
			"browser_pool": pool.Health(),
		})
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	cr.Stop()
	if err := pool.Shutdown(); err != nil {
		log.Printf("Error shutting down browser pool: %v", err)
	}
}
