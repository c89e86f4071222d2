package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"boutique-backoffice/app/controller"
	"boutique-backoffice/app/router"
	"boutique-backoffice/config"
	"boutique-backoffice/db"
	"boutique-backoffice/repository"
	"boutique-backoffice/service"
	"boutique-backoffice/shop"
)

// App holds the wired services shared by the HTTP server and the CLI commands
type App struct {
	Config    *config.Config
	Orders    repository.OrderRepositoryInterface
	Documents *service.DocumentService
	PDF       *service.PDFService
	Images    *service.ImageService
	Resolver  *service.ImageResolver
}

// New builds the order source and services described by cfg
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	orders, err := newOrderRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	profile, err := shop.LoadProfile(cfg.Docs.ShopProfilePath)
	if err != nil {
		return nil, err
	}

	resolver := service.NewImageResolver(cfg.Images.PlaceholderURL)
	documents, err := service.NewDocumentService(profile, service.NewQRService(cfg.Docs.VerifyBaseURL), resolver, cfg.Docs.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document service: %w", err)
	}

	return &App{
		Config:    cfg,
		Orders:    orders,
		Documents: documents,
		PDF:       service.NewPDFService(cfg.Docs.ChromePath),
		Images:    service.NewImageService(cfg.Images.PublicDir, cfg.Backend.URL, cfg.Images.PlaceholderURL, cfg.Images.FetchTimeout),
		Resolver:  resolver,
	}, nil
}

// Initialize initializes the application and registers its routes on mux
func Initialize(ctx context.Context, cfg *config.Config, mux *http.ServeMux) (*App, error) {
	a, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// The terminal image fallback must always be servable
	if err := a.Images.EnsurePlaceholder(); err != nil {
		log.Printf("⚠️  Initialize: Could not create placeholder image: %v", err)
	}

	// Create controllers
	controllers := &router.Controllers{
		Document: controller.NewDocumentController(a.Orders, a.Documents, a.PDF, cfg.Server.BaseURL),
		Order:    controller.NewOrderController(a.Orders, a.Documents),
		Image:    controller.NewImageController(a.Images, a.Resolver),
	}

	// Setup routes using standard http router
	router.SetupRoutes(mux, controllers, cfg.Images.PublicDir)

	return a, nil
}

// Close releases the database connection when the postgres source is used
func (a *App) Close() {
	if err := db.CloseDB(); err != nil {
		log.Printf("⚠️  Close: Error closing database: %v", err)
	}
}

func newOrderRepository(ctx context.Context, cfg *config.Config) (repository.OrderRepositoryInterface, error) {
	switch cfg.Backend.OrderSource {
	case config.OrderSourcePostgres:
		connStr, err := cfg.Database.ConnString()
		if err != nil {
			return nil, err
		}
		conn, err := db.InitDB(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Printf("✓ Orders are read from PostgreSQL")
		return repository.NewOrderRepository(conn), nil
	case config.OrderSourceAPI, "":
		log.Printf("✓ Orders are read from %s", cfg.Backend.URL)
		return repository.NewOrderAPIRepository(cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown ORDER_SOURCE %q (expected %q or %q)", cfg.Backend.OrderSource, config.OrderSourceAPI, config.OrderSourcePostgres)
	}
}
