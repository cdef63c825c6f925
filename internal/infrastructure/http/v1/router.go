// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"quipu/internal/core/numerator"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/catalogs/product"
	"quipu/internal/domain/documents/adjustment"
	"quipu/internal/domain/documents/purchase"
	"quipu/internal/domain/documents/sale"
	"quipu/internal/domain/journal"
	"quipu/internal/domain/kardex"
	"quipu/internal/domain/posting"
	"quipu/internal/domain/reports"
	"quipu/internal/infrastructure/http/v1/handlers"
	"quipu/internal/infrastructure/http/v1/middleware"
	"quipu/internal/infrastructure/storage/postgres"
	"quipu/internal/infrastructure/storage/postgres/catalog_repo"
	"quipu/internal/infrastructure/storage/postgres/document_repo"
	"quipu/internal/infrastructure/storage/postgres/journal_repo"
	"quipu/internal/infrastructure/storage/postgres/register_repo"
	"quipu/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger
	Numerator numerator.Generator
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerRoutes(v1, cfg)
	}

	return router
}

// registerRoutes wires repositories, services and handlers for every entity.
func registerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	auditService, err := postgres.NewAuditService(cfg.TxManager)
	if err != nil {
		// zstd allocation failed, audit degrades to a no-op
		auditService = nil
	}

	baseHandler := handlers.NewBaseHandler(auditService)

	// Shared repositories
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	accountRepo := catalog_repo.NewAccountRepo(cfg.TxManager)
	kardexRepo := register_repo.NewKardexRepo(cfg.TxManager)
	journalRepo := journal_repo.NewJournalRepo(cfg.TxManager)

	// Shared services
	productService := product.NewService(productRepo, cfg.TxManager)
	accountService := account.NewService(accountRepo, cfg.TxManager)
	kardexService := kardex.NewService(productRepo, kardexRepo, cfg.TxManager)
	journalService := journal.NewService(journalRepo, cfg.Numerator, cfg.TxManager)
	generator := posting.NewGenerator()

	// --- CATALOGS ---
	catalogs := rg.Group("/catalog")
	{
		handler := handlers.NewProductHandler(baseHandler, productService)
		handler.RegisterRoutes(catalogs.Group("/products"))
	}
	{
		handler := handlers.NewAccountHandler(baseHandler, accountService)
		handler.RegisterRoutes(catalogs.Group("/accounts"))
	}

	// --- DOCUMENTS ---
	docsGroup := rg.Group("/document")
	{
		repo := document_repo.NewPurchaseRepo(cfg.TxManager)
		service := purchase.NewService(repo, kardexService, generator, journalService, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewPurchaseHandler(baseHandler, service)
		handler.RegisterRoutes(docsGroup.Group("/purchases"))
	}
	{
		repo := document_repo.NewSaleRepo(cfg.TxManager)
		service := sale.NewService(repo, kardexService, generator, journalService, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewSaleHandler(baseHandler, service)
		handler.RegisterRoutes(docsGroup.Group("/sales"))
	}
	{
		repo := document_repo.NewAdjustmentRepo(cfg.TxManager)
		service := adjustment.NewService(repo, kardexService, generator, journalService, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewAdjustmentHandler(baseHandler, service)
		handler.RegisterRoutes(docsGroup.Group("/adjustments"))
	}

	// --- JOURNAL ---
	{
		handler := handlers.NewJournalHandler(baseHandler, journalService)
		handler.RegisterRoutes(rg.Group("/journal/entries"))
	}

	// --- KARDEX ---
	{
		handler := handlers.NewKardexHandler(baseHandler, kardexService)
		handler.RegisterRoutes(rg.Group("/kardex"))
	}

	// --- REPORTS ---
	{
		service := reports.NewService(journalRepo, accountRepo)
		handler := handlers.NewReportsHandler(baseHandler, service)
		handler.RegisterRoutes(rg.Group("/reports"))
	}

	// --- AUDIT ---
	if auditService != nil {
		handler := handlers.NewAuditHandler(baseHandler, auditService)
		handler.RegisterRoutes(rg.Group("/audit"))
	}
}
