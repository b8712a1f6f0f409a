package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hardwarepos/pos-api/internal/config"
	"github.com/hardwarepos/pos-api/internal/presentation/http/handler"
	"github.com/hardwarepos/pos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Tab         *handler.TabHandler
	Stock       *handler.StockHandler
	Transaction *handler.TransactionHandler
	Customer    *handler.CustomerHandler
	Supplier    *handler.SupplierHandler
	Cheque      *handler.ChequeHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerTabRoutes(v1, h)
		registerCatalogRoutes(v1, h)
		registerLedgerRoutes(v1, h)
		registerPartyRoutes(v1, h)
		registerChequeRoutes(v1, h)
	}

	return router
}

// registerTabRoutes wires the terminal workspace: open tabs, drafting,
// review and commit.
func registerTabRoutes(rg *gin.RouterGroup, h *Handlers) {
	tabs := rg.Group("/tabs")
	{
		tabs.GET("", h.Tab.List)
		tabs.POST("", h.Tab.Open)
		tabs.GET("/:id", h.Tab.Get)
		tabs.POST("/:id/activate", h.Tab.Activate)
		tabs.DELETE("/:id", h.Tab.Close)

		tabs.POST("/:id/lines", h.Tab.AddLine)
		tabs.PATCH("/:id/lines/:batchId", h.Tab.UpdateLine)
		tabs.DELETE("/:id/lines/:batchId", h.Tab.RemoveLine)

		tabs.POST("/:id/review", h.Tab.Review)
		tabs.POST("/:id/reopen", h.Tab.Reopen)
		tabs.POST("/:id/commit", h.Tab.Commit)
	}
}

// registerCatalogRoutes wires products and stock batches.
func registerCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Stock.ListProducts)
		products.POST("", h.Stock.CreateProduct)
		products.GET("/:id", h.Stock.GetProduct)
		products.GET("/:id/batches", h.Stock.ListBatches)
	}

	batches := rg.Group("/batches")
	{
		batches.GET("/:id", h.Stock.GetBatch)
		batches.GET("/:id/movements", h.Stock.BatchMovements)
		batches.POST("/:id/expire", h.Stock.ExpireBatch)
	}
}

// registerLedgerRoutes wires the committed transaction ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, h *Handlers) {
	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
	}
}

// registerPartyRoutes wires customers and suppliers.
func registerPartyRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("/search", h.Customer.Search)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("/:id/repayments", h.Customer.Repay)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("/search", h.Supplier.Search)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("/:id/repayments", h.Supplier.Repay)
	}
}

// registerChequeRoutes wires the cheque registry.
func registerChequeRoutes(rg *gin.RouterGroup, h *Handlers) {
	cheques := rg.Group("/cheques")
	{
		cheques.GET("", h.Cheque.List)
		cheques.GET("/due-yesterday", h.Cheque.DueYesterday)
		cheques.GET("/:id", h.Cheque.Get)
		cheques.PATCH("/:id/status", h.Cheque.UpdateStatus)
		cheques.PATCH("/status", h.Cheque.BatchUpdateStatus)
	}
}
