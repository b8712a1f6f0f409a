package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/hardwarepos/pos-api/internal/application/service"
	"github.com/hardwarepos/pos-api/internal/application/workspace"
	"github.com/hardwarepos/pos-api/internal/config"
	"github.com/hardwarepos/pos-api/internal/infrastructure/database"
	"github.com/hardwarepos/pos-api/internal/infrastructure/repository"
	"github.com/hardwarepos/pos-api/internal/presentation/http/handler"
	"github.com/hardwarepos/pos-api/internal/presentation/http/routes"
	"github.com/hardwarepos/pos-api/pkg/receipt"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	uow := repository.NewUnitOfWork(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	batchRepo := repository.NewStockBatchRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	lineRepo := repository.NewTransactionLineRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	chequeRepo := repository.NewChequeRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	// Initialize receipt renderer
	renderer := receipt.NewFileRenderer(cfg.Receipt.OutputDir)
	if cfg.Receipt.OutputDir == "" {
		renderer = receipt.NewNullRenderer()
	}

	// Initialize services
	stockService := service.NewStockService(productRepo, batchRepo, movementRepo)
	settlementService := service.NewSettlementService(
		uow, txnRepo, lineRepo, paymentRepo, chequeRepo,
		batchRepo, movementRepo, customerRepo, supplierRepo,
		renderer, cfg.Tax.Percentage, cfg.Receipt.ShopName, cfg.Receipt.ShopPhone,
	)
	chequeService := service.NewChequeService(uow, chequeRepo, txnRepo, customerRepo, supplierRepo)
	customerService := service.NewCustomerService(uow, customerRepo, txnRepo, paymentRepo)
	supplierService := service.NewSupplierService(uow, supplierRepo)
	transactionService := service.NewTransactionService(txnRepo)

	// Resolve the default operator seeded above; committed transactions are
	// attributed to it until per-operator auth lands.
	operator, err := userRepo.GetByUsername(context.Background(), "cashier")
	if err != nil || operator == nil {
		log.Fatalf("Failed to resolve default operator: %v", err)
	}

	// The in-memory workspace for this terminal
	tabs := workspace.NewManager()

	// Initialize handlers
	handlers := &routes.Handlers{
		Tab:         handler.NewTabHandler(tabs, stockService, settlementService, operator.ID),
		Stock:       handler.NewStockHandler(stockService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Customer:    handler.NewCustomerHandler(customerService),
		Supplier:    handler.NewSupplierHandler(supplierService),
		Cheque:      handler.NewChequeHandler(chequeService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
