package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	infraRepo "github.com/hardwarepos/pos-api/internal/infrastructure/repository"
	"github.com/hardwarepos/pos-api/pkg/receipt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires every service against one in-memory database so tests can
// observe real transactional behavior, including rollbacks.
type testEnv struct {
	db           *gorm.DB
	uow          domainRepo.UnitOfWork
	productRepo  domainRepo.ProductRepository
	batchRepo    domainRepo.StockBatchRepository
	movementRepo domainRepo.StockMovementRepository
	txnRepo      domainRepo.TransactionRepository
	lineRepo     domainRepo.TransactionLineRepository
	paymentRepo  domainRepo.PaymentRepository
	chequeRepo   domainRepo.ChequeRepository
	customerRepo domainRepo.CustomerRepository
	supplierRepo domainRepo.SupplierRepository

	stock        *StockService
	settlement   *SettlementService
	cheques      *ChequeService
	customers    *CustomerService
	suppliers    *SupplierService
	transactions *TransactionService

	user entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Unit{}, &entity.Product{},
		&entity.StockBatch{}, &entity.StockMovement{},
		&entity.Customer{}, &entity.Supplier{}, &entity.User{},
		&entity.Transaction{}, &entity.TransactionLine{},
		&entity.PaymentRecord{}, &entity.Cheque{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		db:           db,
		uow:          infraRepo.NewUnitOfWork(db),
		productRepo:  infraRepo.NewProductRepository(db),
		batchRepo:    infraRepo.NewStockBatchRepository(db),
		movementRepo: infraRepo.NewStockMovementRepository(db),
		txnRepo:      infraRepo.NewTransactionRepository(db),
		lineRepo:     infraRepo.NewTransactionLineRepository(db),
		paymentRepo:  infraRepo.NewPaymentRepository(db),
		chequeRepo:   infraRepo.NewChequeRepository(db),
		customerRepo: infraRepo.NewCustomerRepository(db),
		supplierRepo: infraRepo.NewSupplierRepository(db),
	}

	env.stock = NewStockService(env.productRepo, env.batchRepo, env.movementRepo)
	env.settlement = NewSettlementService(
		env.uow, env.txnRepo, env.lineRepo, env.paymentRepo, env.chequeRepo,
		env.batchRepo, env.movementRepo, env.customerRepo, env.supplierRepo,
		receipt.NewNullRenderer(), 0, "Test Shop", "",
	)
	env.cheques = NewChequeService(env.uow, env.chequeRepo, env.txnRepo, env.customerRepo, env.supplierRepo)
	env.customers = NewCustomerService(env.uow, env.customerRepo, env.txnRepo, env.paymentRepo)
	env.suppliers = NewSupplierService(env.uow, env.supplierRepo)
	env.transactions = NewTransactionService(env.txnRepo)

	env.user = entity.User{Name: "Cashier", Username: "cashier"}
	if err := db.Create(&env.user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return env
}

func (e *testEnv) createProduct(t *testing.T, title string) entity.Product {
	t.Helper()
	product := entity.Product{Title: title}
	if err := e.productRepo.Create(context.Background(), &product); err != nil {
		t.Fatalf("create product %s: %v", title, err)
	}
	return product
}

func (e *testEnv) createBatch(t *testing.T, productID uuid.UUID, qty float64, buying, min, selling int64) entity.StockBatch {
	t.Helper()
	batch := entity.StockBatch{
		ProductID:       productID,
		BatchNumber:     "B-" + uuid.NewString()[:6],
		QuantityIn:      qty,
		CurrentQuantity: qty,
		BuyingPrice:     buying,
		MinSellingPrice: min,
		SellingPrice:    selling,
		Status:          enum.BatchStatusActive,
	}
	if err := e.batchRepo.Create(context.Background(), &batch); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	return batch
}

func (e *testEnv) createCustomer(t *testing.T, name, mobile string) entity.Customer {
	t.Helper()
	customer := entity.Customer{Name: name}
	if mobile != "" {
		customer.Mobile = &mobile
	}
	if err := e.customerRepo.Create(context.Background(), &customer); err != nil {
		t.Fatalf("create customer %s: %v", name, err)
	}
	return customer
}

func (e *testEnv) createSupplier(t *testing.T, company string) entity.Supplier {
	t.Helper()
	supplier := entity.Supplier{Name: company, CompanyName: company}
	if err := e.supplierRepo.Create(context.Background(), &supplier); err != nil {
		t.Fatalf("create supplier %s: %v", company, err)
	}
	return supplier
}
