package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/application/workspace"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	domainRepo "github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/pkg/apperror"
	"github.com/hardwarepos/pos-api/pkg/receipt"
)

func reviewedSaleCart(t *testing.T, batch entity.StockBatch, product entity.Product, qty float64, price int64) *workspace.Cart {
	t.Helper()
	cart := workspace.NewCart(enum.TransactionKindSale)
	_, err := cart.AddLine(workspace.Line{
		BatchID:   batch.ID,
		ProductID: product.ID,
		Title:     product.Title,
		Quantity:  qty,
		UnitPrice: price,
		MinPrice:  batch.MinSellingPrice,
		ListPrice: batch.SellingPrice,
		Available: batch.CurrentQuantity,
	})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.Review(); err != nil {
		t.Fatalf("Review: %v", err)
	}
	return cart
}

func TestCashSaleCommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "PVC Pipe 20mm")
	batch := env.createBatch(t, product.ID, 10, 300, 450, 500)
	cart := reviewedSaleCart(t, batch, product, 4, 500)

	txn, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cash: 2000},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if txn.Status != enum.TransactionStatusPaid {
		t.Errorf("expected paid status, got %v", txn.Status)
	}
	if txn.Total != 2000 {
		t.Errorf("expected total 2000, got %d", txn.Total)
	}
	if cart.State() != workspace.StateCommitted {
		t.Errorf("expected committed cart, got %v", cart.State())
	}

	fresh, err := env.batchRepo.GetByID(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.CurrentQuantity != 6 {
		t.Errorf("expected 6 on hand, got %v", fresh.CurrentQuantity)
	}
	if fresh.QuantityOut != 4 {
		t.Errorf("expected 4 issued, got %v", fresh.QuantityOut)
	}

	movements, err := env.movementRepo.ListForBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("ListForBatch: %v", err)
	}
	if len(movements) != 1 || movements[0].Direction != enum.MovementOut || movements[0].Quantity != 4 {
		t.Errorf("expected one outbound movement of 4, got %+v", movements)
	}

	payments, err := env.paymentRepo.GetByTransactionID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetByTransactionID: %v", err)
	}
	if len(payments) != 1 || payments[0].Instrument != enum.InstrumentCash || payments[0].Amount != 2000 {
		t.Errorf("expected one cash payment of 2000, got %+v", payments)
	}
}

func TestCommitInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Cement 50kg")
	batch := env.createBatch(t, product.ID, 5, 100000, 115000, 120000)
	cart := reviewedSaleCart(t, batch, product, 5, 120000)

	// Stock moves between the reservation and the commit.
	ok, err := env.batchRepo.Issue(ctx, batch.ID, 3)
	if err != nil || !ok {
		t.Fatalf("concurrent issue: ok=%v err=%v", ok, err)
	}

	_, err = env.settlement.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cash: 600000},
	})
	if !apperror.IsKind(err, apperror.KindInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if cart.State() != workspace.StateFailed {
		t.Errorf("expected failed cart, got %v", cart.State())
	}

	// The rollback must leave no partial writes behind.
	fresh, err := env.batchRepo.GetByID(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.CurrentQuantity != 2 {
		t.Errorf("expected 2 on hand after rollback, got %v", fresh.CurrentQuantity)
	}
	var txnCount, movementCount int64
	env.db.Model(&entity.Transaction{}).Count(&txnCount)
	env.db.Model(&entity.StockMovement{}).Count(&movementCount)
	if txnCount != 0 || movementCount != 0 {
		t.Errorf("expected no transactions/movements after rollback, got %d/%d", txnCount, movementCount)
	}

	// The operator fixes the quantity and retries on the same cart.
	if err := cart.Reopen(); err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if _, err := cart.SetQuantity(batch.ID, 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := cart.Review(); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if _, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cash: 240000},
	}); err != nil {
		t.Fatalf("retry Commit: %v", err)
	}
}

func TestSaleExhaustingBatchFlipsStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Nails 2in")
	batch := env.createBatch(t, product.ID, 3, 100, 140, 150)
	cart := reviewedSaleCart(t, batch, product, 3, 150)

	if _, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cash: 450},
	}); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	fresh, err := env.batchRepo.GetByID(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Status != enum.BatchStatusOut {
		t.Errorf("expected batch out at zero stock, got %v", fresh.Status)
	}
}

func TestCreditSaleRequiresParty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Paint 4L")
	batch := env.createBatch(t, product.ID, 10, 2000, 2800, 3000)

	cart := reviewedSaleCart(t, batch, product, 2, 3000)
	_, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cash: 1000},
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for anonymous credit sale, got %v", err)
	}

	// New customer without a mobile number cannot carry a balance.
	_, err = env.settlement.Commit(ctx, &CommitInput{
		Cart:        cart,
		UserID:      env.user.ID,
		NewCustomer: &NewCustomerInput{Name: "Sunil"},
		Tender:      TenderInput{Cash: 1000},
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for missing mobile, got %v", err)
	}
}

func TestCreditSaleGrowsCustomerDebt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Wire 2.5mm")
	batch := env.createBatch(t, product.ID, 100, 5000, 7000, 7500)
	customer := env.createCustomer(t, "Kamal", "0771234567")
	cart := reviewedSaleCart(t, batch, product, 10, 7500)

	txn, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:       cart,
		UserID:     env.user.ID,
		CustomerID: &customer.ID,
		Tender:     TenderInput{Cash: 50000},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if txn.Status != enum.TransactionStatusPending {
		t.Errorf("expected pending status on short payment, got %v", txn.Status)
	}

	fresh, err := env.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Credit != 25000 {
		t.Errorf("expected 25000 owed, got %d", fresh.Credit)
	}
}

func TestDuplicateMobileRollsBackStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createCustomer(t, "Existing", "0770000000")
	product := env.createProduct(t, "Hinge 3in")
	batch := env.createBatch(t, product.ID, 10, 100, 180, 200)

	mobile := "0770000000"
	cart := reviewedSaleCart(t, batch, product, 2, 200)
	_, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:        cart,
		UserID:      env.user.ID,
		NewCustomer: &NewCustomerInput{Name: "Imposter", Mobile: &mobile},
		Tender:      TenderInput{Cash: 100},
	})
	if !apperror.IsKind(err, apperror.KindDuplicateParty) {
		t.Fatalf("expected duplicate party error, got %v", err)
	}

	fresh, err := env.batchRepo.GetByID(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.CurrentQuantity != 10 {
		t.Errorf("stock must be untouched after rollback, got %v", fresh.CurrentQuantity)
	}
}

func TestChequeTenderCreatesPendingCheque(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Tile Adhesive")
	batch := env.createBatch(t, product.ID, 20, 1000, 1400, 1500)
	customer := env.createCustomer(t, "Nimal", "0712345678")

	due := time.Now().AddDate(0, 0, 14)
	cart := reviewedSaleCart(t, batch, product, 10, 1500)
	txn, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:       cart,
		UserID:     env.user.ID,
		CustomerID: &customer.ID,
		Tender: TenderInput{
			Cheque:        15000,
			ChequeNumber:  "123456",
			ChequeDueDate: &due,
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// The cheque counts as tendered money immediately.
	if txn.Status != enum.TransactionStatusPaid {
		t.Errorf("expected paid status, got %v", txn.Status)
	}

	cheques, _, err := env.chequeRepo.List(ctx, domainRepo.ChequeFilter{CustomerID: &customer.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cheques) != 1 {
		t.Fatalf("expected 1 cheque, got %d", len(cheques))
	}
	if cheques[0].Status != enum.ChequeStatusPending || cheques[0].Amount != 15000 {
		t.Errorf("expected pending cheque of 15000, got %+v", cheques[0])
	}
}

func TestChequeTenderNeedsNumberAndDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Putty 1kg")
	batch := env.createBatch(t, product.ID, 5, 200, 280, 300)
	cart := reviewedSaleCart(t, batch, product, 1, 300)

	_, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cheque: 300},
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for bare cheque, got %v", err)
	}
	// Validation fires before the state transition, so the cart is untouched.
	if cart.State() != workspace.StateReviewing {
		t.Errorf("expected cart still reviewing, got %v", cart.State())
	}
}

func TestPurchaseCommitCreatesBatchAndDebt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "GI Pipe 1in")
	supplier := env.createSupplier(t, "Lanka Steel")

	cart := workspace.NewCart(enum.TransactionKindPurchase)
	if _, err := cart.AddLine(workspace.Line{
		BatchID:         uuid.New(),
		ProductID:       product.ID,
		Title:           product.Title,
		BatchNumber:     "GRN-001",
		Quantity:        50,
		UnitPrice:       80000,
		SellingPrice:    95000,
		MinSellingPrice: 90000,
	}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.Review(); err != nil {
		t.Fatalf("Review: %v", err)
	}

	txn, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:       cart,
		UserID:     env.user.ID,
		SupplierID: &supplier.ID,
		Tender:     TenderInput{Cash: 1000000},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if txn.Kind != enum.TransactionKindPurchase {
		t.Errorf("expected purchase kind, got %v", txn.Kind)
	}
	if txn.Status != enum.TransactionStatusPending {
		t.Errorf("expected pending on partial payment, got %v", txn.Status)
	}

	batches, err := env.batchRepo.ListForProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("ListForProduct: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("expected 1 new batch, got %d", len(batches))
	}
	batch := batches[0]
	if batch.CurrentQuantity != 50 || batch.QuantityIn != 50 || batch.BuyingPrice != 80000 {
		t.Errorf("unexpected batch: %+v", batch)
	}

	movements, err := env.movementRepo.ListForBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("ListForBatch: %v", err)
	}
	if len(movements) != 1 || movements[0].Direction != enum.MovementIn {
		t.Errorf("expected one inbound movement, got %+v", movements)
	}

	fresh, err := env.supplierRepo.GetByID(ctx, supplier.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Credit != 3000000 {
		t.Errorf("expected 3000000 owed to supplier, got %d", fresh.Credit)
	}
}

func TestLineMarkdownKeepsTotalConsistent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Door Lock")
	batch := env.createBatch(t, product.ID, 10, 300, 350, 500)
	cart := reviewedSaleCart(t, batch, product, 2, 400)

	txn, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cash: 800},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// The below-list markdown is already inside the line prices; with no bill
	// discount the header total is exactly the line sum.
	if txn.SubTotal != 800 || txn.DiscountAmount != 0 || txn.Total != 800 {
		t.Errorf("expected subtotal=total=800 with no bill discount, got sub=%d disc=%d total=%d",
			txn.SubTotal, txn.DiscountAmount, txn.Total)
	}

	lines, err := env.lineRepo.GetByTransactionID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetByTransactionID: %v", err)
	}
	if len(lines) != 1 || lines[0].DiscountAmount != 200 {
		t.Errorf("expected one line carrying the 200 markdown, got %+v", lines)
	}
}

func TestBillDiscountReducesDue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Padlock 50mm")
	batch := env.createBatch(t, product.ID, 10, 300, 450, 500)
	cart := reviewedSaleCart(t, batch, product, 2, 500)

	txn, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:     cart,
		UserID:   env.user.ID,
		Discount: 200,
		Tender:   TenderInput{Cash: 800},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if txn.SubTotal != 1000 || txn.DiscountAmount != 200 || txn.Total != 800 {
		t.Errorf("expected 1000 - 200 = 800, got sub=%d disc=%d total=%d",
			txn.SubTotal, txn.DiscountAmount, txn.Total)
	}
	if txn.Status != enum.TransactionStatusPaid {
		t.Errorf("expected paid, got %v", txn.Status)
	}
}

func TestBillDiscountCannotExceedSubtotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Chisel 12mm")
	batch := env.createBatch(t, product.ID, 10, 100, 250, 300)
	cart := reviewedSaleCart(t, batch, product, 1, 300)

	_, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:     cart,
		UserID:   env.user.ID,
		Discount: 400,
		Tender:   TenderInput{Cash: 300},
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for oversized discount, got %v", err)
	}
	if cart.State() != workspace.StateReviewing {
		t.Errorf("expected cart still reviewing, got %v", cart.State())
	}
}

func TestTaxAppliesToDiscountedAmount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	taxed := NewSettlementService(
		env.uow, env.txnRepo, env.lineRepo, env.paymentRepo, env.chequeRepo,
		env.batchRepo, env.movementRepo, env.customerRepo, env.supplierRepo,
		receipt.NewNullRenderer(), 10, "Test Shop", "",
	)

	product := env.createProduct(t, "Grinder Disc")
	batch := env.createBatch(t, product.ID, 10, 5000, 9000, 10000)
	cart := reviewedSaleCart(t, batch, product, 3, 10000)

	txn, err := taxed.Commit(ctx, &CommitInput{
		Cart:   cart,
		UserID: env.user.ID,
		Tender: TenderInput{Cash: 33000},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if txn.TaxAmount != 3000 || txn.Total != 33000 {
		t.Errorf("expected 10%% tax of 3000 on 30000, got tax=%d total=%d",
			txn.TaxAmount, txn.Total)
	}
	if txn.Status != enum.TransactionStatusPaid {
		t.Errorf("expected paid, got %v", txn.Status)
	}

	// A bill discount shrinks the tax base first.
	cart2 := reviewedSaleCart(t, batch, product, 1, 10000)
	txn2, err := taxed.Commit(ctx, &CommitInput{
		Cart:     cart2,
		UserID:   env.user.ID,
		Discount: 2000,
		Tender:   TenderInput{Cash: 8800},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if txn2.TaxAmount != 800 || txn2.Total != 8800 {
		t.Errorf("expected tax 800 on 8000, got tax=%d total=%d",
			txn2.TaxAmount, txn2.Total)
	}
}

func TestPurchaseCommitRejectsNonPositivePricing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Hacksaw Blade")
	supplier := env.createSupplier(t, "Ceylon Tools")

	cart := workspace.NewCart(enum.TransactionKindPurchase)
	if _, err := cart.AddLine(workspace.Line{
		BatchID:         uuid.New(),
		ProductID:       product.ID,
		Title:           product.Title,
		Quantity:        10,
		UnitPrice:       500,
		SellingPrice:    0,
		MinSellingPrice: 600,
	}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.Review(); err != nil {
		t.Fatalf("Review: %v", err)
	}

	_, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:       cart,
		UserID:     env.user.ID,
		SupplierID: &supplier.ID,
		Tender:     TenderInput{Cash: 5000},
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for zero selling price, got %v", err)
	}

	batches, err := env.batchRepo.ListForProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("ListForProduct: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("expected rollback to leave no batches, got %d", len(batches))
	}
}

func TestMovementLedgerReconciles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Sand Bag")
	batch := env.createBatch(t, product.ID, 20, 500, 650, 700)

	for _, qty := range []float64{3, 5, 2} {
		cart := reviewedSaleCart(t, batch, product, qty, 700)
		if _, err := env.settlement.Commit(ctx, &CommitInput{
			Cart:   cart,
			UserID: env.user.ID,
			Tender: TenderInput{Cash: int64(qty * 700)},
		}); err != nil {
			t.Fatalf("Commit %v: %v", qty, err)
		}
	}

	out, err := env.movementRepo.SumForBatch(ctx, batch.ID, enum.MovementOut)
	if err != nil {
		t.Fatalf("SumForBatch: %v", err)
	}
	if out != 10 {
		t.Errorf("expected 10 total issued in the ledger, got %v", out)
	}

	fresh, err := env.batchRepo.GetByID(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.QuantityIn-out != fresh.CurrentQuantity {
		t.Errorf("ledger does not reconcile: in=%v out=%v on hand=%v",
			fresh.QuantityIn, out, fresh.CurrentQuantity)
	}
}
