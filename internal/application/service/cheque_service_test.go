package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/pkg/apperror"
)

// settleWithCheque rings up a fully cheque-paid sale and returns the cheque.
func settleWithCheque(t *testing.T, env *testEnv, customer entity.Customer, due time.Time) entity.Cheque {
	t.Helper()
	ctx := context.Background()

	product := env.createProduct(t, "Roof Sheet")
	batch := env.createBatch(t, product.ID, 10, 3000, 4200, 4500)
	cart := reviewedSaleCart(t, batch, product, 2, 4500)

	_, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:       cart,
		UserID:     env.user.ID,
		CustomerID: &customer.ID,
		Tender: TenderInput{
			Cheque:        9000,
			ChequeNumber:  "700123",
			ChequeDueDate: &due,
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var cheque entity.Cheque
	if err := env.db.First(&cheque).Error; err != nil {
		t.Fatalf("load cheque: %v", err)
	}
	return cheque
}

func TestChequePaidIsFinancialNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Ruwan", "0761111111")
	cheque := settleWithCheque(t, env, customer, time.Now().AddDate(0, 0, 7))

	updated, err := env.cheques.UpdateStatus(ctx, cheque.ID, enum.ChequeStatusPaid)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != enum.ChequeStatusPaid {
		t.Errorf("expected paid, got %v", updated.Status)
	}

	txn, err := env.txnRepo.GetByID(ctx, cheque.TransactionID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if txn.PaidAmount != 9000 || txn.Status != enum.TransactionStatusPaid {
		t.Errorf("clearing a cheque must not change money, got paid=%d status=%v", txn.PaidAmount, txn.Status)
	}

	fresh, err := env.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Credit != 0 {
		t.Errorf("clearing a cheque must not touch credit, got %d", fresh.Credit)
	}
}

func TestChequeBounceReversesTender(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Saman", "0762222222")
	cheque := settleWithCheque(t, env, customer, time.Now().AddDate(0, 0, 7))

	updated, err := env.cheques.UpdateStatus(ctx, cheque.ID, enum.ChequeStatusBounced)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != enum.ChequeStatusBounced {
		t.Errorf("expected bounced, got %v", updated.Status)
	}

	txn, err := env.txnRepo.GetByID(ctx, cheque.TransactionID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if txn.PaidAmount != 0 {
		t.Errorf("expected paid amount reversed to 0, got %d", txn.PaidAmount)
	}
	if txn.Status != enum.TransactionStatusPending {
		t.Errorf("expected transaction back to pending, got %v", txn.Status)
	}

	fresh, err := env.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Credit != 9000 {
		t.Errorf("expected 9000 owed after bounce, got %d", fresh.Credit)
	}
}

func TestChequeBounceIsSingleShot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Chamara", "0763333333")
	cheque := settleWithCheque(t, env, customer, time.Now().AddDate(0, 0, 7))

	if _, err := env.cheques.UpdateStatus(ctx, cheque.ID, enum.ChequeStatusBounced); err != nil {
		t.Fatalf("first bounce: %v", err)
	}
	// The second request finds the cheque already settled and reverses nothing.
	if _, err := env.cheques.UpdateStatus(ctx, cheque.ID, enum.ChequeStatusBounced); err != nil {
		t.Fatalf("second bounce: %v", err)
	}

	fresh, err := env.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Credit != 9000 {
		t.Errorf("double bounce must not double the debt, got %d", fresh.Credit)
	}

	txn, err := env.txnRepo.GetByID(ctx, cheque.TransactionID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if txn.PaidAmount != 0 {
		t.Errorf("double bounce must not drive paid amount negative, got %d", txn.PaidAmount)
	}
}

func TestChequeCannotReturnToPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Dilan", "0764444444")
	cheque := settleWithCheque(t, env, customer, time.Now().AddDate(0, 0, 7))

	_, err := env.cheques.UpdateStatus(ctx, cheque.ID, enum.ChequeStatusPending)
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for pending target, got %v", err)
	}
}

func TestDueYesterday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Pradeep", "0765555555")

	yesterday := time.Now().AddDate(0, 0, -1)
	overdue := settleWithCheque(t, env, customer, yesterday)
	settleWithCheque(t, env, customer, time.Now().AddDate(0, 0, 30))

	due, err := env.cheques.DueYesterday(ctx)
	if err != nil {
		t.Fatalf("DueYesterday: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 overdue cheque, got %d", len(due))
	}
	if due[0].ID != overdue.ID {
		t.Errorf("wrong cheque flagged overdue")
	}

	// Once settled it drops off the follow-up list.
	if _, err := env.cheques.UpdateStatus(ctx, overdue.ID, enum.ChequeStatusPaid); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	due, err = env.cheques.DueYesterday(ctx)
	if err != nil {
		t.Fatalf("DueYesterday: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("settled cheque must not be listed, got %d", len(due))
	}
}

func TestBatchUpdateContinuesPastFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Lakmal", "0766666666")

	first := settleWithCheque(t, env, customer, time.Now().AddDate(0, 0, 7))
	second := settleWithCheque(t, env, customer, time.Now().AddDate(0, 0, 7))

	// Unknown id in the middle must not stop the batch.
	results := env.cheques.BatchUpdateStatus(ctx,
		[]uuid.UUID{first.ID, uuid.New(), second.ID}, enum.ChequeStatusPaid)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Error != "" || results[2].Error != "" {
		t.Errorf("valid cheques must succeed: %+v", results)
	}
	if results[1].Error == "" {
		t.Error("unknown cheque must report an error")
	}
}
