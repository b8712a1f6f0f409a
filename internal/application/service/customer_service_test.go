package service

import (
	"context"
	"testing"

	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/pkg/apperror"
)

// creditSale rings up a sale on account and leaves the full total unpaid.
func creditSale(t *testing.T, env *testEnv, customer entity.Customer, qty float64, price int64) {
	t.Helper()
	ctx := context.Background()

	product := env.createProduct(t, "Binding Wire")
	batch := env.createBatch(t, product.ID, 1000, price/2, price-50, price)
	cart := reviewedSaleCart(t, batch, product, qty, price)

	if _, err := env.settlement.Commit(ctx, &CommitInput{
		Cart:       cart,
		UserID:     env.user.ID,
		CustomerID: &customer.ID,
		Tender:     TenderInput{},
	}); err != nil {
		t.Fatalf("credit sale: %v", err)
	}
}

func TestCreateCustomerDuplicateMobile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createCustomer(t, "First", "0750000000")

	mobile := "0750000000"
	err := env.customers.Create(ctx, &entity.Customer{Name: "Second", Mobile: &mobile})
	if !apperror.IsKind(err, apperror.KindDuplicateParty) {
		t.Fatalf("expected duplicate party error, got %v", err)
	}
}

func TestSearchLimitsResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		env.createCustomer(t, "Perera Hardware Crew", "")
	}

	matches, err := env.customers.Search(ctx, "perera")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 5 {
		t.Errorf("expected search capped at 5, got %d", len(matches))
	}
}

func TestRepayCreditWalksOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Jagath", "0751111111")

	creditSale(t, env, customer, 1, 10000) // owes 10000
	creditSale(t, env, customer, 1, 6000)  // owes 6000 more

	fresh, err := env.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Credit != 16000 {
		t.Fatalf("expected 16000 owed, got %d", fresh.Credit)
	}

	// 12000 clears the older sale and part-pays the newer one.
	updated, err := env.customers.RepayCredit(ctx, customer.ID, 12000)
	if err != nil {
		t.Fatalf("RepayCredit: %v", err)
	}
	if updated.Credit != 4000 {
		t.Errorf("expected 4000 still owed, got %d", updated.Credit)
	}

	pending, err := env.txnRepo.ListPendingForCustomer(ctx, customer.ID)
	if err != nil {
		t.Fatalf("ListPendingForCustomer: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 still-pending sale, got %d", len(pending))
	}
	if pending[0].Total != 6000 || pending[0].PaidAmount != 2000 {
		t.Errorf("expected newer sale part-paid 2000/6000, got %d/%d",
			pending[0].PaidAmount, pending[0].Total)
	}
	if pending[0].Status != enum.TransactionStatusPending {
		t.Errorf("part-paid sale must stay pending, got %v", pending[0].Status)
	}
}

func TestRepayCreditRejectsOverpayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Roshan", "0752222222")

	creditSale(t, env, customer, 1, 5000)

	if _, err := env.customers.RepayCredit(ctx, customer.ID, 6000); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for overpayment, got %v", err)
	}
	if _, err := env.customers.RepayCredit(ctx, customer.ID, 0); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for zero repayment, got %v", err)
	}
}
