package workspace

import (
	"testing"

	"github.com/hardwarepos/pos-api/internal/domain/enum"
)

func TestManagerStartsWithOneActiveSaleTab(t *testing.T) {
	m := NewManager()

	tabs := m.List()
	if len(tabs) != 1 {
		t.Fatalf("expected 1 tab, got %d", len(tabs))
	}
	if !tabs[0].Active {
		t.Error("initial tab must be active")
	}
	if tabs[0].Kind != enum.TransactionKindSale {
		t.Errorf("initial tab must be a sale, got %v", tabs[0].Kind)
	}
}

func TestOpenActivatesNewTab(t *testing.T) {
	m := NewManager()

	id, cart := m.Open(enum.TransactionKindPurchase)
	if cart.Kind() != enum.TransactionKindPurchase {
		t.Errorf("expected purchase tab, got %v", cart.Kind())
	}

	activeID, _ := m.Active()
	if activeID != id {
		t.Error("newly opened tab must become active")
	}
	if len(m.List()) != 2 {
		t.Errorf("expected 2 tabs, got %d", len(m.List()))
	}
}

func TestCloseKeepsStableIDs(t *testing.T) {
	m := NewManager()
	first, _ := m.Active()
	second, _ := m.Open(enum.TransactionKindSale)
	third, _ := m.Open(enum.TransactionKindSale)

	if err := m.Close(second); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Remaining tabs keep the identity they were opened with.
	if _, err := m.Get(first); err != nil {
		t.Errorf("first tab lost after closing second: %v", err)
	}
	if _, err := m.Get(third); err != nil {
		t.Errorf("third tab lost after closing second: %v", err)
	}
	if _, err := m.Get(second); err != ErrTabNotFound {
		t.Errorf("closed tab must be gone, got %v", err)
	}
}

func TestCloseActiveMovesSelection(t *testing.T) {
	m := NewManager()
	first, _ := m.Active()
	second, _ := m.Open(enum.TransactionKindSale)

	if err := m.Close(second); err != nil {
		t.Fatalf("Close: %v", err)
	}
	activeID, _ := m.Active()
	if activeID != first {
		t.Error("closing the active tab must select its neighbor")
	}
}

func TestCloseLastOpensFreshSaleTab(t *testing.T) {
	m := NewManager()
	only, _ := m.Active()

	if err := m.Close(only); err != nil {
		t.Fatalf("Close: %v", err)
	}

	tabs := m.List()
	if len(tabs) != 1 {
		t.Fatalf("expected a fresh tab after closing the last, got %d", len(tabs))
	}
	if tabs[0].ID == only {
		t.Error("fresh tab must have a new identity")
	}
	if tabs[0].Kind != enum.TransactionKindSale {
		t.Errorf("fresh tab must be a sale draft, got %v", tabs[0].Kind)
	}
	if !tabs[0].Active {
		t.Error("fresh tab must be active")
	}
}

func TestSetActiveUnknownTab(t *testing.T) {
	m := NewManager()

	stale, _ := m.Active()
	if err := m.Close(stale); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.SetActive(stale); err != ErrTabNotFound {
		t.Errorf("expected ErrTabNotFound for stale id, got %v", err)
	}
}
