package workspace

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
)

var ErrTabNotFound = errors.New("tab not found")

// TabInfo is a listing row for one open tab.
type TabInfo struct {
	ID        uuid.UUID            `json:"id"`
	Kind      enum.TransactionKind `json:"kind"`
	State     string               `json:"state"`
	LineCount int                  `json:"line_count"`
	SubTotal  float64              `json:"sub_total"`
	Active    bool                 `json:"active"`
}

// Manager holds the open transaction tabs for one terminal. Tabs are keyed by
// id, not position, so closing one never renumbers the rest. There is always
// at least one open tab and exactly one active tab.
type Manager struct {
	mu     sync.Mutex
	tabs   map[uuid.UUID]*Cart
	order  []uuid.UUID
	active uuid.UUID
}

// NewManager starts with a single fresh sale tab, active.
func NewManager() *Manager {
	m := &Manager{tabs: make(map[uuid.UUID]*Cart)}
	m.active = m.openLocked(enum.TransactionKindSale)
	return m
}

func (m *Manager) openLocked(kind enum.TransactionKind) uuid.UUID {
	id := uuid.New()
	m.tabs[id] = NewCart(kind)
	m.order = append(m.order, id)
	return id
}

// Open adds a new tab of the given kind and makes it active.
func (m *Manager) Open(kind enum.TransactionKind) (uuid.UUID, *Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.openLocked(kind)
	m.active = id
	return id, m.tabs[id]
}

// Get returns the cart behind a tab id.
func (m *Manager) Get(id uuid.UUID) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.tabs[id]
	if !ok {
		return nil, ErrTabNotFound
	}
	return cart, nil
}

// Active returns the currently selected tab.
func (m *Manager) Active() (uuid.UUID, *Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.tabs[m.active]
}

// SetActive switches the selection to an existing tab.
func (m *Manager) SetActive(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tabs[id]; !ok {
		return ErrTabNotFound
	}
	m.active = id
	return nil
}

// Close discards a tab. Closing the last tab opens a fresh sale draft so the
// terminal never shows an empty workspace; closing the active tab moves the
// selection to its neighbor.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tabs[id]; !ok {
		return ErrTabNotFound
	}

	delete(m.tabs, id)
	idx := 0
	for i, tid := range m.order {
		if tid == id {
			idx = i
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	if len(m.order) == 0 {
		m.active = m.openLocked(enum.TransactionKindSale)
		return nil
	}
	if m.active == id {
		if idx >= len(m.order) {
			idx = len(m.order) - 1
		}
		m.active = m.order[idx]
	}
	return nil
}

// List returns all open tabs in opening order.
func (m *Manager) List() []TabInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]TabInfo, 0, len(m.order))
	for _, id := range m.order {
		cart := m.tabs[id]
		out = append(out, TabInfo{
			ID:        id,
			Kind:      cart.Kind(),
			State:     cart.State().String(),
			LineCount: len(cart.Lines()),
			SubTotal:  float64(cart.SubTotal()) / 100,
			Active:    id == m.active,
		})
	}
	return out
}
