package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	"github.com/bancacore/cuenta-ledger/pkg/events"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock implementations ---

// mockAccountRepo is an in-memory port.AccountRepository with the same
// revision compare-and-swap semantics as the real store.
type mockAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]model.Account

	findFunc func(ctx context.Context, number valueobject.AccountNumber) (model.Account, error)
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := account.Number().String()
	if _, ok := m.accounts[key]; ok {
		return fmt.Errorf("account %s already exists", key)
	}
	m.accounts[key] = account.ClearDomainEvents()
	return nil
}

func (m *mockAccountRepo) Update(_ context.Context, account model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.casUpdateLocked(account)
}

func (m *mockAccountRepo) casUpdateLocked(account model.Account) error {
	key := account.Number().String()
	stored, ok := m.accounts[key]
	if !ok {
		return fmt.Errorf("account %s: %w", key, model.ErrAccountNotFound)
	}
	if stored.Revision() != account.Revision()-1 {
		return fmt.Errorf("account %s at revision %d: %w", key, account.Revision()-1, model.ErrConcurrentModification)
	}
	m.accounts[key] = account.ClearDomainEvents()
	return nil
}

func (m *mockAccountRepo) FindByNumber(ctx context.Context, number valueobject.AccountNumber) (model.Account, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, number)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[number.String()]
	if !ok {
		return model.Account{}, fmt.Errorf("account %s: %w", number, model.ErrAccountNotFound)
	}
	return account, nil
}

func (m *mockAccountRepo) ListByCustomer(_ context.Context, customerID valueobject.CustomerID, activeOnly bool, limit, offset int) ([]model.Account, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []model.Account
	for _, account := range m.accounts {
		if account.CustomerID() != customerID {
			continue
		}
		if activeOnly && !account.Active() {
			continue
		}
		matched = append(matched, account)
	}

	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// mockLedgerStore records appended movements and applies the account write
// through the same CAS path the repository uses.
type mockLedgerStore struct {
	repo      *mockAccountRepo
	movements []model.Movement

	appendFunc func(ctx context.Context, account model.Account, movement model.Movement) error
}

func (m *mockLedgerStore) AppendMovement(ctx context.Context, account model.Account, movement model.Movement) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, account, movement)
	}

	m.repo.mu.Lock()
	defer m.repo.mu.Unlock()

	if err := m.repo.casUpdateLocked(account); err != nil {
		return err
	}
	m.movements = append(m.movements, movement)
	return nil
}

// mockMovementRepo serves canned movements.
type mockMovementRepo struct {
	movements []model.Movement

	findFunc func(ctx context.Context, id valueobject.MovementID) (model.Movement, error)
}

func (m *mockMovementRepo) FindByID(ctx context.Context, id valueobject.MovementID) (model.Movement, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, id)
	}
	for _, movement := range m.movements {
		if movement.ID() == id {
			return movement, nil
		}
	}
	return model.Movement{}, fmt.Errorf("movement %s: %w", id, model.ErrMovementNotFound)
}

func (m *mockMovementRepo) ListByAccount(_ context.Context, number valueobject.AccountNumber, from, to time.Time, limit, offset int) ([]model.Movement, int, error) {
	var matched []model.Movement
	for _, movement := range m.movements {
		if movement.AccountNumber() != number {
			continue
		}
		if movement.OccurredAt().Before(from) || !movement.OccurredAt().Before(to) {
			continue
		}
		matched = append(matched, movement)
	}

	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *mockMovementRepo) ListForStatement(_ context.Context, numbers []valueobject.AccountNumber, from, to time.Time) ([]model.Movement, error) {
	wanted := make(map[valueobject.AccountNumber]bool, len(numbers))
	for _, number := range numbers {
		wanted[number] = true
	}

	var matched []model.Movement
	for _, movement := range m.movements {
		if !wanted[movement.AccountNumber()] {
			continue
		}
		if movement.OccurredAt().Before(from) || !movement.OccurredAt().Before(to) {
			continue
		}
		matched = append(matched, movement)
	}
	return matched, nil
}

// mockIdentityClient resolves customers from a fixed map.
type mockIdentityClient struct {
	customers map[string]port.Customer
	err       error
}

func (m *mockIdentityClient) ResolveCustomer(_ context.Context, id valueobject.CustomerID) (port.Customer, error) {
	if m.err != nil {
		return port.Customer{}, m.err
	}
	customer, ok := m.customers[id.String()]
	if !ok {
		return port.Customer{ID: id.String(), Exists: false}, nil
	}
	return customer, nil
}

// mockEventPublisher records published events.
type mockEventPublisher struct {
	mu     sync.Mutex
	topics []string
	events []events.DomainEvent
}

func (m *mockEventPublisher) Publish(_ context.Context, topic string, evts ...events.DomainEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for range evts {
		m.topics = append(m.topics, topic)
	}
	m.events = append(m.events, evts...)
}
