package identity

import (
	"context"
	"sync"

	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// Stub is an in-memory identity directory for local development and tests.
// Unknown ids resolve as non-existent customers.
type Stub struct {
	mu        sync.RWMutex
	customers map[string]port.Customer
}

var _ port.IdentityClient = (*Stub)(nil)

// NewStub creates an empty stub directory.
func NewStub() *Stub {
	return &Stub{customers: make(map[string]port.Customer)}
}

// Put registers or replaces a customer.
func (s *Stub) Put(customer port.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer.Exists = true
	s.customers[customer.ID] = customer
}

// ResolveCustomer looks the customer up in memory.
func (s *Stub) ResolveCustomer(_ context.Context, id valueobject.CustomerID) (port.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[id.String()]
	if !ok {
		return port.Customer{ID: id.String(), Exists: false}, nil
	}
	return customer, nil
}
