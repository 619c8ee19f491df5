// Package port defines the driven-side contracts of the ledger: stores,
// the identity directory, and the event publisher.
package port

import (
	"context"
	"time"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	"github.com/bancacore/cuenta-ledger/pkg/events"
)

// AccountRepository defines persistence operations for Account aggregates.
type AccountRepository interface {
	// Create inserts a new account. The account number must be unique.
	Create(ctx context.Context, account model.Account) error

	// Update persists account state using optimistic concurrency control:
	// the row is written only if its stored revision is exactly one behind
	// the aggregate's. A stale revision yields ErrConcurrentModification,
	// a missing row ErrAccountNotFound; the two are always distinguishable.
	Update(ctx context.Context, account model.Account) error

	// FindByNumber retrieves an account by its account number.
	// Returns ErrAccountNotFound if absent.
	FindByNumber(ctx context.Context, number valueobject.AccountNumber) (model.Account, error)

	// ListByCustomer returns the customer's accounts with pagination.
	// With activeOnly set, soft-deleted accounts are excluded.
	// Returns the accounts, total count, and any error.
	ListByCustomer(ctx context.Context, customerID valueobject.CustomerID, activeOnly bool, limit, offset int) ([]model.Account, int, error)
}

// MovementRepository defines read operations over the immutable movement
// history.
type MovementRepository interface {
	// FindByID retrieves a movement by its identifier.
	// Returns ErrMovementNotFound if absent.
	FindByID(ctx context.Context, id valueobject.MovementID) (model.Movement, error)

	// ListByAccount returns an account's movements with occurredAt in
	// [from, to), ordered by occurredAt ascending, with pagination.
	ListByAccount(ctx context.Context, number valueobject.AccountNumber, from, to time.Time, limit, offset int) ([]model.Movement, int, error)

	// ListForStatement returns all movements for the given accounts with
	// occurredAt in [from, to), ordered by occurredAt ascending.
	ListForStatement(ctx context.Context, numbers []valueobject.AccountNumber, from, to time.Time) ([]model.Movement, error)
}

// LedgerStore persists a movement together with its account's new state as
// one atomic unit. The account update follows the same optimistic
// concurrency discipline as AccountRepository.Update; on conflict nothing
// is written and ErrConcurrentModification is returned.
type LedgerStore interface {
	AppendMovement(ctx context.Context, account model.Account, movement model.Movement) error
}

// Customer is the identity directory's view of a customer.
type Customer struct {
	ID             string
	Name           string
	Identification string
	Exists         bool
	Active         bool
}

// IdentityClient resolves customer ids against the external customer
// directory. Calls are bounded by a timeout; a persistent failure surfaces
// as ErrDependencyUnavailable, never as a hang or a silently defaulted
// customer.
type IdentityClient interface {
	ResolveCustomer(ctx context.Context, id valueobject.CustomerID) (Customer, error)
}

// EventPublisher publishes domain events. Publishing is best-effort and
// fire-and-forget by contract: implementations log failures and never
// report them to the caller, so a broker outage cannot fail or roll back
// the originating ledger operation.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, evts ...events.DomainEvent)
}
