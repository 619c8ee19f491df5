package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancacore/cuenta-ledger/internal/domain/event"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	"github.com/bancacore/cuenta-ledger/pkg/events"
)

// Account is the aggregate root of the ledger bounded context. It owns its
// current balance exclusively: the balance changes only through a movement
// strategy invoked by the ledger use cases.
//
// The aggregate is immutable; state transitions return a new instance with
// the revision advanced. The revision is the optimistic-concurrency token
// the persistence layer compares on update.
type Account struct {
	number         valueobject.AccountNumber
	accountType    valueobject.AccountType
	openingBalance decimal.Decimal
	currentBalance decimal.Decimal
	active         bool
	customerID     valueobject.CustomerID
	revision       int64
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []events.DomainEvent
}

// NewAccount creates an active account with a generated account number and
// the current balance seeded from the opening balance. It emits an
// account.created event.
func NewAccount(
	customerID valueobject.CustomerID,
	accountType valueobject.AccountType,
	openingBalance decimal.Decimal,
	now time.Time,
) (Account, error) {
	if customerID.IsZero() {
		return Account{}, fmt.Errorf("%w: customer id is required", valueobject.ErrInvalidValue)
	}
	if accountType.IsZero() {
		return Account{}, fmt.Errorf("%w: account type is required", valueobject.ErrInvalidValue)
	}
	if openingBalance.IsNegative() {
		return Account{}, fmt.Errorf("%w: opening balance must not be negative, got %s", valueobject.ErrInvalidValue, openingBalance.StringFixed(2))
	}

	number := valueobject.NewAccountNumber()
	account := Account{
		number:         number,
		accountType:    accountType,
		openingBalance: openingBalance,
		currentBalance: openingBalance,
		active:         true,
		customerID:     customerID,
		revision:       1,
		createdAt:      now,
		updatedAt:      now,
	}

	account.domainEvents = append(account.domainEvents, event.NewAccountCreated(
		number.String(),
		customerID.String(),
		accountType.String(),
		openingBalance,
	))

	return account, nil
}

// ReconstructAccount recreates an Account from persisted data without
// validation or events. Used by repository implementations.
func ReconstructAccount(
	number valueobject.AccountNumber,
	accountType valueobject.AccountType,
	openingBalance, currentBalance decimal.Decimal,
	active bool,
	customerID valueobject.CustomerID,
	revision int64,
	createdAt, updatedAt time.Time,
) Account {
	return Account{
		number:         number,
		accountType:    accountType,
		openingBalance: openingBalance,
		currentBalance: currentBalance,
		active:         active,
		customerID:     customerID,
		revision:       revision,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// WithBalance returns a copy of the account holding the new current balance
// and an advanced revision. It is invoked only by the movement strategies;
// nothing else may move the balance.
func (a Account) WithBalance(balance decimal.Decimal, now time.Time) Account {
	updated := a.clone()
	updated.currentBalance = balance
	updated.updatedAt = now
	updated.revision = a.revision + 1
	return updated
}

// Deactivate soft-deletes the account: no further movements may post.
// It emits an account.deactivated event. Deactivating an already inactive
// account fails.
func (a Account) Deactivate(now time.Time) (Account, error) {
	if !a.active {
		return Account{}, fmt.Errorf("account %s: %w", a.number, ErrInactiveAccount)
	}

	updated := a.clone()
	updated.active = false
	updated.updatedAt = now
	updated.revision = a.revision + 1

	updated.domainEvents = append(updated.domainEvents, event.NewAccountDeactivated(
		a.number.String(),
		a.customerID.String(),
	))

	return updated, nil
}

// Update mutates the permitted mutable fields: the account type and the
// active flag. Account number, opening balance, current balance, and
// revision are managed internally and never settable from outside.
// It emits an account.updated event.
func (a Account) Update(accountType valueobject.AccountType, active bool, now time.Time) Account {
	updated := a.clone()
	if !accountType.IsZero() {
		updated.accountType = accountType
	}
	updated.active = active
	updated.updatedAt = now
	updated.revision = a.revision + 1

	updated.domainEvents = append(updated.domainEvents, event.NewAccountUpdated(
		a.number.String(),
		a.customerID.String(),
		updated.accountType.String(),
		active,
	))

	return updated
}

// --- Accessors ---

// Number returns the account number.
func (a Account) Number() valueobject.AccountNumber { return a.number }

// AccountType returns the account type.
func (a Account) AccountType() valueobject.AccountType { return a.accountType }

// OpeningBalance returns the balance the account was created with.
func (a Account) OpeningBalance() decimal.Decimal { return a.openingBalance }

// CurrentBalance returns the live balance.
func (a Account) CurrentBalance() decimal.Decimal { return a.currentBalance }

// Active reports whether the account accepts movements.
func (a Account) Active() bool { return a.active }

// CustomerID returns the owning customer reference.
func (a Account) CustomerID() valueobject.CustomerID { return a.customerID }

// Revision returns the optimistic-concurrency token.
func (a Account) Revision() int64 { return a.revision }

// CreatedAt returns the creation timestamp.
func (a Account) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last update timestamp.
func (a Account) UpdatedAt() time.Time { return a.updatedAt }

// DomainEvents returns all uncommitted domain events.
func (a Account) DomainEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(a.domainEvents))
	copy(out, a.domainEvents)
	return out
}

// ClearDomainEvents returns a copy of the account with its events cleared.
func (a Account) ClearDomainEvents() Account {
	updated := a.clone()
	updated.domainEvents = nil
	return updated
}

func (a Account) clone() Account {
	cloned := a
	if len(a.domainEvents) > 0 {
		cloned.domainEvents = make([]events.DomainEvent, len(a.domainEvents))
		copy(cloned.domainEvents, a.domainEvents)
	}
	return cloned
}
