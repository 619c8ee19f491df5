// Package event defines the domain events emitted by the account aggregate.
// Movement posting emits no event; only account lifecycle facts are
// published.
package event

import (
	"github.com/shopspring/decimal"

	"github.com/bancacore/cuenta-ledger/pkg/events"
)

// Event type names as they appear on the wire.
const (
	TypeAccountCreated     = "account.created"
	TypeAccountUpdated     = "account.updated"
	TypeAccountDeactivated = "account.deactivated"

	aggregateType = "Account"
)

// AccountCreated is emitted when a new account is opened.
type AccountCreated struct {
	events.BaseEvent
	CustomerID     string          `json:"customer_id"`
	AccountType    string          `json:"account_type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// NewAccountCreated builds an AccountCreated event.
func NewAccountCreated(accountNumber, customerID, accountType string, openingBalance decimal.Decimal) AccountCreated {
	return AccountCreated{
		BaseEvent:      events.NewBaseEvent(TypeAccountCreated, accountNumber, aggregateType),
		CustomerID:     customerID,
		AccountType:    accountType,
		OpeningBalance: openingBalance,
	}
}

// AccountUpdated is emitted when mutable account fields change.
type AccountUpdated struct {
	events.BaseEvent
	CustomerID  string `json:"customer_id"`
	AccountType string `json:"account_type"`
	Active      bool   `json:"active"`
}

// NewAccountUpdated builds an AccountUpdated event.
func NewAccountUpdated(accountNumber, customerID, accountType string, active bool) AccountUpdated {
	return AccountUpdated{
		BaseEvent:   events.NewBaseEvent(TypeAccountUpdated, accountNumber, aggregateType),
		CustomerID:  customerID,
		AccountType: accountType,
		Active:      active,
	}
}

// AccountDeactivated is emitted when an account is soft-deleted.
type AccountDeactivated struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
}

// NewAccountDeactivated builds an AccountDeactivated event.
func NewAccountDeactivated(accountNumber, customerID string) AccountDeactivated {
	return AccountDeactivated{
		BaseEvent:  events.NewBaseEvent(TypeAccountDeactivated, accountNumber, aggregateType),
		CustomerID: customerID,
	}
}
