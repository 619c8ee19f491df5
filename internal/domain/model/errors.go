package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the ledger domain. Callers match them with errors.Is;
// the presentation layer maps them to transport status codes.
var (
	ErrAccountNotFound           = errors.New("account not found")
	ErrMovementNotFound          = errors.New("movement not found")
	ErrInactiveAccount           = errors.New("account is inactive")
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrUnsupportedMovementKind   = errors.New("unsupported movement kind")
	ErrUnknownOrInactiveCustomer = errors.New("customer unknown or inactive")
	ErrConcurrentModification    = errors.New("concurrent modification")
	ErrIllegalDateRange          = errors.New("start date must not be after end date")
	ErrDependencyUnavailable     = errors.New("dependency unavailable")
)

// InsufficientFundsError carries the balances behind an ErrInsufficientFunds
// so callers get one stable, documented message format.
type InsufficientFundsError struct {
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s, requested %s",
		e.Balance.StringFixed(2), e.Requested.StringFixed(2))
}

// Unwrap lets errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }
