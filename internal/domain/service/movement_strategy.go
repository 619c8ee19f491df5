// Package service holds the kind-specific movement rules.
package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// applyFunc validates a movement request against the account and computes
// the resulting movement and account state. The requested amount is always
// positive; the sign of the stored value is the strategy's concern.
type applyFunc func(account model.Account, amount decimal.Decimal, description string, now time.Time) (model.Movement, model.Account, error)

// strategies is the closed dispatch table. Adding a movement kind means
// adding exactly one entry here.
var strategies = map[valueobject.MovementKind]applyFunc{
	valueobject.MovementKindDeposit:    applyDeposit,
	valueobject.MovementKindWithdrawal: applyWithdrawal,
}

// ApplyMovement selects the strategy for kind and applies it, returning the
// movement and the account carrying the new balance. The caller persists
// both as one atomic unit.
func ApplyMovement(
	account model.Account,
	kind valueobject.MovementKind,
	amount decimal.Decimal,
	description string,
	now time.Time,
) (model.Movement, model.Account, error) {
	strategy, ok := strategies[kind]
	if !ok {
		return model.Movement{}, model.Account{}, fmt.Errorf("%w: %s", model.ErrUnsupportedMovementKind, kind)
	}

	if err := validateCommon(account, amount); err != nil {
		return model.Movement{}, model.Account{}, err
	}

	return strategy(account, amount, description, now)
}

// validateCommon holds the preconditions shared by every movement kind.
func validateCommon(account model.Account, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: movement amount must be greater than zero, got %s", valueobject.ErrInvalidValue, amount.StringFixed(2))
	}
	if !account.Active() {
		return fmt.Errorf("account %s: %w", account.Number(), model.ErrInactiveAccount)
	}
	return nil
}

func applyDeposit(account model.Account, amount decimal.Decimal, description string, now time.Time) (model.Movement, model.Account, error) {
	before := account.CurrentBalance()
	after := before.Add(amount)

	movement, err := model.NewMovement(
		account.Number(),
		valueobject.MovementKindDeposit,
		amount,
		before,
		after,
		description,
		now,
	)
	if err != nil {
		return model.Movement{}, model.Account{}, err
	}

	return movement, account.WithBalance(after, now), nil
}

func applyWithdrawal(account model.Account, amount decimal.Decimal, description string, now time.Time) (model.Movement, model.Account, error) {
	before := account.CurrentBalance()
	if amount.GreaterThan(before) {
		return model.Movement{}, model.Account{}, &model.InsufficientFundsError{
			Balance:   before,
			Requested: amount,
		}
	}
	after := before.Sub(amount)

	movement, err := model.NewMovement(
		account.Number(),
		valueobject.MovementKindWithdrawal,
		amount.Neg(),
		before,
		after,
		description,
		now,
	)
	if err != nil {
		return model.Movement{}, model.Account{}, err
	}

	return movement, account.WithBalance(after, now), nil
}
