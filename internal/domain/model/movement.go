package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// Movement is one posted deposit or withdrawal. Once persisted it is
// immutable: no update or re-ordering is permitted. The value is stored
// signed (positive for deposits, negative for withdrawals) so the balance
// derivation is a plain sum, and each movement snapshots the balance
// immediately before and after it.
type Movement struct {
	id            valueobject.MovementID
	accountNumber valueobject.AccountNumber
	kind          valueobject.MovementKind
	value         decimal.Decimal
	balanceBefore decimal.Decimal
	balanceAfter  decimal.Decimal
	occurredAt    time.Time
	description   string
}

const maxDescriptionLen = 500

// NewMovement builds a movement with a generated id. It is invoked by the
// movement strategies, which are responsible for the sign of value and the
// balance snapshots.
func NewMovement(
	accountNumber valueobject.AccountNumber,
	kind valueobject.MovementKind,
	value, balanceBefore, balanceAfter decimal.Decimal,
	description string,
	occurredAt time.Time,
) (Movement, error) {
	if len(description) > maxDescriptionLen {
		return Movement{}, fmt.Errorf("%w: description exceeds %d characters", valueobject.ErrInvalidValue, maxDescriptionLen)
	}
	return Movement{
		id:            valueobject.NewMovementID(),
		accountNumber: accountNumber,
		kind:          kind,
		value:         value,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceAfter,
		occurredAt:    occurredAt,
		description:   description,
	}, nil
}

// ReconstructMovement recreates a Movement from persisted data.
func ReconstructMovement(
	id valueobject.MovementID,
	accountNumber valueobject.AccountNumber,
	kind valueobject.MovementKind,
	value, balanceBefore, balanceAfter decimal.Decimal,
	occurredAt time.Time,
	description string,
) Movement {
	return Movement{
		id:            id,
		accountNumber: accountNumber,
		kind:          kind,
		value:         value,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceAfter,
		occurredAt:    occurredAt,
		description:   description,
	}
}

// ID returns the movement identifier.
func (m Movement) ID() valueobject.MovementID { return m.id }

// AccountNumber returns the account the movement posted against.
func (m Movement) AccountNumber() valueobject.AccountNumber { return m.accountNumber }

// Kind returns the movement kind.
func (m Movement) Kind() valueobject.MovementKind { return m.kind }

// Value returns the signed movement value.
func (m Movement) Value() decimal.Decimal { return m.value }

// BalanceBefore returns the account balance immediately before the movement.
func (m Movement) BalanceBefore() decimal.Decimal { return m.balanceBefore }

// BalanceAfter returns the account balance immediately after the movement.
func (m Movement) BalanceAfter() decimal.Decimal { return m.balanceAfter }

// OccurredAt returns the movement timestamp.
func (m Movement) OccurredAt() time.Time { return m.occurredAt }

// Description returns the optional free-text description.
func (m Movement) Description() string { return m.description }
