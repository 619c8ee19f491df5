package valueobject

import "fmt"

// MovementKind is the kind of a balance-changing movement. The set is
// closed; the strategy table in the service package dispatches on it.
type MovementKind struct {
	value string
}

// Valid movement kinds.
var (
	MovementKindDeposit    = MovementKind{value: "DEPOSIT"}
	MovementKindWithdrawal = MovementKind{value: "WITHDRAWAL"}
)

// NewMovementKind validates and creates a MovementKind from a string.
func NewMovementKind(s string) (MovementKind, error) {
	switch s {
	case MovementKindDeposit.value:
		return MovementKindDeposit, nil
	case MovementKindWithdrawal.value:
		return MovementKindWithdrawal, nil
	default:
		return MovementKind{}, fmt.Errorf("%w: movement kind %q must be DEPOSIT or WITHDRAWAL", ErrInvalidValue, s)
	}
}

// String returns the string representation of the movement kind.
func (k MovementKind) String() string { return k.value }

// IsZero returns true if the movement kind is unset.
func (k MovementKind) IsZero() bool { return k.value == "" }
