package valueobject

import (
	"fmt"
	"strings"

	"github.com/bancacore/cuenta-ledger/pkg/ids"
)

// AccountNumber is an immutable value object identifying an account.
// Format: CTA-XXXXXXXX where X is an uppercase hexadecimal character.
type AccountNumber struct {
	value string
}

// NewAccountNumber generates a new random AccountNumber.
func NewAccountNumber() AccountNumber {
	return AccountNumber{value: ids.NewAccountNumber()}
}

// AccountNumberFromString validates and creates an AccountNumber from a string.
func AccountNumberFromString(s string) (AccountNumber, error) {
	s = strings.TrimSpace(s)
	if !ids.IsAccountNumber(s) {
		return AccountNumber{}, fmt.Errorf("%w: account number %q, expected CTA-XXXXXXXX", ErrInvalidValue, s)
	}
	return AccountNumber{value: s}, nil
}

// String returns the string representation of the account number.
func (n AccountNumber) String() string { return n.value }

// IsZero returns true if the account number is empty.
func (n AccountNumber) IsZero() bool { return n.value == "" }

// Equal returns true if two account numbers are equal.
func (n AccountNumber) Equal(other AccountNumber) bool { return n.value == other.value }

// MovementID is an immutable value object identifying a movement.
// Format: MOV-XXXXXXXXXXXX where X is an uppercase hexadecimal character.
type MovementID struct {
	value string
}

// NewMovementID generates a new random MovementID.
func NewMovementID() MovementID {
	return MovementID{value: ids.NewMovementID()}
}

// MovementIDFromString validates and creates a MovementID from a string.
func MovementIDFromString(s string) (MovementID, error) {
	s = strings.TrimSpace(s)
	if !ids.IsMovementID(s) {
		return MovementID{}, fmt.Errorf("%w: movement id %q, expected MOV-XXXXXXXXXXXX", ErrInvalidValue, s)
	}
	return MovementID{value: s}, nil
}

// String returns the string representation of the movement id.
func (m MovementID) String() string { return m.value }

// IsZero returns true if the movement id is empty.
func (m MovementID) IsZero() bool { return m.value == "" }

// CustomerID is an immutable value object referencing a customer in the
// external customer directory. Format: CLI-XXXXXXXX.
type CustomerID struct {
	value string
}

// CustomerIDFromString validates and creates a CustomerID from a string.
func CustomerIDFromString(s string) (CustomerID, error) {
	s = strings.TrimSpace(s)
	if !ids.IsCustomerID(s) {
		return CustomerID{}, fmt.Errorf("%w: customer id %q, expected CLI-XXXXXXXX", ErrInvalidValue, s)
	}
	return CustomerID{value: s}, nil
}

// String returns the string representation of the customer id.
func (c CustomerID) String() string { return c.value }

// IsZero returns true if the customer id is empty.
func (c CustomerID) IsZero() bool { return c.value == "" }
