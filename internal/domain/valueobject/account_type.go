package valueobject

import "fmt"

// AccountType is the classification of an account.
type AccountType struct {
	value string
}

// Valid account types.
var (
	AccountTypeSavings  = AccountType{value: "SAVINGS"}
	AccountTypeChecking = AccountType{value: "CHECKING"}
)

// NewAccountType validates and creates an AccountType from a string.
func NewAccountType(s string) (AccountType, error) {
	switch s {
	case AccountTypeSavings.value:
		return AccountTypeSavings, nil
	case AccountTypeChecking.value:
		return AccountTypeChecking, nil
	default:
		return AccountType{}, fmt.Errorf("%w: account type %q must be SAVINGS or CHECKING", ErrInvalidValue, s)
	}
}

// String returns the string representation of the account type.
func (t AccountType) String() string { return t.value }

// IsZero returns true if the account type is unset.
func (t AccountType) IsZero() bool { return t.value == "" }
