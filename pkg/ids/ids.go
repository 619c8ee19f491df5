// Package ids generates and validates the prefixed identifiers used across
// the banking platform. The formats (CTA-, MOV-, CLI- followed by uppercase
// hexadecimal) are externally visible and shared with the customer directory,
// so they must not change.
package ids

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// AccountNumberPrefix prefixes account numbers (CTA-XXXXXXXX).
	AccountNumberPrefix = "CTA"
	// MovementIDPrefix prefixes movement identifiers (MOV-XXXXXXXXXXXX).
	MovementIDPrefix = "MOV"
	// CustomerIDPrefix prefixes customer identifiers (CLI-XXXXXXXX).
	CustomerIDPrefix = "CLI"

	accountNumberHexLen = 8
	movementIDHexLen    = 12
	customerIDHexLen    = 8
)

var (
	accountNumberRe = regexp.MustCompile(`^CTA-[0-9A-F]{8}$`)
	movementIDRe    = regexp.MustCompile(`^MOV-[0-9A-F]{12}$`)
	customerIDRe    = regexp.MustCompile(`^CLI-[0-9A-F]{8}$`)
)

// randomHex returns length uppercase hexadecimal characters derived from a
// random UUID, matching the identifier scheme of the existing services.
func randomHex(length int) string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:]))[:length]
}

// NewAccountNumber generates a new account number.
func NewAccountNumber() string {
	return AccountNumberPrefix + "-" + randomHex(accountNumberHexLen)
}

// NewMovementID generates a new movement identifier.
func NewMovementID() string {
	return MovementIDPrefix + "-" + randomHex(movementIDHexLen)
}

// NewCustomerID generates a new customer identifier.
func NewCustomerID() string {
	return CustomerIDPrefix + "-" + randomHex(customerIDHexLen)
}

// IsAccountNumber reports whether s is a well-formed account number.
func IsAccountNumber(s string) bool { return accountNumberRe.MatchString(s) }

// IsMovementID reports whether s is a well-formed movement identifier.
func IsMovementID(s string) bool { return movementIDRe.MatchString(s) }

// IsCustomerID reports whether s is a well-formed customer identifier.
func IsCustomerID(s string) bool { return customerIDRe.MatchString(s) }
