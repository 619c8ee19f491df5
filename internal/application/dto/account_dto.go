// Package dto defines the request and response shapes of the application
// layer.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest asks for a new account for an existing customer.
type CreateAccountRequest struct {
	CustomerID     string
	AccountType    string
	OpeningBalance decimal.Decimal
}

// UpdateAccountRequest mutates the permitted mutable account fields. Nil
// pointers leave the field unchanged.
type UpdateAccountRequest struct {
	AccountNumber string
	AccountType   *string
	Active        *bool
}

// AccountResponse is the external view of an account.
type AccountResponse struct {
	AccountNumber  string          `json:"numeroCuenta"`
	AccountType    string          `json:"tipoCuenta"`
	OpeningBalance decimal.Decimal `json:"saldoInicial"`
	CurrentBalance decimal.Decimal `json:"saldoActual"`
	Active         bool            `json:"estado"`
	CustomerID     string          `json:"clienteId"`
	CreatedAt      time.Time       `json:"fechaCreacion"`
	UpdatedAt      time.Time       `json:"fechaActualizacion"`
}

// AccountListResponse is a page of accounts plus the total count.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"cuentas"`
	Total    int               `json:"total"`
}
