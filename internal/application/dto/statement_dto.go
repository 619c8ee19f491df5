package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the aggregated account-state report over a date range. The
// Spanish JSON field names are the wire contract of the existing report
// consumers and must be preserved.
type Statement struct {
	CustomerID     string             `json:"clienteId"`
	CustomerName   string             `json:"nombreCliente"`
	Identification string             `json:"identificacion"`
	From           time.Time          `json:"fechaInicio"`
	To             time.Time          `json:"fechaFin"`
	GeneratedAt    time.Time          `json:"fechaGeneracion"`
	Accounts       []StatementAccount `json:"cuentas"`
	TotalBalance   decimal.Decimal    `json:"saldoTotalGeneral"`
	TotalAccounts  int                `json:"totalCuentas"`
}

// StatementAccount details one account inside a statement. Balances echo
// the stored account state; they are not recomputed from the filtered
// movement window.
type StatementAccount struct {
	AccountNumber    string              `json:"numeroCuenta"`
	AccountType      string              `json:"tipoCuenta"`
	OpeningBalance   decimal.Decimal     `json:"saldoInicial"`
	CurrentBalance   decimal.Decimal     `json:"saldoActual"`
	Active           bool                `json:"estado"`
	TotalDeposits    decimal.Decimal     `json:"totalDepositos"`
	TotalWithdrawals decimal.Decimal     `json:"totalRetiros"`
	MovementCount    int                 `json:"totalMovimientos"`
	Movements        []StatementMovement `json:"movimientos"`
}

// StatementMovement is one movement line in a statement.
type StatementMovement struct {
	OccurredAt time.Time       `json:"fecha"`
	Kind       string          `json:"tipoMovimiento"`
	Value      decimal.Decimal `json:"valor"`
	Balance    decimal.Decimal `json:"saldo"`
}
