package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostMovementRequest asks to post a deposit or withdrawal. Value is the
// requested amount and is always positive; the sign of the stored movement
// value is decided by the movement strategy.
type PostMovementRequest struct {
	AccountNumber string
	Kind          string
	Value         decimal.Decimal
	Description   string
}

// MovementResponse is the external view of a posted movement.
type MovementResponse struct {
	MovementID    string          `json:"movimientoId"`
	AccountNumber string          `json:"numeroCuenta"`
	Kind          string          `json:"tipoMovimiento"`
	Value         decimal.Decimal `json:"valor"`
	BalanceBefore decimal.Decimal `json:"saldoAnterior"`
	BalanceAfter  decimal.Decimal `json:"saldoDespues"`
	OccurredAt    time.Time       `json:"fecha"`
	Description   string          `json:"descripcion,omitempty"`
}

// MovementListResponse is a page of movements plus the total count.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movimientos"`
	Total     int                `json:"total"`
}
