package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// ListMovements returns an account's movements in a date range, oldest
// first, with pagination.
type ListMovements struct {
	accounts  port.AccountRepository
	movements port.MovementRepository
	logger    *slog.Logger
}

// NewListMovements creates the use case.
func NewListMovements(accounts port.AccountRepository, movements port.MovementRepository, logger *slog.Logger) *ListMovements {
	return &ListMovements{accounts: accounts, movements: movements, logger: logger}
}

// Execute lists movements with occurredAt in [from, to). A zero from means
// the beginning of time; a zero to means no upper bound.
func (uc *ListMovements) Execute(ctx context.Context, accountNumber string, from, to time.Time, limit, offset int) (dto.MovementListResponse, error) {
	number, err := valueobject.AccountNumberFromString(accountNumber)
	if err != nil {
		return dto.MovementListResponse{}, fmt.Errorf("invalid account number: %w", err)
	}

	if _, err := uc.accounts.FindByNumber(ctx, number); err != nil {
		return dto.MovementListResponse{}, fmt.Errorf("find account %s: %w", number, err)
	}

	if to.IsZero() {
		to = time.Now().UTC().AddDate(0, 0, 1)
	}
	if !from.IsZero() && from.After(to) {
		return dto.MovementListResponse{}, fmt.Errorf("%w: from %s is after to %s",
			model.ErrIllegalDateRange, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	movements, total, err := uc.movements.ListByAccount(ctx, number, from, to, limit, offset)
	if err != nil {
		return dto.MovementListResponse{}, fmt.Errorf("list movements for %s: %w", number, err)
	}

	resp := dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Total:     total,
	}
	for _, movement := range movements {
		resp.Movements = append(resp.Movements, toMovementResponse(movement))
	}
	return resp, nil
}
