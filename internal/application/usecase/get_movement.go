package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// GetMovement retrieves one movement by its identifier.
type GetMovement struct {
	movements port.MovementRepository
	logger    *slog.Logger
}

// NewGetMovement creates the use case.
func NewGetMovement(movements port.MovementRepository, logger *slog.Logger) *GetMovement {
	return &GetMovement{movements: movements, logger: logger}
}

// Execute looks up the movement.
func (uc *GetMovement) Execute(ctx context.Context, movementID string) (dto.MovementResponse, error) {
	id, err := valueobject.MovementIDFromString(movementID)
	if err != nil {
		return dto.MovementResponse{}, fmt.Errorf("invalid movement id: %w", err)
	}

	movement, err := uc.movements.FindByID(ctx, id)
	if err != nil {
		return dto.MovementResponse{}, fmt.Errorf("find movement %s: %w", id, err)
	}

	return toMovementResponse(movement), nil
}
