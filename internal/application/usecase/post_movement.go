package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/service"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// PostMovement applies a deposit or withdrawal to an account. The movement
// and the updated account balance are persisted as one atomic unit; a
// concurrent update to the same account surfaces as
// ErrConcurrentModification and leaves nothing written.
type PostMovement struct {
	accounts port.AccountRepository
	ledger   port.LedgerStore
	logger   *slog.Logger
}

// NewPostMovement creates the use case.
func NewPostMovement(accounts port.AccountRepository, ledger port.LedgerStore, logger *slog.Logger) *PostMovement {
	return &PostMovement{
		accounts: accounts,
		ledger:   ledger,
		logger:   logger,
	}
}

// Execute loads the account, applies the kind's movement rules, and appends
// the result to the ledger.
func (uc *PostMovement) Execute(ctx context.Context, req dto.PostMovementRequest) (dto.MovementResponse, error) {
	number, err := valueobject.AccountNumberFromString(req.AccountNumber)
	if err != nil {
		return dto.MovementResponse{}, fmt.Errorf("invalid account number: %w", err)
	}

	kind, err := valueobject.NewMovementKind(req.Kind)
	if err != nil {
		return dto.MovementResponse{}, fmt.Errorf("invalid movement kind: %w", err)
	}

	account, err := uc.accounts.FindByNumber(ctx, number)
	if err != nil {
		return dto.MovementResponse{}, fmt.Errorf("find account %s: %w", number, err)
	}

	movement, updated, err := service.ApplyMovement(account, kind, req.Value, req.Description, time.Now().UTC())
	if err != nil {
		return dto.MovementResponse{}, err
	}

	if err := uc.ledger.AppendMovement(ctx, updated, movement); err != nil {
		return dto.MovementResponse{}, fmt.Errorf("append movement: %w", err)
	}

	uc.logger.Info("movement posted",
		"movement_id", movement.ID().String(),
		"account_number", number.String(),
		"kind", kind.String(),
		"value", movement.Value().StringFixed(2),
		"balance_after", movement.BalanceAfter().StringFixed(2),
	)

	return toMovementResponse(movement), nil
}
