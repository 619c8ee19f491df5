package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// DeactivateAccount soft-deletes an account. The account and its movement
// history remain readable; only new movements are refused.
type DeactivateAccount struct {
	accounts  port.AccountRepository
	publisher port.EventPublisher
	topic     string
	logger    *slog.Logger
}

// NewDeactivateAccount creates the use case. An empty topic falls back to
// TopicAccountEvents.
func NewDeactivateAccount(accounts port.AccountRepository, publisher port.EventPublisher, topic string, logger *slog.Logger) *DeactivateAccount {
	if topic == "" {
		topic = TopicAccountEvents
	}
	return &DeactivateAccount{
		accounts:  accounts,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// Execute marks the account inactive and persists it.
func (uc *DeactivateAccount) Execute(ctx context.Context, accountNumber string) (dto.AccountResponse, error) {
	number, err := valueobject.AccountNumberFromString(accountNumber)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("invalid account number: %w", err)
	}

	account, err := uc.accounts.FindByNumber(ctx, number)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("find account %s: %w", number, err)
	}

	updated, err := account.Deactivate(time.Now().UTC())
	if err != nil {
		return dto.AccountResponse{}, err
	}

	if err := uc.accounts.Update(ctx, updated); err != nil {
		return dto.AccountResponse{}, fmt.Errorf("save account %s: %w", number, err)
	}

	uc.publisher.Publish(ctx, uc.topic, updated.DomainEvents()...)

	uc.logger.Info("account deactivated", "account_number", number.String())

	return toAccountResponse(updated), nil
}
