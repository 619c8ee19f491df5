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

// UpdateAccount changes the mutable account fields. Balances are never
// touched here; they move only through posted movements.
type UpdateAccount struct {
	accounts  port.AccountRepository
	publisher port.EventPublisher
	topic     string
	logger    *slog.Logger
}

// NewUpdateAccount creates the use case. An empty topic falls back to
// TopicAccountEvents.
func NewUpdateAccount(accounts port.AccountRepository, publisher port.EventPublisher, topic string, logger *slog.Logger) *UpdateAccount {
	if topic == "" {
		topic = TopicAccountEvents
	}
	return &UpdateAccount{
		accounts:  accounts,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// Execute applies the requested field changes and persists the account.
func (uc *UpdateAccount) Execute(ctx context.Context, req dto.UpdateAccountRequest) (dto.AccountResponse, error) {
	number, err := valueobject.AccountNumberFromString(req.AccountNumber)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("invalid account number: %w", err)
	}

	account, err := uc.accounts.FindByNumber(ctx, number)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("find account %s: %w", number, err)
	}

	accountType := account.AccountType()
	if req.AccountType != nil {
		accountType, err = valueobject.NewAccountType(*req.AccountType)
		if err != nil {
			return dto.AccountResponse{}, fmt.Errorf("invalid account type: %w", err)
		}
	}

	active := account.Active()
	if req.Active != nil {
		active = *req.Active
	}

	updated := account.Update(accountType, active, time.Now().UTC())

	if err := uc.accounts.Update(ctx, updated); err != nil {
		return dto.AccountResponse{}, fmt.Errorf("save account %s: %w", number, err)
	}

	uc.publisher.Publish(ctx, uc.topic, updated.DomainEvents()...)

	uc.logger.Info("account updated",
		"account_number", number.String(),
		"account_type", accountType.String(),
		"active", active,
	)

	return toAccountResponse(updated), nil
}
