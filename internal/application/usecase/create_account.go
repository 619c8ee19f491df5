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

// TopicAccountEvents is the default topic for account lifecycle events,
// used when no topic is configured.
const TopicAccountEvents = "cuenta-ledger.accounts"

// CreateAccount opens a new account for an existing, active customer.
type CreateAccount struct {
	accounts  port.AccountRepository
	identity  port.IdentityClient
	publisher port.EventPublisher
	topic     string
	logger    *slog.Logger
}

// NewCreateAccount creates the use case. topic is where lifecycle events
// publish; empty falls back to TopicAccountEvents.
func NewCreateAccount(
	accounts port.AccountRepository,
	identity port.IdentityClient,
	publisher port.EventPublisher,
	topic string,
	logger *slog.Logger,
) *CreateAccount {
	if topic == "" {
		topic = TopicAccountEvents
	}
	return &CreateAccount{
		accounts:  accounts,
		identity:  identity,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// Execute validates the owner against the identity service, creates the
// account, persists it, and publishes the creation event best-effort.
func (uc *CreateAccount) Execute(ctx context.Context, req dto.CreateAccountRequest) (dto.AccountResponse, error) {
	customerID, err := valueobject.CustomerIDFromString(req.CustomerID)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("invalid customer id: %w", err)
	}

	accountType, err := valueobject.NewAccountType(req.AccountType)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("invalid account type: %w", err)
	}

	customer, err := uc.identity.ResolveCustomer(ctx, customerID)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("resolve customer %s: %w", customerID, err)
	}
	if !customer.Exists || !customer.Active {
		return dto.AccountResponse{}, fmt.Errorf("customer %s: %w", customerID, model.ErrUnknownOrInactiveCustomer)
	}

	account, err := model.NewAccount(customerID, accountType, req.OpeningBalance, time.Now().UTC())
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("create account: %w", err)
	}

	if err := uc.accounts.Create(ctx, account); err != nil {
		return dto.AccountResponse{}, fmt.Errorf("save account: %w", err)
	}

	uc.publisher.Publish(ctx, uc.topic, account.DomainEvents()...)

	uc.logger.Info("account created",
		"account_number", account.Number().String(),
		"customer_id", customerID.String(),
		"account_type", accountType.String(),
	)

	return toAccountResponse(account), nil
}
