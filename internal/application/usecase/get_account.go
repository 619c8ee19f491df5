package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// GetAccount retrieves one account by its number.
type GetAccount struct {
	accounts port.AccountRepository
	logger   *slog.Logger
}

// NewGetAccount creates the use case.
func NewGetAccount(accounts port.AccountRepository, logger *slog.Logger) *GetAccount {
	return &GetAccount{accounts: accounts, logger: logger}
}

// Execute looks up the account.
func (uc *GetAccount) Execute(ctx context.Context, accountNumber string) (dto.AccountResponse, error) {
	number, err := valueobject.AccountNumberFromString(accountNumber)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("invalid account number: %w", err)
	}

	account, err := uc.accounts.FindByNumber(ctx, number)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("find account %s: %w", number, err)
	}

	return toAccountResponse(account), nil
}
