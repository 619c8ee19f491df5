package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListAccounts returns a customer's accounts with pagination.
type ListAccounts struct {
	accounts port.AccountRepository
	logger   *slog.Logger
}

// NewListAccounts creates the use case.
func NewListAccounts(accounts port.AccountRepository, logger *slog.Logger) *ListAccounts {
	return &ListAccounts{accounts: accounts, logger: logger}
}

// Execute lists the customer's accounts. With activeOnly set, deactivated
// accounts are excluded.
func (uc *ListAccounts) Execute(ctx context.Context, customerID string, activeOnly bool, limit, offset int) (dto.AccountListResponse, error) {
	id, err := valueobject.CustomerIDFromString(customerID)
	if err != nil {
		return dto.AccountListResponse{}, fmt.Errorf("invalid customer id: %w", err)
	}

	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	accounts, total, err := uc.accounts.ListByCustomer(ctx, id, activeOnly, limit, offset)
	if err != nil {
		return dto.AccountListResponse{}, fmt.Errorf("list accounts for %s: %w", id, err)
	}

	resp := dto.AccountListResponse{
		Accounts: make([]dto.AccountResponse, 0, len(accounts)),
		Total:    total,
	}
	for _, account := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(account))
	}
	return resp, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
