package usecase

import (
	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
)

func toAccountResponse(account model.Account) dto.AccountResponse {
	return dto.AccountResponse{
		AccountNumber:  account.Number().String(),
		AccountType:    account.AccountType().String(),
		OpeningBalance: account.OpeningBalance(),
		CurrentBalance: account.CurrentBalance(),
		Active:         account.Active(),
		CustomerID:     account.CustomerID().String(),
		CreatedAt:      account.CreatedAt(),
		UpdatedAt:      account.UpdatedAt(),
	}
}

func toMovementResponse(movement model.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		MovementID:    movement.ID().String(),
		AccountNumber: movement.AccountNumber().String(),
		Kind:          movement.Kind().String(),
		Value:         movement.Value(),
		BalanceBefore: movement.BalanceBefore(),
		BalanceAfter:  movement.BalanceAfter(),
		OccurredAt:    movement.OccurredAt(),
		Description:   movement.Description(),
	}
}
