package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/service"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

func newTestAccount(t *testing.T, openingBalance decimal.Decimal) model.Account {
	t.Helper()

	customerID, err := valueobject.CustomerIDFromString("CLI-0A1B2C3D")
	require.NoError(t, err)

	account, err := model.NewAccount(customerID, valueobject.AccountTypeSavings, openingBalance, time.Now().UTC())
	require.NoError(t, err)
	return account
}

func TestApplyMovement_Deposit(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(1000))
	now := time.Now().UTC()

	movement, updated, err := service.ApplyMovement(account, valueobject.MovementKindDeposit, decimal.NewFromInt(500), "payroll", now)

	require.NoError(t, err)
	assert.True(t, movement.Value().Equal(decimal.NewFromInt(500)), "deposit value must stay positive")
	assert.True(t, movement.BalanceBefore().Equal(decimal.NewFromInt(1000)))
	assert.True(t, movement.BalanceAfter().Equal(decimal.NewFromInt(1500)))
	assert.True(t, updated.CurrentBalance().Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, account.Revision()+1, updated.Revision())
	assert.Equal(t, "payroll", movement.Description())

	// The input account is untouched.
	assert.True(t, account.CurrentBalance().Equal(decimal.NewFromInt(1000)))
}

func TestApplyMovement_Withdrawal(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(1000))
	now := time.Now().UTC()

	movement, updated, err := service.ApplyMovement(account, valueobject.MovementKindWithdrawal, decimal.NewFromInt(300), "", now)

	require.NoError(t, err)
	assert.True(t, movement.Value().Equal(decimal.NewFromInt(-300)), "withdrawal value must be stored negative")
	assert.True(t, movement.BalanceBefore().Equal(decimal.NewFromInt(1000)))
	assert.True(t, movement.BalanceAfter().Equal(decimal.NewFromInt(700)))
	assert.True(t, updated.CurrentBalance().Equal(decimal.NewFromInt(700)))
}

func TestApplyMovement_DepositThenWithdrawal(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(1000))
	now := time.Now().UTC()

	_, account, err := service.ApplyMovement(account, valueobject.MovementKindDeposit, decimal.NewFromInt(500), "", now)
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance().Equal(decimal.NewFromInt(1500)))

	_, account, err = service.ApplyMovement(account, valueobject.MovementKindWithdrawal, decimal.NewFromInt(300), "", now)
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance().Equal(decimal.NewFromInt(1200)))
}

func TestApplyMovement_WithdrawalExactBalance(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(250))

	movement, updated, err := service.ApplyMovement(account, valueobject.MovementKindWithdrawal, decimal.NewFromInt(250), "", time.Now().UTC())

	require.NoError(t, err)
	assert.True(t, movement.BalanceAfter().IsZero())
	assert.True(t, updated.CurrentBalance().IsZero())
}

func TestApplyMovement_InsufficientFunds(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(100))

	_, _, err := service.ApplyMovement(account, valueobject.MovementKindWithdrawal, decimal.NewFromFloat(150.50), "", time.Now().UTC())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	assert.Equal(t, "insufficient funds: balance 100.00, requested 150.50", err.Error())

	var detail *model.InsufficientFundsError
	require.True(t, errors.As(err, &detail))
	assert.True(t, detail.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, detail.Requested.Equal(decimal.NewFromFloat(150.50)))
}

func TestApplyMovement_InactiveAccount(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(1000))
	inactive, err := account.Deactivate(time.Now().UTC())
	require.NoError(t, err)

	_, _, err = service.ApplyMovement(inactive, valueobject.MovementKindDeposit, decimal.NewFromInt(10), "", time.Now().UTC())

	assert.ErrorIs(t, err, model.ErrInactiveAccount)
}

func TestApplyMovement_NonPositiveAmount(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(1000))

	for name, amount := range map[string]decimal.Decimal{
		"zero":     decimal.Zero,
		"negative": decimal.NewFromInt(-5),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := service.ApplyMovement(account, valueobject.MovementKindDeposit, amount, "", time.Now().UTC())
			assert.ErrorContains(t, err, "movement amount must be greater than zero")
		})
	}
}

func TestApplyMovement_UnknownKind(t *testing.T) {
	account := newTestAccount(t, decimal.NewFromInt(1000))

	_, _, err := service.ApplyMovement(account, valueobject.MovementKind{}, decimal.NewFromInt(10), "", time.Now().UTC())

	assert.ErrorIs(t, err, model.ErrUnsupportedMovementKind)
}
