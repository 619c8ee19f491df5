package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancacore/cuenta-ledger/internal/domain/event"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	"github.com/bancacore/cuenta-ledger/pkg/ids"
)

func testCustomerID(t *testing.T) valueobject.CustomerID {
	t.Helper()
	id, err := valueobject.CustomerIDFromString("CLI-0A1B2C3D")
	require.NoError(t, err)
	return id
}

func TestNewAccount(t *testing.T) {
	now := time.Now().UTC()

	account, err := model.NewAccount(testCustomerID(t), valueobject.AccountTypeSavings, decimal.NewFromInt(1000), now)

	require.NoError(t, err)
	assert.True(t, ids.IsAccountNumber(account.Number().String()))
	assert.True(t, account.Active())
	assert.True(t, account.OpeningBalance().Equal(decimal.NewFromInt(1000)))
	assert.True(t, account.CurrentBalance().Equal(decimal.NewFromInt(1000)), "current balance seeds from opening balance")
	assert.Equal(t, int64(1), account.Revision())

	evts := account.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.TypeAccountCreated, evts[0].EventType())
	assert.Equal(t, account.Number().String(), evts[0].AggregateID())
}

func TestNewAccount_ZeroOpeningBalance(t *testing.T) {
	account, err := model.NewAccount(testCustomerID(t), valueobject.AccountTypeChecking, decimal.Zero, time.Now().UTC())

	require.NoError(t, err)
	assert.True(t, account.CurrentBalance().IsZero())
}

func TestNewAccount_NegativeOpeningBalance(t *testing.T) {
	_, err := model.NewAccount(testCustomerID(t), valueobject.AccountTypeSavings, decimal.NewFromInt(-1), time.Now().UTC())

	assert.ErrorContains(t, err, "opening balance must not be negative")
}

func TestAccount_Deactivate(t *testing.T) {
	account, err := model.NewAccount(testCustomerID(t), valueobject.AccountTypeSavings, decimal.NewFromInt(100), time.Now().UTC())
	require.NoError(t, err)
	account = account.ClearDomainEvents()

	updated, err := account.Deactivate(time.Now().UTC())
	require.NoError(t, err)

	assert.False(t, updated.Active())
	assert.Equal(t, account.Revision()+1, updated.Revision())
	assert.True(t, account.Active(), "original stays untouched")

	evts := updated.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.TypeAccountDeactivated, evts[0].EventType())

	_, err = updated.Deactivate(time.Now().UTC())
	assert.ErrorIs(t, err, model.ErrInactiveAccount)
}

func TestAccount_Update(t *testing.T) {
	account, err := model.NewAccount(testCustomerID(t), valueobject.AccountTypeSavings, decimal.NewFromInt(100), time.Now().UTC())
	require.NoError(t, err)
	account = account.ClearDomainEvents()

	updated := account.Update(valueobject.AccountTypeChecking, false, time.Now().UTC())

	assert.Equal(t, valueobject.AccountTypeChecking, updated.AccountType())
	assert.False(t, updated.Active())
	assert.Equal(t, account.Revision()+1, updated.Revision())
	assert.True(t, updated.CurrentBalance().Equal(account.CurrentBalance()), "update never touches the balance")

	evts := updated.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.TypeAccountUpdated, evts[0].EventType())
}

func TestAccount_WithBalance(t *testing.T) {
	account, err := model.NewAccount(testCustomerID(t), valueobject.AccountTypeSavings, decimal.NewFromInt(100), time.Now().UTC())
	require.NoError(t, err)

	updated := account.WithBalance(decimal.NewFromInt(250), time.Now().UTC())

	assert.True(t, updated.CurrentBalance().Equal(decimal.NewFromInt(250)))
	assert.True(t, updated.OpeningBalance().Equal(decimal.NewFromInt(100)), "opening balance is frozen at creation")
	assert.Equal(t, account.Revision()+1, updated.Revision())
	assert.True(t, account.CurrentBalance().Equal(decimal.NewFromInt(100)))
}

func TestReconstructAccount(t *testing.T) {
	number, err := valueobject.AccountNumberFromString("CTA-00FF00FF")
	require.NoError(t, err)
	now := time.Now().UTC()

	account := model.ReconstructAccount(
		number, valueobject.AccountTypeChecking,
		decimal.NewFromInt(500), decimal.NewFromInt(720),
		true, testCustomerID(t), 7, now, now,
	)

	assert.Equal(t, number, account.Number())
	assert.True(t, account.CurrentBalance().Equal(decimal.NewFromInt(720)))
	assert.Equal(t, int64(7), account.Revision())
	assert.Empty(t, account.DomainEvents(), "reconstruction emits no events")
}

func TestMovement_DescriptionTooLong(t *testing.T) {
	number, err := valueobject.AccountNumberFromString("CTA-00FF00FF")
	require.NoError(t, err)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}

	_, err = model.NewMovement(
		number, valueobject.MovementKindDeposit,
		decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10),
		string(long), time.Now().UTC(),
	)

	assert.ErrorContains(t, err, "description exceeds 500 characters")
}
