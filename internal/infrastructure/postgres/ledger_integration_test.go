package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/service"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	infraPostgres "github.com/bancacore/cuenta-ledger/internal/infrastructure/postgres"
	"github.com/bancacore/cuenta-ledger/pkg/testutil"
)

func newIntegrationAccount(t *testing.T, balance decimal.Decimal) model.Account {
	t.Helper()
	customerID, err := valueobject.CustomerIDFromString("CLI-0A1B2C3D")
	require.NoError(t, err)
	account, err := model.NewAccount(customerID, valueobject.AccountTypeSavings, balance, time.Now().UTC())
	require.NoError(t, err)
	return account.ClearDomainEvents()
}

func TestLedgerRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container := testutil.NewPostgresContainer(ctx, t)
	defer container.Cleanup(t)
	container.ApplyMigrations(t, "migrations")

	accounts := infraPostgres.NewAccountRepository(container.Pool)
	movements := infraPostgres.NewMovementRepository(container.Pool)

	t.Run("create and find account", func(t *testing.T) {
		account := newIntegrationAccount(t, decimal.NewFromInt(1000))
		require.NoError(t, accounts.Create(ctx, account))

		found, err := accounts.FindByNumber(ctx, account.Number())
		require.NoError(t, err)
		assert.True(t, found.CurrentBalance().Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, int64(1), found.Revision())
	})

	t.Run("find missing account", func(t *testing.T) {
		number, err := valueobject.AccountNumberFromString("CTA-DEADBEEF")
		require.NoError(t, err)

		_, err = accounts.FindByNumber(ctx, number)
		assert.ErrorIs(t, err, model.ErrAccountNotFound)
	})

	t.Run("append movement atomically", func(t *testing.T) {
		account := newIntegrationAccount(t, decimal.NewFromInt(1000))
		require.NoError(t, accounts.Create(ctx, account))

		movement, updated, err := service.ApplyMovement(account, valueobject.MovementKindWithdrawal, decimal.NewFromInt(300), "cajero", time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, movements.AppendMovement(ctx, updated, movement))

		found, err := accounts.FindByNumber(ctx, account.Number())
		require.NoError(t, err)
		assert.True(t, found.CurrentBalance().Equal(decimal.NewFromInt(700)))
		assert.Equal(t, int64(2), found.Revision())

		stored, err := movements.FindByID(ctx, movement.ID())
		require.NoError(t, err)
		assert.True(t, stored.Value().Equal(decimal.NewFromInt(-300)))
		assert.Equal(t, "cajero", stored.Description())
	})

	t.Run("stale revision is rejected and rolls back", func(t *testing.T) {
		account := newIntegrationAccount(t, decimal.NewFromInt(1000))
		require.NoError(t, accounts.Create(ctx, account))

		// Both writers computed from the same snapshot.
		m1, u1, err := service.ApplyMovement(account, valueobject.MovementKindWithdrawal, decimal.NewFromInt(600), "", time.Now().UTC())
		require.NoError(t, err)
		m2, u2, err := service.ApplyMovement(account, valueobject.MovementKindWithdrawal, decimal.NewFromInt(600), "", time.Now().UTC())
		require.NoError(t, err)

		require.NoError(t, movements.AppendMovement(ctx, u1, m1))
		err = movements.AppendMovement(ctx, u2, m2)
		assert.ErrorIs(t, err, model.ErrConcurrentModification)

		found, err := accounts.FindByNumber(ctx, account.Number())
		require.NoError(t, err)
		assert.True(t, found.CurrentBalance().Equal(decimal.NewFromInt(400)), "exactly one withdrawal applied")

		_, err = movements.FindByID(ctx, m2.ID())
		assert.ErrorIs(t, err, model.ErrMovementNotFound, "losing movement left no row")
	})

	t.Run("update missing account", func(t *testing.T) {
		ghost := newIntegrationAccount(t, decimal.NewFromInt(10)).WithBalance(decimal.NewFromInt(20), time.Now().UTC())
		err := accounts.Update(ctx, ghost)
		assert.ErrorIs(t, err, model.ErrAccountNotFound)
	})

	t.Run("list by customer with pagination", func(t *testing.T) {
		customerID, err := valueobject.CustomerIDFromString("CLI-AAAA1111")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			account, err := model.NewAccount(customerID, valueobject.AccountTypeChecking, decimal.NewFromInt(int64(i)*100), time.Now().UTC())
			require.NoError(t, err)
			require.NoError(t, accounts.Create(ctx, account.ClearDomainEvents()))
		}

		page, total, err := accounts.ListByCustomer(ctx, customerID, true, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, page, 2)
	})

	t.Run("list movements in window", func(t *testing.T) {
		account := newIntegrationAccount(t, decimal.NewFromInt(500))
		require.NoError(t, accounts.Create(ctx, account))

		now := time.Now().UTC()
		movement, updated, err := service.ApplyMovement(account, valueobject.MovementKindDeposit, decimal.NewFromInt(50), "", now)
		require.NoError(t, err)
		require.NoError(t, movements.AppendMovement(ctx, updated, movement))

		inWindow, total, err := movements.ListByAccount(ctx, account.Number(), now.Add(-time.Minute), now.Add(time.Minute), 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, inWindow, 1)

		before, total, err := movements.ListByAccount(ctx, account.Number(), now.Add(-2*time.Hour), now.Add(-time.Hour), 10, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, before)
	})
}
