package grpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bancacore/cuenta-ledger/internal/application/usecase"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	"github.com/bancacore/cuenta-ledger/pkg/events"
)

// --- Mock implementations ---

type mockAccountRepo struct {
	account model.Account
	findErr error
}

func (m *mockAccountRepo) Create(_ context.Context, _ model.Account) error { return nil }

func (m *mockAccountRepo) Update(_ context.Context, _ model.Account) error { return nil }

func (m *mockAccountRepo) FindByNumber(_ context.Context, number valueobject.AccountNumber) (model.Account, error) {
	if m.findErr != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", number, m.findErr)
	}
	return m.account, nil
}

func (m *mockAccountRepo) ListByCustomer(_ context.Context, _ valueobject.CustomerID, _ bool, _, _ int) ([]model.Account, int, error) {
	return nil, 0, nil
}

type mockLedgerStore struct {
	appendErr error
}

func (m *mockLedgerStore) AppendMovement(_ context.Context, _ model.Account, _ model.Movement) error {
	return m.appendErr
}

type mockIdentityClient struct {
	customer port.Customer
	err      error
}

func (m *mockIdentityClient) ResolveCustomer(_ context.Context, _ valueobject.CustomerID) (port.Customer, error) {
	return m.customer, m.err
}

type mockPublisher struct{}

func (mockPublisher) Publish(_ context.Context, _ string, _ ...events.DomainEvent) {}

// --- Fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAccount(t *testing.T, balance decimal.Decimal) model.Account {
	t.Helper()
	customerID, err := valueobject.CustomerIDFromString("CLI-0A1B2C3D")
	require.NoError(t, err)
	account, err := model.NewAccount(customerID, valueobject.AccountTypeSavings, balance, time.Now().UTC())
	require.NoError(t, err)
	return account.ClearDomainEvents()
}

func newHandler(accounts *mockAccountRepo, ledger *mockLedgerStore, directory *mockIdentityClient) *LedgerHandler {
	logger := testLogger()
	return NewLedgerHandler(
		usecase.NewCreateAccount(accounts, directory, mockPublisher{}, "", logger),
		usecase.NewGetAccount(accounts, logger),
		usecase.NewListAccounts(accounts, logger),
		usecase.NewUpdateAccount(accounts, mockPublisher{}, "", logger),
		usecase.NewDeactivateAccount(accounts, mockPublisher{}, "", logger),
		usecase.NewPostMovement(accounts, ledger, logger),
		usecase.NewGetMovement(nil, logger),
		usecase.NewListMovements(accounts, nil, logger),
		usecase.NewGenerateStatement(accounts, nil, directory, time.UTC, logger),
	)
}

func statusCode(t *testing.T, err error) codes.Code {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok, "expected a gRPC status error, got %v", err)
	return st.Code()
}

// --- Tests ---

func TestPostMovement_GRPCSuccess(t *testing.T) {
	account := testAccount(t, decimal.NewFromInt(1000))
	handler := newHandler(&mockAccountRepo{account: account}, &mockLedgerStore{}, &mockIdentityClient{})

	resp, err := handler.PostMovement(context.Background(), &PostMovementRequest{
		AccountNumber: account.Number().String(),
		Kind:          "WITHDRAWAL",
		Value:         "300",
	})

	require.NoError(t, err)
	assert.Equal(t, "-300.00", resp.Value)
	assert.Equal(t, "700.00", resp.BalanceAfter)
}

func TestPostMovement_GRPCErrorMapping(t *testing.T) {
	account := testAccount(t, decimal.NewFromInt(100))

	tests := map[string]struct {
		accounts *mockAccountRepo
		ledger   *mockLedgerStore
		req      *PostMovementRequest
		want     codes.Code
	}{
		"insufficient funds": {
			accounts: &mockAccountRepo{account: account},
			ledger:   &mockLedgerStore{},
			req:      &PostMovementRequest{AccountNumber: account.Number().String(), Kind: "WITHDRAWAL", Value: "500"},
			want:     codes.FailedPrecondition,
		},
		"account not found": {
			accounts: &mockAccountRepo{findErr: model.ErrAccountNotFound},
			ledger:   &mockLedgerStore{},
			req:      &PostMovementRequest{AccountNumber: "CTA-DEADBEEF", Kind: "DEPOSIT", Value: "10"},
			want:     codes.NotFound,
		},
		"concurrent modification": {
			accounts: &mockAccountRepo{account: account},
			ledger:   &mockLedgerStore{appendErr: model.ErrConcurrentModification},
			req:      &PostMovementRequest{AccountNumber: account.Number().String(), Kind: "DEPOSIT", Value: "10"},
			want:     codes.Aborted,
		},
		"bad amount": {
			accounts: &mockAccountRepo{account: account},
			ledger:   &mockLedgerStore{},
			req:      &PostMovementRequest{AccountNumber: account.Number().String(), Kind: "DEPOSIT", Value: "diez"},
			want:     codes.InvalidArgument,
		},
		"bad kind": {
			accounts: &mockAccountRepo{account: account},
			ledger:   &mockLedgerStore{},
			req:      &PostMovementRequest{AccountNumber: account.Number().String(), Kind: "TRANSFER", Value: "10"},
			want:     codes.InvalidArgument,
		},
		"zero amount": {
			accounts: &mockAccountRepo{account: account},
			ledger:   &mockLedgerStore{},
			req:      &PostMovementRequest{AccountNumber: account.Number().String(), Kind: "DEPOSIT", Value: "0"},
			want:     codes.InvalidArgument,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			handler := newHandler(tc.accounts, tc.ledger, &mockIdentityClient{})
			_, err := handler.PostMovement(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.want, statusCode(t, err))
		})
	}
}

func TestCreateAccount_GRPCErrorMapping(t *testing.T) {
	handler := newHandler(&mockAccountRepo{}, &mockLedgerStore{}, &mockIdentityClient{
		customer: port.Customer{Exists: false},
	})

	_, err := handler.CreateAccount(context.Background(), &CreateAccountRequest{
		CustomerID:     "CLI-0A1B2C3D",
		AccountType:    "SAVINGS",
		OpeningBalance: "100",
	})
	assert.Equal(t, codes.FailedPrecondition, statusCode(t, err))

	handler = newHandler(&mockAccountRepo{}, &mockLedgerStore{}, &mockIdentityClient{
		err: model.ErrDependencyUnavailable,
	})
	_, err = handler.CreateAccount(context.Background(), &CreateAccountRequest{
		CustomerID:     "CLI-0A1B2C3D",
		AccountType:    "SAVINGS",
		OpeningBalance: "100",
	})
	assert.Equal(t, codes.Unavailable, statusCode(t, err))

	_, err = handler.CreateAccount(context.Background(), &CreateAccountRequest{
		CustomerID:     "CLI-0A1B2C3D",
		AccountType:    "SAVINGS",
		OpeningBalance: "not-a-number",
	})
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
}

// Validation failures must classify through the error chain, not the
// message text, so wrapping them under another prefix keeps the mapping.
func TestMapError_WrappedValidation(t *testing.T) {
	_, err := valueobject.AccountNumberFromString("bogus")
	require.Error(t, err)

	wrapped := fmt.Errorf("load account: %w", err)
	assert.Equal(t, codes.InvalidArgument, statusCode(t, mapError(wrapped)))
}

func TestGetCustomerStatement_GRPCBadDates(t *testing.T) {
	handler := newHandler(&mockAccountRepo{}, &mockLedgerStore{}, &mockIdentityClient{
		customer: port.Customer{ID: "CLI-0A1B2C3D", Exists: true, Active: true},
	})

	_, err := handler.GetCustomerStatement(context.Background(), &GetCustomerStatementRequest{
		CustomerID: "CLI-0A1B2C3D",
		From:       "10-03-2026",
		To:         "2026-03-12",
	})
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))

	_, err = handler.GetCustomerStatement(context.Background(), &GetCustomerStatementRequest{
		CustomerID: "CLI-0A1B2C3D",
		From:       "2026-03-12",
		To:         "2026-03-10",
	})
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
}
