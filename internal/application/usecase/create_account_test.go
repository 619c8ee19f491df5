package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/application/usecase"
	"github.com/bancacore/cuenta-ledger/internal/domain/event"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	"github.com/bancacore/cuenta-ledger/pkg/ids"
)

const testCustomerID = "CLI-0A1B2C3D"

func activeCustomerDirectory() *mockIdentityClient {
	return &mockIdentityClient{customers: map[string]port.Customer{
		testCustomerID: {
			ID:             testCustomerID,
			Name:           "Marianela Montalvo",
			Identification: "0987654321",
			Exists:         true,
			Active:         true,
		},
	}}
}

func TestCreateAccount_Success(t *testing.T) {
	repo := newMockAccountRepo()
	publisher := &mockEventPublisher{}
	uc := usecase.NewCreateAccount(repo, activeCustomerDirectory(), publisher, "", testLogger())

	resp, err := uc.Execute(context.Background(), dto.CreateAccountRequest{
		CustomerID:     testCustomerID,
		AccountType:    "SAVINGS",
		OpeningBalance: decimal.NewFromInt(1000),
	})

	require.NoError(t, err)
	assert.True(t, ids.IsAccountNumber(resp.AccountNumber))
	assert.Equal(t, "SAVINGS", resp.AccountType)
	assert.True(t, resp.CurrentBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.Active)
	assert.Equal(t, testCustomerID, resp.CustomerID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, event.TypeAccountCreated, publisher.events[0].EventType())
	assert.Equal(t, usecase.TopicAccountEvents, publisher.topics[0])
}

func TestCreateAccount_ConfiguredTopic(t *testing.T) {
	publisher := &mockEventPublisher{}
	uc := usecase.NewCreateAccount(newMockAccountRepo(), activeCustomerDirectory(), publisher, "banca.staging.accounts", testLogger())

	_, err := uc.Execute(context.Background(), dto.CreateAccountRequest{
		CustomerID:     testCustomerID,
		AccountType:    "SAVINGS",
		OpeningBalance: decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	require.Len(t, publisher.topics, 1)
	assert.Equal(t, "banca.staging.accounts", publisher.topics[0])
}

func TestCreateAccount_UnknownCustomer(t *testing.T) {
	repo := newMockAccountRepo()
	uc := usecase.NewCreateAccount(repo, &mockIdentityClient{}, &mockEventPublisher{}, "", testLogger())

	_, err := uc.Execute(context.Background(), dto.CreateAccountRequest{
		CustomerID:     "CLI-FFFFFFFF",
		AccountType:    "SAVINGS",
		OpeningBalance: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, model.ErrUnknownOrInactiveCustomer)
	assert.Empty(t, repo.accounts)
}

func TestCreateAccount_InactiveCustomer(t *testing.T) {
	directory := &mockIdentityClient{customers: map[string]port.Customer{
		testCustomerID: {ID: testCustomerID, Exists: true, Active: false},
	}}
	uc := usecase.NewCreateAccount(newMockAccountRepo(), directory, &mockEventPublisher{}, "", testLogger())

	_, err := uc.Execute(context.Background(), dto.CreateAccountRequest{
		CustomerID:     testCustomerID,
		AccountType:    "CHECKING",
		OpeningBalance: decimal.Zero,
	})

	assert.ErrorIs(t, err, model.ErrUnknownOrInactiveCustomer)
}

func TestCreateAccount_IdentityUnavailable(t *testing.T) {
	directory := &mockIdentityClient{err: model.ErrDependencyUnavailable}
	publisher := &mockEventPublisher{}
	uc := usecase.NewCreateAccount(newMockAccountRepo(), directory, publisher, "", testLogger())

	_, err := uc.Execute(context.Background(), dto.CreateAccountRequest{
		CustomerID:     testCustomerID,
		AccountType:    "SAVINGS",
		OpeningBalance: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, model.ErrDependencyUnavailable)
	assert.Empty(t, publisher.events, "no event without a created account")
}

func TestCreateAccount_InvalidInput(t *testing.T) {
	uc := usecase.NewCreateAccount(newMockAccountRepo(), activeCustomerDirectory(), &mockEventPublisher{}, "", testLogger())

	tests := map[string]dto.CreateAccountRequest{
		"bad customer id": {
			CustomerID:     "not-an-id",
			AccountType:    "SAVINGS",
			OpeningBalance: decimal.NewFromInt(100),
		},
		"bad account type": {
			CustomerID:     testCustomerID,
			AccountType:    "PREMIUM",
			OpeningBalance: decimal.NewFromInt(100),
		},
		"negative opening balance": {
			CustomerID:     testCustomerID,
			AccountType:    "SAVINGS",
			OpeningBalance: decimal.NewFromInt(-10),
		},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, valueobject.ErrInvalidValue)
		})
	}
}
