package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// statementMaxAccounts bounds the accounts loaded into one statement.
const statementMaxAccounts = 500

// GenerateStatement builds the account-state report for a date range.
// Statement dates are calendar dates interpreted in the configured
// reporting timezone; the movement window is [startOfDay(from),
// startOfDay(to + 1 day)) so both endpoint days are fully included.
type GenerateStatement struct {
	accounts  port.AccountRepository
	movements port.MovementRepository
	identity  port.IdentityClient
	location  *time.Location
	logger    *slog.Logger
}

// NewGenerateStatement creates the use case. location decides the day
// boundaries of the report; callers pass the configured reporting zone.
func NewGenerateStatement(
	accounts port.AccountRepository,
	movements port.MovementRepository,
	identity port.IdentityClient,
	location *time.Location,
	logger *slog.Logger,
) *GenerateStatement {
	if location == nil {
		location = time.UTC
	}
	return &GenerateStatement{
		accounts:  accounts,
		movements: movements,
		identity:  identity,
		location:  location,
		logger:    logger,
	}
}

// ExecuteForCustomer builds the statement over all of the customer's active
// accounts. An account with no movements in the window still appears, with
// zero totals and an empty movement list.
func (uc *GenerateStatement) ExecuteForCustomer(ctx context.Context, customerID string, from, to time.Time) (dto.Statement, error) {
	id, err := valueobject.CustomerIDFromString(customerID)
	if err != nil {
		return dto.Statement{}, fmt.Errorf("invalid customer id: %w", err)
	}

	windowFrom, windowTo, err := uc.window(from, to)
	if err != nil {
		return dto.Statement{}, err
	}

	customer, err := uc.identity.ResolveCustomer(ctx, id)
	if err != nil {
		return dto.Statement{}, fmt.Errorf("resolve customer %s: %w", id, err)
	}
	if !customer.Exists {
		return dto.Statement{}, fmt.Errorf("customer %s: %w", id, model.ErrUnknownOrInactiveCustomer)
	}

	accounts, _, err := uc.accounts.ListByCustomer(ctx, id, true, statementMaxAccounts, 0)
	if err != nil {
		return dto.Statement{}, fmt.Errorf("list accounts for %s: %w", id, err)
	}

	statement, err := uc.build(ctx, customer, accounts, windowFrom, windowTo)
	if err != nil {
		return dto.Statement{}, err
	}

	uc.logger.Info("statement generated",
		"customer_id", id.String(),
		"accounts", statement.TotalAccounts,
		"from", windowFrom.Format(time.RFC3339),
		"to", windowTo.Format(time.RFC3339),
	)

	return statement, nil
}

// ExecuteForAccount builds the statement for a single account, active or
// not. The header still carries the owning customer.
func (uc *GenerateStatement) ExecuteForAccount(ctx context.Context, accountNumber string, from, to time.Time) (dto.Statement, error) {
	number, err := valueobject.AccountNumberFromString(accountNumber)
	if err != nil {
		return dto.Statement{}, fmt.Errorf("invalid account number: %w", err)
	}

	windowFrom, windowTo, err := uc.window(from, to)
	if err != nil {
		return dto.Statement{}, err
	}

	account, err := uc.accounts.FindByNumber(ctx, number)
	if err != nil {
		return dto.Statement{}, fmt.Errorf("find account %s: %w", number, err)
	}

	customer, err := uc.identity.ResolveCustomer(ctx, account.CustomerID())
	if err != nil {
		return dto.Statement{}, fmt.Errorf("resolve customer %s: %w", account.CustomerID(), err)
	}

	statement, err := uc.build(ctx, customer, []model.Account{account}, windowFrom, windowTo)
	if err != nil {
		return dto.Statement{}, err
	}

	uc.logger.Info("statement generated",
		"account_number", number.String(),
		"from", windowFrom.Format(time.RFC3339),
		"to", windowTo.Format(time.RFC3339),
	)

	return statement, nil
}

// window validates the range and widens the calendar dates to the half-open
// instant range of the reporting timezone.
func (uc *GenerateStatement) window(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: both dates are required", model.ErrIllegalDateRange)
	}

	// Compare truncated days before widening, so from one day after to is
	// rejected rather than collapsing into an empty window.
	start := startOfDay(from, uc.location)
	end := startOfDay(to, uc.location)
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from %s is after to %s",
			model.ErrIllegalDateRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return start, end.AddDate(0, 0, 1), nil
}

func (uc *GenerateStatement) build(
	ctx context.Context,
	customer port.Customer,
	accounts []model.Account,
	from, to time.Time,
) (dto.Statement, error) {
	numbers := make([]valueobject.AccountNumber, 0, len(accounts))
	for _, account := range accounts {
		numbers = append(numbers, account.Number())
	}

	var movements []model.Movement
	if len(numbers) > 0 {
		var err error
		movements, err = uc.movements.ListForStatement(ctx, numbers, from, to)
		if err != nil {
			return dto.Statement{}, fmt.Errorf("list statement movements: %w", err)
		}
	}

	byAccount := make(map[valueobject.AccountNumber][]model.Movement, len(accounts))
	for _, movement := range movements {
		byAccount[movement.AccountNumber()] = append(byAccount[movement.AccountNumber()], movement)
	}

	statement := dto.Statement{
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		Identification: customer.Identification,
		From:           from,
		To:             to,
		GeneratedAt:    time.Now().In(uc.location),
		Accounts:       make([]dto.StatementAccount, 0, len(accounts)),
		TotalBalance:   decimal.Zero,
		TotalAccounts:  len(accounts),
	}

	for _, account := range accounts {
		statement.Accounts = append(statement.Accounts, buildStatementAccount(account, byAccount[account.Number()]))
		statement.TotalBalance = statement.TotalBalance.Add(account.CurrentBalance())
	}

	return statement, nil
}

// buildStatementAccount aggregates one account's movements. Deposits and
// withdrawals are totalled as positive magnitudes; the per-line values keep
// their stored sign.
func buildStatementAccount(account model.Account, movements []model.Movement) dto.StatementAccount {
	out := dto.StatementAccount{
		AccountNumber:    account.Number().String(),
		AccountType:      account.AccountType().String(),
		OpeningBalance:   account.OpeningBalance(),
		CurrentBalance:   account.CurrentBalance(),
		Active:           account.Active(),
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		MovementCount:    len(movements),
		Movements:        make([]dto.StatementMovement, 0, len(movements)),
	}

	for _, movement := range movements {
		value := movement.Value()
		if value.IsNegative() {
			out.TotalWithdrawals = out.TotalWithdrawals.Add(value.Abs())
		} else {
			out.TotalDeposits = out.TotalDeposits.Add(value)
		}

		out.Movements = append(out.Movements, dto.StatementMovement{
			OccurredAt: movement.OccurredAt(),
			Kind:       movement.Kind().String(),
			Value:      value,
			Balance:    movement.BalanceAfter(),
		})
	}

	return out
}

// startOfDay truncates t to midnight of its calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
