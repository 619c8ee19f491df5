// Package postgres implements the ledger's persistence ports on PostgreSQL
// via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	pgshared "github.com/bancacore/cuenta-ledger/pkg/postgres"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

// AccountRepository is the pgx implementation of port.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

var _ port.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository creates the repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account row.
func (r *AccountRepository) Create(ctx context.Context, account model.Account) error {
	const query = `
		INSERT INTO accounts (
			account_number, account_type, opening_balance, current_balance,
			active, customer_id, revision, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		account.Number().String(),
		account.AccountType().String(),
		account.OpeningBalance(),
		account.CurrentBalance(),
		account.Active(),
		account.CustomerID().String(),
		account.Revision(),
		account.CreatedAt(),
		account.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("account %s already exists: %w", account.Number(), err)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// Update writes the account state guarded by the revision check: the row is
// written only when its stored revision is exactly one behind the
// aggregate's. Zero affected rows then means either a concurrent writer got
// there first or the row is gone, and a follow-up existence check decides
// which error to return.
func (r *AccountRepository) Update(ctx context.Context, account model.Account) error {
	return updateAccount(ctx, r.pool, account)
}

func updateAccount(ctx context.Context, q pgshared.Querier, account model.Account) error {
	const query = `
		UPDATE accounts
		SET account_type = $1, current_balance = $2, active = $3,
		    revision = $4, updated_at = $5
		WHERE account_number = $6 AND revision = $7`

	tag, err := q.Exec(ctx, query,
		account.AccountType().String(),
		account.CurrentBalance(),
		account.Active(),
		account.Revision(),
		account.UpdatedAt(),
		account.Number().String(),
		account.Revision()-1,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		checkErr := q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`,
			account.Number().String(),
		).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("check account existence: %w", checkErr)
		}
		if !exists {
			return fmt.Errorf("account %s: %w", account.Number(), model.ErrAccountNotFound)
		}
		return fmt.Errorf("account %s at revision %d: %w",
			account.Number(), account.Revision()-1, model.ErrConcurrentModification)
	}
	return nil
}

// FindByNumber loads one account by its number.
func (r *AccountRepository) FindByNumber(ctx context.Context, number valueobject.AccountNumber) (model.Account, error) {
	const query = `
		SELECT account_number, account_type, opening_balance, current_balance,
		       active, customer_id, revision, created_at, updated_at
		FROM accounts
		WHERE account_number = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, number.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, fmt.Errorf("account %s: %w", number, model.ErrAccountNotFound)
		}
		return model.Account{}, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// ListByCustomer returns the customer's accounts ordered by creation time,
// plus the unpaginated total.
func (r *AccountRepository) ListByCustomer(
	ctx context.Context,
	customerID valueobject.CustomerID,
	activeOnly bool,
	limit, offset int,
) ([]model.Account, int, error) {
	filter := `WHERE customer_id = $1`
	if activeOnly {
		filter += ` AND active`
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts `+filter, customerID.String(),
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := `
		SELECT account_number, account_type, opening_balance, current_balance,
		       active, customer_id, revision, created_at, updated_at
		FROM accounts ` + filter + `
		ORDER BY created_at, account_number
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, customerID.String(), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0, limit)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, total, nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var (
		number, accountType, customerID string
		openingBalance, currentBalance  decimal.Decimal
		active                          bool
		revision                        int64
		createdAt, updatedAt            time.Time
	)

	if err := row.Scan(
		&number, &accountType, &openingBalance, &currentBalance,
		&active, &customerID, &revision, &createdAt, &updatedAt,
	); err != nil {
		return model.Account{}, err
	}

	numberVO, err := valueobject.AccountNumberFromString(number)
	if err != nil {
		return model.Account{}, fmt.Errorf("stored account number %q: %w", number, err)
	}
	typeVO, err := valueobject.NewAccountType(accountType)
	if err != nil {
		return model.Account{}, fmt.Errorf("stored account type %q: %w", accountType, err)
	}
	customerVO, err := valueobject.CustomerIDFromString(customerID)
	if err != nil {
		return model.Account{}, fmt.Errorf("stored customer id %q: %w", customerID, err)
	}

	return model.ReconstructAccount(
		numberVO, typeVO, openingBalance, currentBalance,
		active, customerVO, revision, createdAt, updatedAt,
	), nil
}
