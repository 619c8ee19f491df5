package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
	pgshared "github.com/bancacore/cuenta-ledger/pkg/postgres"
)

// MovementRepository is the pgx implementation of port.MovementRepository
// and port.LedgerStore. Movements are append-only; there is no update or
// delete path.
type MovementRepository struct {
	pool *pgxpool.Pool
}

var (
	_ port.MovementRepository = (*MovementRepository)(nil)
	_ port.LedgerStore        = (*MovementRepository)(nil)
)

// NewMovementRepository creates the repository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// AppendMovement writes the movement and the account's new state in one
// transaction. The account write carries the revision guard, so a
// concurrent post against the same account rolls the whole unit back with
// ErrConcurrentModification.
func (r *MovementRepository) AppendMovement(ctx context.Context, account model.Account, movement model.Movement) error {
	return pgshared.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := updateAccount(ctx, tx, account); err != nil {
			return err
		}

		const query = `
			INSERT INTO movements (
				movement_id, account_number, kind, value,
				balance_before, balance_after, occurred_at, description
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		if _, err := tx.Exec(ctx, query,
			movement.ID().String(),
			movement.AccountNumber().String(),
			movement.Kind().String(),
			movement.Value(),
			movement.BalanceBefore(),
			movement.BalanceAfter(),
			movement.OccurredAt(),
			movement.Description(),
		); err != nil {
			return fmt.Errorf("insert movement: %w", err)
		}
		return nil
	})
}

// FindByID loads one movement by its identifier.
func (r *MovementRepository) FindByID(ctx context.Context, id valueobject.MovementID) (model.Movement, error) {
	const query = `
		SELECT movement_id, account_number, kind, value,
		       balance_before, balance_after, occurred_at, description
		FROM movements
		WHERE movement_id = $1`

	movement, err := scanMovement(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Movement{}, fmt.Errorf("movement %s: %w", id, model.ErrMovementNotFound)
		}
		return model.Movement{}, fmt.Errorf("find movement: %w", err)
	}
	return movement, nil
}

// ListByAccount returns the account's movements with occurred_at in
// [from, to), oldest first, plus the unpaginated total.
func (r *MovementRepository) ListByAccount(
	ctx context.Context,
	number valueobject.AccountNumber,
	from, to time.Time,
	limit, offset int,
) ([]model.Movement, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements
		 WHERE account_number = $1 AND occurred_at >= $2 AND occurred_at < $3`,
		number.String(), from, to,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	const query = `
		SELECT movement_id, account_number, kind, value,
		       balance_before, balance_after, occurred_at, description
		FROM movements
		WHERE account_number = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at, movement_id
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, number.String(), from, to, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	movements, err := collectMovements(rows)
	if err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// ListForStatement returns all movements of the given accounts with
// occurred_at in [from, to), oldest first.
func (r *MovementRepository) ListForStatement(
	ctx context.Context,
	numbers []valueobject.AccountNumber,
	from, to time.Time,
) ([]model.Movement, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	values := make([]string, 0, len(numbers))
	for _, number := range numbers {
		values = append(values, number.String())
	}

	const query = `
		SELECT movement_id, account_number, kind, value,
		       balance_before, balance_after, occurred_at, description
		FROM movements
		WHERE account_number = ANY($1) AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at, movement_id`

	rows, err := r.pool.Query(ctx, query, values, from, to)
	if err != nil {
		return nil, fmt.Errorf("list statement movements: %w", err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]model.Movement, error) {
	var movements []model.Movement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return movements, nil
}

func scanMovement(row pgx.Row) (model.Movement, error) {
	var (
		id, number, kind, description      string
		value, balanceBefore, balanceAfter decimal.Decimal
		occurredAt                         time.Time
	)

	if err := row.Scan(
		&id, &number, &kind, &value,
		&balanceBefore, &balanceAfter, &occurredAt, &description,
	); err != nil {
		return model.Movement{}, err
	}

	idVO, err := valueobject.MovementIDFromString(id)
	if err != nil {
		return model.Movement{}, fmt.Errorf("stored movement id %q: %w", id, err)
	}
	numberVO, err := valueobject.AccountNumberFromString(number)
	if err != nil {
		return model.Movement{}, fmt.Errorf("stored account number %q: %w", number, err)
	}
	kindVO, err := valueobject.NewMovementKind(kind)
	if err != nil {
		return model.Movement{}, fmt.Errorf("stored movement kind %q: %w", kind, err)
	}

	return model.ReconstructMovement(
		idVO, numberVO, kindVO, value,
		balanceBefore, balanceAfter, occurredAt, description,
	), nil
}
