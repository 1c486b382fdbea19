package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CombatRow is one damage, death or resurrection line of the combat log.
type CombatRow struct {
	Run    string
	Tick   uint64
	Event  string // "damage", "death", "resurrect"
	Entity uint64
	Other  uint64
	Amount float64
	Kind   string
}

var combatLogColumns = []string{"run", "tick", "event", "entity", "other", "amount", "kind"}

type CombatLogRepo struct {
	db *DB
}

func NewCombatLogRepo(db *DB) *CombatLogRepo {
	return &CombatLogRepo{db: db}
}

// Write bulk-inserts rows with COPY.
func (r *CombatLogRepo) Write(ctx context.Context, rows []CombatRow) error {
	if len(rows) == 0 {
		return nil
	}
	n, err := r.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"combat_log"},
		combatLogColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			return []any{row.Run, int64(row.Tick), row.Event, int64(row.Entity), int64(row.Other), row.Amount, row.Kind}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy combat log: %w", err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy combat log: wrote %d of %d rows", n, len(rows))
	}
	return nil
}

// Count returns the number of rows recorded for run.
func (r *CombatLogRepo) Count(ctx context.Context, run string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM combat_log WHERE run = $1`, run,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count combat log: %w", err)
	}
	return n, nil
}
