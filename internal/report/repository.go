package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"game-reports/internal/querybuild"
	"game-reports/pkg/db"
	"game-reports/pkg/metrics"
)

// Engine executes a plan against the external store.
type Engine interface {
	Dialect() querybuild.Dialect
	Query(ctx context.Context, report string, plan querybuild.Plan) ([]Row, error)
}

// Repository is the Engine backed by the shared connection pool.
type Repository struct {
	Db *db.Db
}

func NewRepository(db *db.Db) *Repository {
	return &Repository{Db: db}
}

func (r *Repository) Dialect() querybuild.Dialect {
	return r.Db.Dialect
}

// Query runs plan and scans every row. A panic raised by the driver is
// returned as an error.
func (r *Repository) Query(ctx context.Context, report string, plan querybuild.Plan) (out []Row, err error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", report, err)
	}

	start := time.Now()
	defer func() {
		if v := recover(); v != nil {
			out, err = nil, Recovered(v)
		}
		metrics.ObserveQuery(report, start, err)
	}()

	rows, err := r.Db.QueryxContext(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows *sqlx.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0, 64)
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		out = append(out, Row{Columns: columns, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
