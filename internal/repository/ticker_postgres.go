package repository

import (
	"context"
	"database/sql"
	"fmt"
	"marketpulse/internal/model"

	"github.com/lib/pq"
)

type PostgresTickerRepository struct {
	db *sql.DB
}

func NewPostgresTickerRepository(db *sql.DB) *PostgresTickerRepository {
	return &PostgresTickerRepository{db: db}
}

func (r *PostgresTickerRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ticker (
			rank     INTEGER NOT NULL,
			symbol   TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			industry TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create ticker table: %w", err)
	}
	return nil
}

func (r *PostgresTickerRepository) Load(ctx context.Context) ([]model.TickerRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT symbol, name, industry
		FROM ticker
		ORDER BY rank ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tickers: %w", err)
	}
	defer rows.Close()

	records := []model.TickerRecord{}
	for rows.Next() {
		var t model.TickerRecord
		if err := rows.Scan(&t.Symbol, &t.Name, &t.Industry); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		records = append(records, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Save swaps the table contents inside one transaction.
func (r *PostgresTickerRepository) Save(ctx context.Context, records []model.TickerRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ticker`); err != nil {
		return fmt.Errorf("clear tickers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("ticker", "rank", "symbol", "name", "industry"))
	if err != nil {
		return fmt.Errorf("prepare ticker copy: %w", err)
	}

	for i, t := range records {
		if _, err := stmt.ExecContext(ctx, i+1, t.Symbol, t.Name, t.Industry); err != nil {
			stmt.Close()
			return fmt.Errorf("copy ticker %s: %w", t.Symbol, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush ticker copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	return tx.Commit()
}
