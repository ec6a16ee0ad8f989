package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/candleview/internal/domain/models"
)

// PostgresProvider implements Provider by reading a local daily_bars table.
// It never writes; the table is loaded out of band (see db/migrations).
type PostgresProvider struct {
	db *sql.DB
}

// NewPostgresProvider wraps an open database handle.
func NewPostgresProvider(db *sql.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) Name() string { return "postgres" }

// Ping reports database reachability for the readiness probe.
func (p *PostgresProvider) Ping() error {
	return p.db.Ping()
}

// FetchDaily returns the stored bars for symbol between start and end (inclusive).
// A zero start or end leaves that side of the range open.
func (p *PostgresProvider) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	// $1 is always symbol. Subsequent placeholders depend on provided dates.
	conditions := "symbol = $1"
	args := []interface{}{symbol}
	if !start.IsZero() {
		conditions += fmt.Sprintf(" AND trade_date >= $%d", len(args)+1)
		args = append(args, models.DateOf(start))
	}
	if !end.IsZero() {
		conditions += fmt.Sprintf(" AND trade_date <= $%d", len(args)+1)
		args = append(args, models.DateOf(end))
	}

	query := fmt.Sprintf(`
		SELECT trade_date, open, high, low, close, volume
		FROM daily_bars
		WHERE %s
		ORDER BY trade_date ASC
	`, conditions)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily_bars for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []models.Bar
	for rows.Next() {
		var (
			b      models.Bar
			volume sql.NullInt64
		)
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &volume); err != nil {
			return nil, fmt.Errorf("scan daily_bars row: %w", err)
		}
		if volume.Valid {
			b.Volume = volume.Int64
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily_bars: %w", err)
	}

	series, err := finish(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("postgres %s: %w", symbol, err)
	}
	return series, nil
}
