package marketdata

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockProvider(t *testing.T) (*PostgresProvider, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	return NewPostgresProvider(db), mock, func() { _ = db.Close() }
}

func TestPostgresProvider_FetchDaily_SQLMock(t *testing.T) {
	selectRegex := regexp.MustCompile(`SELECT trade_date, open, high, low, close, volume\s+FROM daily_bars\s+WHERE symbol = \$1.*ORDER BY trade_date ASC`)

	d1 := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		args     int
		rows     *sqlmock.Rows
		wantBars int
		wantErr  error
	}{
		{
			name: "open range", args: 1,
			rows:     sqlmock.NewRows([]string{"trade_date", "open", "high", "low", "close", "volume"}).AddRow(d1, 1.0, 2.0, 0.5, 1.5, int64(100)),
			wantBars: 1,
		},
		{
			name: "closed range", start: d1, end: d2, args: 3,
			rows: sqlmock.NewRows([]string{"trade_date", "open", "high", "low", "close", "volume"}).
				AddRow(d1, 1.0, 2.0, 0.5, 1.5, nil).
				AddRow(d2, 1.5, 2.5, 1.0, 2.0, int64(200)),
			wantBars: 2,
		},
		{
			name: "no rows", start: d1, end: d2, args: 3,
			rows:    sqlmock.NewRows([]string{"trade_date", "open", "high", "low", "close", "volume"}),
			wantErr: ErrNoData,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, mock, done := newMockProvider(t)
			defer done()

			exp := mock.ExpectQuery(selectRegex.String())
			switch tc.args {
			case 1:
				exp.WithArgs("AAPL")
			case 3:
				exp.WithArgs("AAPL", d1, d2)
			}
			exp.WillReturnRows(tc.rows)

			series, err := p.FetchDaily(context.Background(), "AAPL", tc.start, tc.end)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("FetchDaily: %v", err)
				}
				if series.Len() != tc.wantBars {
					t.Fatalf("bars = %d, want %d", series.Len(), tc.wantBars)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestPostgresProvider_QueryError(t *testing.T) {
	p, mock, done := newMockProvider(t)
	defer done()

	mock.ExpectQuery(`SELECT trade_date`).WillReturnError(errors.New("relation \"daily_bars\" does not exist"))
	d := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	if _, err := p.FetchDaily(context.Background(), "AAPL", d, d); err == nil || errors.Is(err, ErrNoData) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestPostgresProvider_Ping(t *testing.T) {
	p, mock, done := newMockProvider(t)
	defer done()

	mock.ExpectPing()
	if err := p.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mock.ExpectPing().WillReturnError(errors.New("down"))
	if err := p.Ping(); err == nil {
		t.Fatalf("expected ping error")
	}
}
