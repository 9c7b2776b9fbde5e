package writers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

const transactionsTable = "transactions"

// LedgerSummary aggregates the ledger.
type LedgerSummary struct {
	Count        int
	Buys         int
	Sells        int
	RealizedPnL  float64
	DayTradeCost float64
}

// TransactionsWriter keeps the ledger in an in-memory DuckDB table and
// exports it to parquet after every write.
type TransactionsWriter struct {
	db         *sql.DB
	sq         squirrel.StatementBuilderType
	outputPath string
	mu         sync.Mutex
}

// NewTransactionsWriter creates a writer. outputPath is the full path to the parquet file.
func NewTransactionsWriter(outputPath string) *TransactionsWriter {
	return &TransactionsWriter{
		db:         nil,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		outputPath: outputPath,
		mu:         sync.Mutex{},
	}
}

// Initialize opens DuckDB and reloads an existing parquet file from an earlier run of the same day.
func (w *TransactionsWriter) Initialize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to create data directory", err)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to open DuckDB connection", err)
	}

	w.db = db

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT,
			order_id TEXT,
			symbol TEXT,
			side TEXT,
			quantity DOUBLE,
			price DOUBLE,
			profit DOUBLE,
			reason TEXT,
			executed_at TIMESTAMP
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to create transactions table", err)
	}

	if _, err := os.Stat(w.outputPath); err == nil {
		// a broken file is replaced on the next export
		_, _ = w.db.Exec(fmt.Sprintf(`INSERT INTO transactions SELECT * FROM read_parquet('%s')`, w.outputPath))
	}

	return nil
}

// Write appends a transaction and exports the table.
func (w *TransactionsWriter) Write(tx types.Transaction) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeLedgerWriteFailed, "writer not initialized")
	}

	_, err := w.sq.
		Insert(transactionsTable).
		Columns("id", "order_id", "symbol", "side", "quantity", "price", "profit", "reason", "executed_at").
		Values(tx.ID, tx.OrderID, tx.Symbol, string(tx.Side), tx.Quantity, tx.Price, tx.Profit, tx.Reason, tx.ExecutedAt).
		RunWith(w.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to insert transaction", err)
	}

	return w.exportToParquet()
}

// Flush forces an export to parquet.
func (w *TransactionsWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeLedgerWriteFailed, "writer not initialized")
	}

	return w.exportToParquet()
}

// GetOutputPath returns the parquet file path.
func (w *TransactionsWriter) GetOutputPath() string {
	return w.outputPath
}

// Close releases database resources.
func (w *TransactionsWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to close database", err)
		}

		w.db = nil
	}

	return nil
}

// Summary aggregates the ledger, optionally for one symbol.
func (w *TransactionsWriter) Summary(symbol string) (LedgerSummary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return LedgerSummary{}, errors.New(errors.ErrCodeLedgerWriteFailed, "writer not initialized")
	}

	query := w.sq.
		Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE side = 'BUY')",
			"COUNT(*) FILTER (WHERE side = 'SELL')",
			"COALESCE(SUM(profit), 0)",
			"COALESCE(SUM(quantity * price) FILTER (WHERE side = 'BUY'), 0)",
		).
		From(transactionsTable)

	if symbol != "" {
		query = query.Where(squirrel.Eq{"symbol": types.NormalizeSymbol(symbol)})
	}

	var summary LedgerSummary

	err := query.RunWith(w.db).QueryRow().Scan(
		&summary.Count,
		&summary.Buys,
		&summary.Sells,
		&summary.RealizedPnL,
		&summary.DayTradeCost,
	)
	if err != nil {
		return LedgerSummary{}, errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to summarise transactions", err)
	}

	return summary, nil
}

// Transactions returns the ledger ordered by execution time.
func (w *TransactionsWriter) Transactions() ([]types.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return nil, errors.New(errors.ErrCodeLedgerWriteFailed, "writer not initialized")
	}

	rows, err := w.sq.
		Select("id", "order_id", "symbol", "side", "quantity", "price", "profit", "reason", "executed_at").
		From(transactionsTable).
		OrderBy("executed_at ASC").
		RunWith(w.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to query transactions", err)
	}
	defer rows.Close()

	transactions := make([]types.Transaction, 0)

	for rows.Next() {
		var tx types.Transaction

		var side string

		if err := rows.Scan(&tx.ID, &tx.OrderID, &tx.Symbol, &side, &tx.Quantity, &tx.Price, &tx.Profit, &tx.Reason, &tx.ExecutedAt); err != nil {
			return nil, errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to scan transaction", err)
		}

		tx.Side = types.OrderSide(side)
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to read transactions", err)
	}

	return transactions, nil
}

//nolint:funcorder // helper method used by Write and Flush
func (w *TransactionsWriter) exportToParquet() error {
	_, err := w.db.Exec(fmt.Sprintf(`
		COPY (SELECT * FROM transactions ORDER BY executed_at ASC)
		TO '%s' (FORMAT PARQUET)
	`, w.outputPath))
	if err != nil {
		return errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to export to parquet", err)
	}

	return nil
}
