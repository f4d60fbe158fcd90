// Package store persists decoded CFONB batches in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cleared-dev/cfonb/internal/importer"
	"github.com/cleared-dev/cfonb/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS imports (
	id          TEXT PRIMARY KEY,
	file_name   TEXT NOT NULL,
	format      TEXT NOT NULL,
	imported_at TEXT NOT NULL,
	aggregates  INTEGER NOT NULL,
	operations  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS statements (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	import_id      TEXT NOT NULL REFERENCES imports(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	bank_code      TEXT,
	desk_code      TEXT,
	account_number TEXT,
	currency_code  TEXT,
	old_date       TEXT,
	old_amount     TEXT,
	new_date       TEXT,
	new_amount     TEXT
);
CREATE TABLE IF NOT EXISTS operations (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	statement_id   INTEGER NOT NULL REFERENCES statements(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	bank_code      TEXT NOT NULL,
	internal_code  TEXT,
	desk_code      TEXT NOT NULL,
	currency_code  TEXT,
	account_number TEXT NOT NULL,
	code           TEXT NOT NULL,
	date           TEXT NOT NULL,
	reject_code    TEXT,
	value_date     TEXT NOT NULL,
	label          TEXT NOT NULL,
	exempt_code    TEXT,
	amount         TEXT NOT NULL,
	reference      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS operation_details (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	operation_id INTEGER NOT NULL REFERENCES operations(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	code         TEXT NOT NULL,
	date         TEXT NOT NULL,
	qualifier    TEXT NOT NULL,
	information  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS transfers (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	import_id       TEXT NOT NULL REFERENCES imports(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	operation_code  TEXT NOT NULL,
	sequence_number TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	sender_name     TEXT NOT NULL,
	bank_code       TEXT NOT NULL,
	desk_code       TEXT NOT NULL,
	account_number  TEXT NOT NULL,
	currency_code   TEXT,
	reference       TEXT NOT NULL,
	settlement_date TEXT,
	total_count     INTEGER NOT NULL,
	total_amount    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS transactions (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	transfer_id       INTEGER NOT NULL REFERENCES transfers(id) ON DELETE CASCADE,
	position          INTEGER NOT NULL,
	code              TEXT NOT NULL,
	sequence_number   TEXT NOT NULL,
	date              TEXT NOT NULL,
	value_date        TEXT NOT NULL,
	counterparty_name TEXT NOT NULL,
	bank_code         TEXT NOT NULL,
	desk_code         TEXT NOT NULL,
	account_number    TEXT NOT NULL,
	internal_code     TEXT,
	currency_code     TEXT,
	reject_code       TEXT,
	exempt_code       TEXT,
	label             TEXT NOT NULL,
	reference         TEXT NOT NULL,
	amount            TEXT NOT NULL
);
`

const dateFormat = "2006-01-02"

// Import is one stored file.
type Import struct {
	ID         string
	FileName   string
	Format     string
	ImportedAt time.Time
	Aggregates int
	Operations int
}

// Store wraps the SQLite connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the batch in a single transaction and returns the new import ID.
func (s *Store) Save(ctx context.Context, fileName string, b *importer.Batch) (string, error) {
	id := uuid.NewString()
	aggregates, operations := b.Counts()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, file_name, format, imported_at, aggregates, operations) VALUES (?, ?, ?, ?, ?, ?)`,
		id, fileName, b.Format, s.now().UTC().Format(time.RFC3339), aggregates, operations,
	); err != nil {
		return "", fmt.Errorf("inserting import: %w", err)
	}

	for i, st := range b.Statements {
		if err := saveStatement(ctx, tx, id, i, st); err != nil {
			return "", fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	for i, tr := range b.Transfers {
		if err := saveTransfer(ctx, tx, id, i, tr); err != nil {
			return "", fmt.Errorf("transfer %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing import: %w", err)
	}
	return id, nil
}

// Imports lists stored imports, oldest first.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, format, imported_at, aggregates, operations FROM imports ORDER BY imported_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		var at string
		if err := rows.Scan(&imp.ID, &imp.FileName, &imp.Format, &at, &imp.Aggregates, &imp.Operations); err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}
		imp.ImportedAt, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parsing imported_at %q: %w", at, err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

func saveStatement(ctx context.Context, tx *sql.Tx, importID string, pos int, st *model.Statement) error {
	var bank, desk, account, currency, oldDate, oldAmount, newDate, newAmount sql.NullString
	if b, err := st.OldBalance(); err == nil {
		bank, desk, account, currency = nullString(b.BankCode), nullString(b.DeskCode), nullString(b.AccountNumber), nullString(b.CurrencyCode)
		oldDate, oldAmount = nullString(b.Date.Format(dateFormat)), nullString(b.Amount.String())
	}
	if b, err := st.NewBalance(); err == nil {
		newDate, newAmount = nullString(b.Date.Format(dateFormat)), nullString(b.Amount.String())
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO statements (import_id, position, bank_code, desk_code, account_number, currency_code, old_date, old_amount, new_date, new_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		importID, pos, bank, desk, account, currency, oldDate, oldAmount, newDate, newAmount,
	)
	if err != nil {
		return fmt.Errorf("inserting statement: %w", err)
	}
	statementID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, op := range st.Operations {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO operations (statement_id, position, bank_code, internal_code, desk_code, currency_code, account_number, code, date, reject_code, value_date, label, exempt_code, amount, reference)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			statementID, i, op.BankCode, optional(op.InternalCode), op.DeskCode, optional(op.CurrencyCode),
			op.AccountNumber, op.Code, op.Date.Format(dateFormat), optional(op.RejectCode),
			op.ValueDate.Format(dateFormat), op.Label, optional(op.ExemptCode), op.Amount.String(), op.Reference,
		)
		if err != nil {
			return fmt.Errorf("inserting operation %d: %w", i+1, err)
		}
		operationID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for j, d := range op.Details {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO operation_details (operation_id, position, code, date, qualifier, information) VALUES (?, ?, ?, ?, ?, ?)`,
				operationID, j, d.Code, d.Date.Format(dateFormat), d.Qualifier, d.AdditionalInformations,
			); err != nil {
				return fmt.Errorf("inserting detail %d of operation %d: %w", j+1, i+1, err)
			}
		}
	}
	return nil
}

func saveTransfer(ctx context.Context, tx *sql.Tx, importID string, pos int, tr *model.Transfer) error {
	h, t := tr.Header, tr.Total
	var settlement sql.NullString
	if h.SettlementDate != nil {
		settlement = nullString(h.SettlementDate.Format(dateFormat))
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transfers (import_id, position, operation_code, sequence_number, created_at, sender_name, bank_code, desk_code, account_number, currency_code, reference, settlement_date, total_count, total_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		importID, pos, h.OperationCode, h.SequenceNumber, h.CreatedAt.Format(dateFormat), h.SenderName,
		h.BankCode, h.DeskCode, h.AccountNumber, optional(h.CurrencyCode), h.Reference, settlement,
		t.TransactionCount, t.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("inserting transfer: %w", err)
	}
	transferID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, x := range tr.Transactions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (transfer_id, position, code, sequence_number, date, value_date, counterparty_name, bank_code, desk_code, account_number, internal_code, currency_code, reject_code, exempt_code, label, reference, amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			transferID, i, x.Code, x.SequenceNumber, x.Date.Format(dateFormat), x.ValueDate.Format(dateFormat),
			x.CounterpartyName, x.BankCode, x.DeskCode, x.AccountNumber, optional(x.InternalCode),
			optional(x.CurrencyCode), optional(x.RejectCode), optional(x.ExemptCode), x.Label, x.Reference, x.Amount.String(),
		); err != nil {
			return fmt.Errorf("inserting transaction %d: %w", i+1, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func optional(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return nullString(*s)
}
