// Package storage implements the record store over SQLite. It validates
// records at the boundary, assigns ids and timestamps, and keeps the core
// free of I/O.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"financas/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by lookups, updates and deletes when no record
// matches the given id.
var ErrNotFound = errors.New("record not found")

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BillPatch carries a partial bill update; nil fields are left untouched.
// The id and creation timestamp can never change.
type BillPatch struct {
	Status       *core.BillStatus
	Supplier     *string
	Amount       *core.Money
	DueDate      *core.Date
	Installments *int
}

// ReceivablePatch is the receivable counterpart of BillPatch.
type ReceivablePatch struct {
	Status       *core.ReceivableStatus
	Description  *string
	Amount       *core.Money
	ReceivedDate *core.Date
	Category     *string
	Source       *string
	Notes        *string
}

const billColumns = "id, status, supplier, amount_cents, due_date, installments, created_at, updated_at"

// ListBills returns every bill ordered ascending by due date.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills ORDER BY due_date ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// GetBill returns the bill with the given id, or ErrNotFound.
func (s *SQLiteStore) GetBill(ctx context.Context, id int64) (core.Bill, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?", id)
	b, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Bill{}, ErrNotFound
	}
	return b, err
}

// InsertBill validates the bill, stores it and returns it with the assigned
// id and timestamps.
func (s *SQLiteStore) InsertBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (status, supplier, amount_cents, due_date, installments, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(b.Status), b.Supplier, b.Amount.Cents, b.DueDate.String(), b.Installments,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return core.Bill{}, fmt.Errorf("insert bill: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Bill{}, fmt.Errorf("insert bill id: %w", err)
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now

	slog.InfoContext(ctx, "Bill created",
		"id", b.ID,
		"supplier", b.Supplier,
		"amount_cents", b.Amount.Cents,
		"due_date", b.DueDate.String())

	return b, nil
}

// UpdateBill applies a partial update, revalidates the resulting record and
// refreshes updated_at. The record is marked unsynced again so the export
// worker picks up the change.
func (s *SQLiteStore) UpdateBill(ctx context.Context, id int64, patch BillPatch) (core.Bill, error) {
	b, err := s.GetBill(ctx, id)
	if err != nil {
		return core.Bill{}, err
	}

	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.Supplier != nil {
		b.Supplier = *patch.Supplier
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if patch.DueDate != nil {
		b.DueDate = *patch.DueDate
	}
	if patch.Installments != nil {
		b.Installments = *patch.Installments
	}

	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE bills SET status = ?, supplier = ?, amount_cents = ?, due_date = ?,
		 installments = ?, synced = 0, updated_at = ? WHERE id = ?`,
		string(b.Status), b.Supplier, b.Amount.Cents, b.DueDate.String(),
		b.Installments, now.Format(time.RFC3339), id)
	if err != nil {
		return core.Bill{}, fmt.Errorf("update bill: %w", err)
	}

	b.UpdatedAt = now
	return b, nil
}

// DeleteBill removes the bill or reports ErrNotFound; the record set is left
// unchanged in that case.
func (s *SQLiteStore) DeleteBill(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const receivableColumns = "id, status, description, amount_cents, received_date, category, source, notes, created_at, updated_at"

// ListReceivables returns every receivable ordered descending by received
// date, the listing order of the receivable views.
func (s *SQLiteStore) ListReceivables(ctx context.Context) ([]core.Receivable, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+receivableColumns+" FROM receivables ORDER BY received_date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()

	var recs []core.Receivable
	for rows.Next() {
		r, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	return recs, nil
}

// GetReceivable returns the receivable with the given id, or ErrNotFound.
func (s *SQLiteStore) GetReceivable(ctx context.Context, id int64) (core.Receivable, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+receivableColumns+" FROM receivables WHERE id = ?", id)
	r, err := scanReceivable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Receivable{}, ErrNotFound
	}
	return r, err
}

// InsertReceivable validates and stores a receivable, returning it with the
// assigned id and timestamps.
func (s *SQLiteStore) InsertReceivable(ctx context.Context, r core.Receivable) (core.Receivable, error) {
	if err := r.Validate(); err != nil {
		return core.Receivable{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO receivables (status, description, amount_cents, received_date, category, source, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.Status), r.Description, r.Amount.Cents, r.ReceivedDate.String(),
		r.Category, r.Source, r.Notes, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return core.Receivable{}, fmt.Errorf("insert receivable: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Receivable{}, fmt.Errorf("insert receivable id: %w", err)
	}

	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now

	slog.InfoContext(ctx, "Receivable created",
		"id", r.ID,
		"source", r.Source,
		"amount_cents", r.Amount.Cents,
		"received_date", r.ReceivedDate.String())

	return r, nil
}

// UpdateReceivable applies a partial update, same contract as UpdateBill.
func (s *SQLiteStore) UpdateReceivable(ctx context.Context, id int64, patch ReceivablePatch) (core.Receivable, error) {
	r, err := s.GetReceivable(ctx, id)
	if err != nil {
		return core.Receivable{}, err
	}

	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.Amount != nil {
		r.Amount = *patch.Amount
	}
	if patch.ReceivedDate != nil {
		r.ReceivedDate = *patch.ReceivedDate
	}
	if patch.Category != nil {
		r.Category = *patch.Category
	}
	if patch.Source != nil {
		r.Source = *patch.Source
	}
	if patch.Notes != nil {
		r.Notes = *patch.Notes
	}

	if err := r.Validate(); err != nil {
		return core.Receivable{}, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE receivables SET status = ?, description = ?, amount_cents = ?, received_date = ?,
		 category = ?, source = ?, notes = ?, synced = 0, updated_at = ? WHERE id = ?`,
		string(r.Status), r.Description, r.Amount.Cents, r.ReceivedDate.String(),
		r.Category, r.Source, r.Notes, now.Format(time.RFC3339), id)
	if err != nil {
		return core.Receivable{}, fmt.Errorf("update receivable: %w", err)
	}

	r.UpdatedAt = now
	return r, nil
}

// DeleteReceivable removes the receivable or reports ErrNotFound.
func (s *SQLiteStore) DeleteReceivable(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receivables WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete receivable: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete receivable: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUnsyncedBills returns up to limit bills not yet pushed to the export
// target, oldest first.
func (s *SQLiteStore) ListUnsyncedBills(ctx context.Context, limit int) ([]core.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE synced = 0 ORDER BY id ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list unsynced bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// ListUnsyncedReceivables is the receivable counterpart of ListUnsyncedBills.
func (s *SQLiteStore) ListUnsyncedReceivables(ctx context.Context, limit int) ([]core.Receivable, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+receivableColumns+" FROM receivables WHERE synced = 0 ORDER BY id ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list unsynced receivables: %w", err)
	}
	defer rows.Close()

	var recs []core.Receivable
	for rows.Next() {
		r, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// MarkBillSynced flags a bill as pushed to the export target.
func (s *SQLiteStore) MarkBillSynced(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "UPDATE bills SET synced = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark bill synced: %w", err)
	}
	return nil
}

// MarkReceivableSynced flags a receivable as pushed to the export target.
func (s *SQLiteStore) MarkReceivableSynced(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "UPDATE receivables SET synced = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark receivable synced: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (core.Bill, error) {
	var (
		b                    core.Bill
		status               string
		dueDate              string
		createdAt, updatedAt string
	)
	err := row.Scan(&b.ID, &status, &b.Supplier, &b.Amount.Cents, &dueDate,
		&b.Installments, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Bill{}, err
		}
		return core.Bill{}, fmt.Errorf("scan bill: %w", err)
	}

	b.Status = core.BillStatus(status)
	// An unparseable stored date is kept as a zero Date; the core surfaces
	// it as a DataError instead of coercing it.
	if d, err := core.ParseDate(dueDate); err == nil {
		b.DueDate = d
	}
	b.CreatedAt = parseTimestamp(createdAt)
	b.UpdatedAt = parseTimestamp(updatedAt)
	return b, nil
}

func scanReceivable(row rowScanner) (core.Receivable, error) {
	var (
		r                    core.Receivable
		status               string
		receivedDate         string
		createdAt, updatedAt string
	)
	err := row.Scan(&r.ID, &status, &r.Description, &r.Amount.Cents, &receivedDate,
		&r.Category, &r.Source, &r.Notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Receivable{}, err
		}
		return core.Receivable{}, fmt.Errorf("scan receivable: %w", err)
	}

	r.Status = core.ReceivableStatus(status)
	if d, err := core.ParseDate(receivedDate); err == nil {
		r.ReceivedDate = d
	}
	r.CreatedAt = parseTimestamp(createdAt)
	r.UpdatedAt = parseTimestamp(updatedAt)
	return r, nil
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// CURRENT_TIMESTAMP default from the schema
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
