package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/mattn/go-sqlite3" // "sqlite3", cgo
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // "sqlite", driver 100% Go

	"github.com/ahinestrog/possale/Backend/src/store"
)

var ErrNotFound = errors.New("not found")

// Repository is the receipt ledger. Receipts are written once and never
// updated, so reads go through an LRU cache.
type Repository struct {
	db    *sql.DB
	cache *lru.Cache[uuid.UUID, *store.Receipt]
}

func NewRepository(driver, dbPath string, cacheSize int) (*Repository, error) {
	var dsn string
	switch driver {
	case "sqlite":
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)
	case "sqlite3":
		dsn = fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", dbPath)
	default:
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[uuid.UUID, *store.Receipt](cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repository{db: db, cache: cache}, nil
}

func migrate(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS receipts(
  id TEXT PRIMARY KEY,
  customer TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  shipping TEXT NOT NULL,
  total TEXT NOT NULL,
  balance_after TEXT NOT NULL,
  issued_unix INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS receipt_lines(
  receipt_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  line_total TEXT NOT NULL,
  PRIMARY KEY(receipt_id, position),
  FOREIGN KEY(receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS shipment_lines(
  receipt_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  description TEXT NOT NULL,
  weight_kg TEXT NOT NULL,
  PRIMARY KEY(receipt_id, position),
  FOREIGN KEY(receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_receipts_customer ON receipts(customer, issued_unix);
`
	_, err := db.Exec(schema)
	return err
}

func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) SaveReceipt(ctx context.Context, rc *store.Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
  INSERT INTO receipts(id, customer, subtotal, shipping, total, balance_after, issued_unix)
  VALUES(?,?,?,?,?,?,?)`,
		rc.ID.String(), rc.Customer, rc.Subtotal.String(), rc.Shipping.String(),
		rc.Total.String(), rc.BalanceAfter.String(), rc.IssuedAt.Unix()); err != nil {
		return fmt.Errorf("insert receipt %s: %w", rc.ID, err)
	}

	for i, l := range rc.Lines {
		if _, err := tx.ExecContext(ctx, `
  INSERT INTO receipt_lines(receipt_id, position, name, qty, unit_price, line_total)
  VALUES(?,?,?,?,?,?)`,
			rc.ID.String(), i, l.Name, l.Quantity, l.UnitPrice.String(), l.LineTotal.String()); err != nil {
			return fmt.Errorf("insert receipt line %d: %w", i, err)
		}
	}
	for i, l := range rc.Shipment.Lines {
		if _, err := tx.ExecContext(ctx, `
  INSERT INTO shipment_lines(receipt_id, position, description, weight_kg)
  VALUES(?,?,?,?)`,
			rc.ID.String(), i, l.Description, l.WeightKg.String()); err != nil {
			return fmt.Errorf("insert shipment line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	r.cache.Add(rc.ID, rc)
	return nil
}

func (r *Repository) GetReceipt(ctx context.Context, id uuid.UUID) (*store.Receipt, error) {
	if rc, ok := r.cache.Get(id); ok {
		return rc, nil
	}

	row := r.db.QueryRowContext(ctx, `
    SELECT id, customer, subtotal, shipping, total, balance_after, issued_unix
    FROM receipts WHERE id=?`, id.String())
	rc, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, rc); err != nil {
		return nil, err
	}
	r.cache.Add(id, rc)
	return rc, nil
}

// ListReceipts returns a customer's receipts, oldest first.
func (r *Repository) ListReceipts(ctx context.Context, customer string) ([]*store.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
    SELECT id, customer, subtotal, shipping, total, balance_after, issued_unix
    FROM receipts WHERE customer=? ORDER BY issued_unix, rowid`, customer)
	if err != nil {
		return nil, err
	}
	var out []*store.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, rc := range out {
		if err := r.loadLines(ctx, rc); err != nil {
			return nil, err
		}
		r.cache.Add(rc.ID, rc)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(s scanner) (*store.Receipt, error) {
	var (
		rc                                          store.Receipt
		id, subtotal, shipping, total, balanceAfter string
		issued                                      int64
	)
	if err := s.Scan(&id, &rc.Customer, &subtotal, &shipping, &total, &balanceAfter, &issued); err != nil {
		return nil, err
	}
	var err error
	if rc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("receipt id %q: %w", id, err)
	}
	if rc.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, err
	}
	if rc.Shipping, err = decimal.NewFromString(shipping); err != nil {
		return nil, err
	}
	if rc.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	if rc.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
		return nil, err
	}
	rc.IssuedAt = time.Unix(issued, 0).UTC()
	return &rc, nil
}

func (r *Repository) loadLines(ctx context.Context, rc *store.Receipt) error {
	rows, err := r.db.QueryContext(ctx, `
    SELECT name, qty, unit_price, line_total
    FROM receipt_lines WHERE receipt_id=? ORDER BY position`, rc.ID.String())
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			l                    store.ReceiptLine
			unitPrice, lineTotal string
		)
		if err := rows.Scan(&l.Name, &l.Quantity, &unitPrice, &lineTotal); err != nil {
			return err
		}
		if l.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return err
		}
		if l.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return err
		}
		rc.Lines = append(rc.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	srows, err := r.db.QueryContext(ctx, `
    SELECT description, weight_kg
    FROM shipment_lines WHERE receipt_id=? ORDER BY position`, rc.ID.String())
	if err != nil {
		return err
	}
	defer srows.Close()
	for srows.Next() {
		var (
			l      store.ShipmentLine
			weight string
		)
		if err := srows.Scan(&l.Description, &weight); err != nil {
			return err
		}
		if l.WeightKg, err = decimal.NewFromString(weight); err != nil {
			return err
		}
		rc.Shipment.Lines = append(rc.Shipment.Lines, l)
	}
	return srows.Err()
}
