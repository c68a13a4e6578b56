// Package sqlite provides a SQLite-backed implementation of store.Repository.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa — important because the kitchen dashboard polls order state while
// staff handlers are writing transitions.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"

	// Register the pure-Go SQLite driver.
	// modernc.org/sqlite avoids CGO, which keeps the Docker (Alpine)
	// build simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    -- UUID assigned by the lifecycle service.
    id              TEXT PRIMARY KEY,

    -- Human-readable number, e.g. "DB-20260831-004". Unique per order.
    order_number    TEXT NOT NULL UNIQUE,

    -- CakeConfiguration serialized as JSON. The Go type is a closed
    -- struct validated at the creation boundary, so the column round-trips
    -- exactly.
    cake_config     TEXT NOT NULL,

    -- Whole currency units, computed once at creation.
    total_amount    INTEGER NOT NULL,

    status          TEXT NOT NULL,
    payment_status  TEXT NOT NULL,

    delivery_date          TEXT NOT NULL,
    delivery_time_window   TEXT NOT NULL DEFAULT '',
    delivery_address       TEXT NOT NULL DEFAULT '',
    special_instructions   TEXT NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT (SQLite idiom).
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at);

-- Append-only audit trail: one row per status transition or staff note.
-- Rows are never updated or deleted.
CREATE TABLE IF NOT EXISTS order_events (
    id                    TEXT PRIMARY KEY,
    order_id              TEXT NOT NULL REFERENCES orders(id),
    event_type            TEXT NOT NULL,
    description           TEXT NOT NULL,
    notes                 TEXT NOT NULL DEFAULT '',
    estimated_completion  TEXT,
    actual_completion     TEXT,

    -- W3C trace/span ids from the active OTel span, for jumping from an
    -- audit row to the full trace.
    trace_id              TEXT NOT NULL DEFAULT '',
    span_id               TEXT NOT NULL DEFAULT '',

    created_at            TEXT NOT NULL,
    created_by            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_events_order_id ON order_events(order_id, created_at);

-- Per-day sequence backing the human-readable order numbers.
CREATE TABLE IF NOT EXISTS order_number_seq (
    day  TEXT PRIMARY KEY,
    seq  INTEGER NOT NULL
);
`

// Repository is the SQLite implementation of store.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema. WAL mode is enabled for better concurrent read/write
// performance.
//
//	repo, err := sqlite.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver uses _pragma query parameters to configure
	// connection state. busy_timeout waits for locks instead of failing
	// immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3" for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	cfg, err := json.Marshal(order.CakeConfig)
	if err != nil {
		return fmt.Errorf("sqlite: marshal cake config: %w", err)
	}

	const q = `
		INSERT INTO orders
			(id, order_number, cake_config, total_amount, status, payment_status,
			 delivery_date, delivery_time_window, delivery_address, special_instructions,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, q,
		order.ID,
		order.OrderNumber,
		string(cfg),
		int64(order.TotalAmount),
		string(order.Status),
		string(order.PaymentStatus),
		formatTime(order.Delivery.Date),
		order.Delivery.TimeWindow,
		order.Delivery.Address,
		order.Delivery.SpecialInstructions,
		formatTime(order.CreatedAt),
		formatTime(order.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create order %q: %w", order.ID, err)
	}
	return nil
}

const orderColumns = `id, order_number, cake_config, total_amount, status, payment_status,
	delivery_date, delivery_time_window, delivery_address, special_instructions,
	created_at, updated_at`

func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	order, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %q: %w", id, err)
	}
	return order, nil
}

func (r *Repository) ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list orders: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	return orders, nil
}

// SetStatus updates the order row and inserts the transition event in one
// transaction, so a crash can never leave the status changed without its
// audit entry.
func (r *Repository) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedAt time.Time, event *domain.OrderEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin status tx for %q: %w", orderID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(updatedAt), orderID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update status for %q: %w", orderID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound
	}

	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit status tx for %q: %w", orderID, err)
	}
	return nil
}

func (r *Repository) SetPaymentStatus(ctx context.Context, orderID string, payment domain.PaymentStatus, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = ?, updated_at = ? WHERE id = ?`,
		string(payment), formatTime(updatedAt), orderID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update payment status for %q: %w", orderID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *Repository) AppendEvent(ctx context.Context, event *domain.OrderEvent) error {
	return insertEvent(ctx, r.db, event)
}

func (r *Repository) ListEvents(ctx context.Context, orderID string) ([]domain.OrderEvent, error) {
	const q = `
		SELECT id, order_id, event_type, description, notes,
		       estimated_completion, actual_completion, trace_id, span_id,
		       created_at, created_by
		FROM   order_events
		WHERE  order_id = ?
		ORDER  BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list events for %q: %w", orderID, err)
	}
	defer rows.Close()

	var events []domain.OrderEvent
	for rows.Next() {
		var ev domain.OrderEvent
		var est, act sql.NullString
		var createdAt string
		err := rows.Scan(
			&ev.ID,
			&ev.OrderID,
			&ev.EventType,
			&ev.Description,
			&ev.Notes,
			&est,
			&act,
			&ev.TraceID,
			&ev.SpanID,
			&createdAt,
			&ev.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan event for %q: %w", orderID, err)
		}
		if ev.CreatedAt, err = parseRFC3339(createdAt); err != nil {
			return nil, err
		}
		if ev.EstimatedCompletion, err = parseOptionalTime(est); err != nil {
			return nil, err
		}
		if ev.ActualCompletion, err = parseOptionalTime(act); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list events for %q: %w", orderID, err)
	}
	return events, nil
}

// NextOrderSeq bumps and returns the per-day counter in one statement.
// The upsert makes concurrent callers serialize on the row instead of
// racing a read-then-write.
func (r *Repository) NextOrderSeq(ctx context.Context, day string) (int64, error) {
	const q = `
		INSERT INTO order_number_seq(day, seq) VALUES (?, 1)
		ON CONFLICT(day) DO UPDATE SET seq = seq + 1
		RETURNING seq`

	var seq int64
	if err := r.db.QueryRowContext(ctx, q, day).Scan(&seq); err != nil {
		return 0, fmt.Errorf("sqlite: next order seq for %s: %w", day, err)
	}
	return seq, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx so insertEvent can run
// standalone (manual notes) or inside the SetStatus transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertEvent(ctx context.Context, db execer, event *domain.OrderEvent) error {
	const q = `
		INSERT INTO order_events
			(id, order_id, event_type, description, notes,
			 estimated_completion, actual_completion, trace_id, span_id,
			 created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, q,
		event.ID,
		event.OrderID,
		event.EventType,
		event.Description,
		event.Notes,
		formatOptionalTime(event.EstimatedCompletion),
		formatOptionalTime(event.ActualCompletion),
		event.TraceID,
		event.SpanID,
		formatTime(event.CreatedAt),
		event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("sqlite: append event for %q: %w", event.OrderID, err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var cfg string
	var deliveryDate, createdAt, updatedAt string

	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&cfg,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentStatus,
		&deliveryDate,
		&order.Delivery.TimeWindow,
		&order.Delivery.Address,
		&order.Delivery.SpecialInstructions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(cfg), &order.CakeConfig); err != nil {
		return nil, fmt.Errorf("sqlite: unmarshal cake config for %q: %w", order.ID, err)
	}
	if order.Delivery.Date, err = parseRFC3339(deliveryDate); err != nil {
		return nil, err
	}
	if order.CreatedAt, err = parseRFC3339(createdAt); err != nil {
		return nil, err
	}
	if order.UpdatedAt, err = parseRFC3339(updatedAt); err != nil {
		return nil, err
	}
	return &order, nil
}
