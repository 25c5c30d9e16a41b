package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool used by the storage, extracted so the
// mock pool can stand in during tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type eventRepository struct {
	storage *Storage
}

type promotionRepository struct {
	storage *Storage
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Events() repository.POSEventRepository {
	return &eventRepository{storage: s}
}

func (s *Storage) Promotions() repository.PromotionRepository {
	return &promotionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            user_id TEXT NOT NULL,
            items JSONB NOT NULL,
            order_type TEXT NOT NULL,
            delivery_address JSONB,
            subtotal DOUBLE PRECISION NOT NULL,
            tax DOUBLE PRECISION NOT NULL,
            delivery_fee DOUBLE PRECISION NOT NULL,
            discount DOUBLE PRECISION NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            transaction_id TEXT NOT NULL DEFAULT '',
            promo_code TEXT NOT NULL DEFAULT '',
            is_synced BOOLEAN NOT NULL DEFAULT FALSE,
            pos_order_id TEXT NOT NULL DEFAULT '',
            last_sync_attempt TIMESTAMPTZ,
            last_successful_sync TIMESTAMPTZ,
            sync_error TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            completed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS pos_events (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL,
            event_type TEXT NOT NULL,
            payload JSONB NOT NULL,
            status TEXT NOT NULL,
            retry_count INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL,
            sent_at TIMESTAMPTZ,
            error TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS promotions (
            id TEXT PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            discount_type TEXT NOT NULL,
            discount_value DOUBLE PRECISION NOT NULL,
            min_order_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            max_discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            valid_from TIMESTAMPTZ NOT NULL,
            valid_until TIMESTAMPTZ NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            usage_limit INT NOT NULL DEFAULT 0,
            used_count INT NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_pos_events_order ON pos_events(order_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_pos_events_status ON pos_events(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, order_number, user_id, items, order_type, delivery_address,
    subtotal, tax, delivery_fee, discount, total, status, payment_status,
    transaction_id, promo_code, is_synced, pos_order_id, last_sync_attempt,
    last_successful_sync, sync_error, created_at, updated_at, completed_at`

func (r *orderRepository) Put(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	var address []byte
	if order.Address != nil {
		if address, err = json.Marshal(order.Address); err != nil {
			return fmt.Errorf("marshal address: %w", err)
		}
	}

	const query = `INSERT INTO orders (` + orderColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
        ON CONFLICT (id) DO UPDATE SET
            status=EXCLUDED.status,
            payment_status=EXCLUDED.payment_status,
            is_synced=EXCLUDED.is_synced,
            pos_order_id=EXCLUDED.pos_order_id,
            last_sync_attempt=EXCLUDED.last_sync_attempt,
            last_successful_sync=EXCLUDED.last_successful_sync,
            sync_error=EXCLUDED.sync_error,
            updated_at=EXCLUDED.updated_at,
            completed_at=EXCLUDED.completed_at`

	_, err = r.storage.pool.Exec(ctx, query,
		order.ID, order.OrderNumber, order.UserID, items, order.OrderType, address,
		order.Subtotal, order.Tax, order.DeliveryFee, order.Discount, order.Total,
		order.Status, order.PaymentStatus, order.TransactionID, order.PromoCode,
		order.SyncStatus.IsSynced, order.SyncStatus.PosOrderID,
		order.SyncStatus.LastSyncAttempt, order.SyncStatus.LastSuccessfulSync,
		order.SyncStatus.Error, order.CreatedAt, order.UpdatedAt, order.CompletedAt,
	)
	return err
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	events, err := r.storage.Events().ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.SyncStatus.Events = events
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order   model.Order
		items   []byte
		address []byte
	)
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.UserID, &items, &order.OrderType, &address,
		&order.Subtotal, &order.Tax, &order.DeliveryFee, &order.Discount, &order.Total,
		&order.Status, &order.PaymentStatus, &order.TransactionID, &order.PromoCode,
		&order.SyncStatus.IsSynced, &order.SyncStatus.PosOrderID,
		&order.SyncStatus.LastSyncAttempt, &order.SyncStatus.LastSuccessfulSync,
		&order.SyncStatus.Error, &order.CreatedAt, &order.UpdatedAt, &order.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if len(address) > 0 {
		order.Address = &model.Address{}
		if err := json.Unmarshal(address, order.Address); err != nil {
			return nil, fmt.Errorf("unmarshal address: %w", err)
		}
	}
	return &order, nil
}

// --- POSEventRepository implementation ---

const eventColumns = `id, order_id, event_type, payload, status, retry_count, created_at, sent_at, error`

func (r *eventRepository) Append(ctx context.Context, event *model.POSEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	const query = `INSERT INTO pos_events (` + eventColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err = r.storage.pool.Exec(ctx, query,
		event.ID, event.OrderID, event.EventType, payload,
		event.Status, event.RetryCount, event.CreatedAt, event.SentAt, event.Error,
	)
	return err
}

func (r *eventRepository) Update(ctx context.Context, event *model.POSEvent) error {
	const query = `UPDATE pos_events SET status=$1, retry_count=$2, sent_at=$3, error=$4 WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query,
		event.Status, event.RetryCount, event.SentAt, event.Error, event.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListByOrder(ctx context.Context, orderID string) ([]model.POSEvent, error) {
	const query = `SELECT ` + eventColumns + ` FROM pos_events WHERE order_id=$1 ORDER BY created_at`
	return r.list(ctx, query, orderID)
}

func (r *eventRepository) ListPending(ctx context.Context) ([]model.POSEvent, error) {
	const query = `SELECT ` + eventColumns + ` FROM pos_events WHERE status='pending' ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]model.POSEvent, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.POSEvent
	for rows.Next() {
		var (
			event   model.POSEvent
			payload []byte
		)
		if err := rows.Scan(&event.ID, &event.OrderID, &event.EventType, &payload,
			&event.Status, &event.RetryCount, &event.CreatedAt, &event.SentAt, &event.Error); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &event.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload: %w", err)
		}
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PromotionRepository implementation ---

func (r *promotionRepository) Create(ctx context.Context, promo *model.Promotion) error {
	const query = `INSERT INTO promotions (id, code, name, discount_type, discount_value,
        min_order_amount, max_discount_amount, valid_from, valid_until, is_active, usage_limit, used_count)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.storage.pool.Exec(ctx, query,
		promo.ID, promo.Code, promo.Name, promo.DiscountType, promo.DiscountValue,
		promo.MinOrderAmount, promo.MaxDiscountAmount, promo.ValidFrom, promo.ValidUntil,
		promo.IsActive, promo.UsageLimit, promo.UsedCount,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*model.Promotion, error) {
	const query = `SELECT id, code, name, discount_type, discount_value, min_order_amount,
        max_discount_amount, valid_from, valid_until, is_active, usage_limit, used_count
        FROM promotions WHERE code=$1`
	var p model.Promotion
	err := r.storage.pool.QueryRow(ctx, query, code).Scan(
		&p.ID, &p.Code, &p.Name, &p.DiscountType, &p.DiscountValue, &p.MinOrderAmount,
		&p.MaxDiscountAmount, &p.ValidFrom, &p.ValidUntil, &p.IsActive, &p.UsageLimit, &p.UsedCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *promotionRepository) IncrementUsage(ctx context.Context, id string) error {
	const query = `UPDATE promotions SET used_count = used_count + 1 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
