package order

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wardrobe-storefront/internal/db"
	"wardrobe-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create stores the order and its lines in one transaction. The order total
// is recomputed from the stored lines.
func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if len(o.Lines) == 0 {
		return nil, domain.Invalid("order has no lines")
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = domain.OrderPending
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO orders (id, session_id, status, currency, total, delivery_address)
VALUES ($1, $2, $3, $4, 0, $5)
`, o.ID, o.SessionID, string(o.Status), o.Currency, o.DeliveryAddress); err != nil {
		r.logger.Printf("order repo: insert session_id=%s error=%v", o.SessionID, err)
		return nil, err
	}

	for i := range o.Lines {
		line := &o.Lines[i]
		if line.ID == "" {
			line.ID = uuid.NewString()
		}
		line.OrderID = o.ID
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (id, order_id, product_id, type, quantity, delivery_date, return_date, rent_days,
                         unit_price, deposit, total, snapshot)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10::numeric, $11::numeric, COALESCE($12, '{}'::jsonb))
`,
			line.ID, o.ID, line.ProductID, string(line.Type), line.Quantity,
			line.DeliveryDate, line.ReturnDate, line.RentDays,
			line.UnitPrice.String(), line.Deposit.String(), line.Total.String(), line.Snapshot,
		); err != nil {
			r.logger.Printf("order repo: insert line order_id=%s product_id=%s error=%v", o.ID, line.ProductID, err)
			return nil, err
		}
	}

	if err := updateOrderTotal(ctx, tx, o.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s session_id=%s lines=%d", o.ID, o.SessionID, len(o.Lines))
	return r.fetchOrder(ctx, `WHERE id = $1`, o.ID)
}

func (r *postgresRepo) GetByID(ctx context.Context, sessionID, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return r.fetchOrder(ctx, `WHERE session_id = $1 AND id = $2`, sessionID, id)
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id::text FROM orders WHERE session_id = $1 ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	result := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.fetchOrder(ctx, `WHERE id = $1`, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, nil
}

func (r *postgresRepo) fetchOrder(ctx context.Context, where string, args ...interface{}) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
		total  string
	)
	err := r.pool.QueryRow(ctx, `
SELECT id::text, session_id, status, currency, total::text, delivery_address, created_at
FROM orders
`+where, args...).Scan(&o.ID, &o.SessionID, &status, &o.Currency, &total, &o.DeliveryAddress, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	if o.Total, err = db.Numeric(total); err != nil {
		return nil, err
	}

	const linesQuery = `
SELECT id::text, order_id::text, product_id, type, quantity, delivery_date, return_date, rent_days,
       unit_price::text, deposit::text, total::text, snapshot, created_at
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line                    domain.OrderLine
			lineType                string
			delivery, ret           *time.Time
			unitPrice, deposit, sum string
		)
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&lineType,
			&line.Quantity,
			&delivery,
			&ret,
			&line.RentDays,
			&unitPrice,
			&deposit,
			&sum,
			&line.Snapshot,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		line.Type = domain.TransactionType(lineType)
		line.DeliveryDate, line.ReturnDate = delivery, ret
		if line.UnitPrice, err = db.Numeric(unitPrice); err != nil {
			return nil, err
		}
		if line.Deposit, err = db.Numeric(deposit); err != nil {
			return nil, err
		}
		if line.Total, err = db.Numeric(sum); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func updateOrderTotal(ctx context.Context, tx pgx.Tx, orderID string) error {
	_, err := tx.Exec(ctx, `
UPDATE orders
SET total = COALESCE((
	SELECT SUM(total)
	FROM order_lines
	WHERE order_id = $1
), 0)
WHERE id = $1
`, orderID)
	return err
}
