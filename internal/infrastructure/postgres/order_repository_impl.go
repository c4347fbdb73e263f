package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order and its items in a single transaction.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, o.UserID, o.TotalAmount, string(o.Status))
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, position, menu_item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, i, it.MenuItemID, it.Quantity, it.UnitPrice)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListByUser returns the user's orders, newest first, with every item's
// menu reference joined against the current catalog.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	out := make([]entity.Order, 0)
	if !isUUID(userID) {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, total_amount, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	for rows.Next() {
		var o entity.Order
		var status string
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &status, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		o.Status = entity.OrderStatus(status)
		o.Items = []entity.OrderItem{}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT oi.order_id, oi.menu_item_id, oi.quantity, oi.unit_price,
		       m.id, m.name, m.category, m.price, m.availability, m.image_url, m.created_at, m.updated_at
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE o.user_id = $1
		ORDER BY oi.order_id, oi.position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID string
			it      entity.OrderItem
			mID     *string
			mName   *string
			mCat    *string
			mPrice  *float64
			mAvail  *bool
			mImage  *string
			mCreate *time.Time
			mUpdate *time.Time
		)
		if err := itemRows.Scan(&orderID, &it.MenuItemID, &it.Quantity, &it.UnitPrice,
			&mID, &mName, &mCat, &mPrice, &mAvail, &mImage, &mCreate, &mUpdate); err != nil {
			return nil, err
		}
		if mID != nil {
			it.MenuItem = &entity.MenuItem{
				ID:           *mID,
				Name:         *mName,
				Category:     *mCat,
				Price:        *mPrice,
				Availability: *mAvail,
				ImageURL:     *mImage,
				CreatedAt:    *mCreate,
				UpdatedAt:    *mUpdate,
			}
		}
		if i, ok := index[orderID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
