package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
)

const menuColumns = `id, name, category, price, availability, image_url, created_at, updated_at`

type MenuRepository struct {
	pool *pgxpool.Pool
}

func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

// isUUID reports whether id can be compared against a UUID column. Anything
// else can never match a row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func scanMenuItem(row pgx.Row) (*entity.MenuItem, error) {
	m := &entity.MenuItem{}
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Availability, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MenuRepository) Create(ctx context.Context, m *entity.MenuItem) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, category, price, availability, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, price, created_at, updated_at
	`, m.Name, m.Category, m.Price, m.Availability, m.ImageURL)

	return row.Scan(&m.ID, &m.Price, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	return scanMenuItem(r.pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
}

func (r *MenuRepository) List(ctx context.Context) ([]entity.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MenuRepository) Update(ctx context.Context, id string, patch entity.MenuItemPatch) (*entity.MenuItem, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m, err := scanMenuItem(tx.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	patch.Apply(m)

	row := tx.QueryRow(ctx, `
		UPDATE menu_items
		SET name = $1, category = $2, price = $3, availability = $4, image_url = $5, updated_at = now()
		WHERE id = $6
		RETURNING price, updated_at
	`, m.Name, m.Category, m.Price, m.Availability, m.ImageURL, id)
	if err := row.Scan(&m.Price, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.MenuRepository = (*MenuRepository)(nil)
