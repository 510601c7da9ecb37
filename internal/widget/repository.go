package widget

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles widget persistence
// ⭐ SSOT: widgets 테이블 접근은 이 타입에서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new widget repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const widgetColumns = `id, user_id, name, type, config, layout, created_at, updated_at`

func scanWidget(row pgx.Row) (*Widget, error) {
	w := &Widget{}
	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Type,
		&w.Config,
		&w.Layout,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ListByUser retrieves all widgets owned by a user, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Widget, error) {
	query := fmt.Sprintf(`SELECT %s FROM widgets WHERE user_id = $1 ORDER BY id`, widgetColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}
	defer rows.Close()

	widgets := make([]*Widget, 0)
	for rows.Next() {
		w, err := scanWidget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan widget: %w", err)
		}
		widgets = append(widgets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}

	return widgets, nil
}

// Create inserts a widget for the given owner.
func (r *Repository) Create(ctx context.Context, userID int64, input CreateInput) (*Widget, error) {
	widgetType := input.Type
	if widgetType == "" {
		widgetType = "default"
	}

	query := fmt.Sprintf(`
		INSERT INTO widgets (user_id, name, type, config, layout)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, widgetColumns)

	w, err := scanWidget(r.pool.QueryRow(ctx, query, userID, input.Name, widgetType, input.Config, input.Layout))
	if err != nil {
		return nil, fmt.Errorf("create widget: %w", err)
	}
	return w, nil
}

// GetByID retrieves a widget by id, scoped to its owner. A widget that
// exists but belongs to another user is ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, userID, id int64) (*Widget, error) {
	query := fmt.Sprintf(`SELECT %s FROM widgets WHERE id = $1 AND user_id = $2`, widgetColumns)

	w, err := scanWidget(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get widget: %w", err)
	}
	return w, nil
}

// Update applies a partial update to an owned widget.
func (r *Repository) Update(ctx context.Context, userID, id int64, input UpdateInput) (*Widget, error) {
	query := fmt.Sprintf(`
		UPDATE widgets SET
			name = COALESCE($3, name),
			type = COALESCE($4, type),
			config = COALESCE($5, config),
			layout = COALESCE($6, layout),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, widgetColumns)

	w, err := scanWidget(r.pool.QueryRow(ctx, query, id, userID, input.Name, input.Type, input.Config, input.Layout))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update widget: %w", err)
	}
	return w, nil
}

// Delete removes an owned widget.
func (r *Repository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM widgets WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete widget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByUser removes every widget the user owns and reports how
// many were removed.
func (r *Repository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM widgets WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all widgets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateLayouts saves new layout documents for a batch of owned widgets.
// Ids that do not exist or belong to another user are skipped, and the
// number of widgets actually updated is returned.
func (r *Repository) UpdateLayouts(ctx context.Context, userID int64, layouts map[int64]string) (int64, error) {
	var updated int64
	for id, layout := range layouts {
		query := `UPDATE widgets SET layout = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`

		tag, err := r.pool.Exec(ctx, query, id, userID, layout)
		if err != nil {
			return updated, fmt.Errorf("update widget layout: %w", err)
		}
		updated += tag.RowsAffected()
	}
	return updated, nil
}
