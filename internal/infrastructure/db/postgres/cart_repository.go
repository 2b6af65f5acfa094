package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) Create(ctx context.Context, s *domain.CartSubmission) (*domain.CartSubmission, error) {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal cart items: %w", err)
	}

	query := `
		INSERT INTO cart_submissions (user_id, status, cart_items)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	created := *s
	err = r.pool.QueryRow(ctx, query, s.UserID, s.Status, items).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert cart submission: %w", err)
	}
	return &created, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id int64) (*domain.CartSubmission, error) {
	query := `
		SELECT id, user_id, status, cart_items, created_at
		FROM cart_submissions
		WHERE id = $1`

	var sub domain.CartSubmission
	var items []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.UserID, &sub.Status, &items, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find cart submission: %w", err)
	}

	if err := json.Unmarshal(items, &sub.Items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return &sub, nil
}

func (r *CartRepository) List(ctx context.Context, status domain.SubmissionStatus) ([]ports.SubmissionView, error) {
	query := `
		SELECT s.id, s.status, s.cart_items, s.created_at,
		       u.username, u.email, u.name, u.phone, u.org_name
		FROM cart_submissions s
		JOIN users u ON u.id = s.user_id`
	args := []any{}
	if status != "" {
		query += ` WHERE s.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cart submissions: %w", err)
	}
	defer rows.Close()

	var views []ports.SubmissionView
	for rows.Next() {
		var v ports.SubmissionView
		var items []byte
		if err := rows.Scan(
			&v.ID, &v.Status, &items, &v.CreatedAt,
			&v.User.Username, &v.User.Email, &v.User.Name, &v.User.Phone, &v.User.OrgName,
		); err != nil {
			return nil, fmt.Errorf("scan cart submission row: %w", err)
		}
		if err := json.Unmarshal(items, &v.Items); err != nil {
			return nil, fmt.Errorf("unmarshal cart items: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart submission rows: %w", err)
	}
	return views, nil
}

func (r *CartRepository) SetStatus(ctx context.Context, id int64, status domain.SubmissionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_submissions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}
