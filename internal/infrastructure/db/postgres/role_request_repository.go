package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

type RoleRequestRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRequestRepository(pool *pgxpool.Pool) *RoleRequestRepository {
	return &RoleRequestRepository{pool: pool}
}

const requestViewQuery = `
	SELECT r.id, r.user_id, r.requested_role, r.internal_role, r.status,
	       u.username, u.email, u.name, u.phone, u.org_name
	FROM role_upgrade_requests r
	JOIN users u ON u.id = r.user_id`

func (r *RoleRequestRepository) Create(ctx context.Context, req *domain.RoleUpgradeRequest) (*domain.RoleUpgradeRequest, error) {
	query := `
		INSERT INTO role_upgrade_requests (user_id, requested_role, internal_role, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	created := *req
	err := r.pool.QueryRow(ctx, query,
		req.UserID, req.RequestedRole, req.InternalRole, req.Status).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert role request: %w", err)
	}
	return &created, nil
}

func (r *RoleRequestRepository) FindByID(ctx context.Context, id int64) (*domain.RoleUpgradeRequest, error) {
	query := `
		SELECT id, user_id, requested_role, internal_role, status
		FROM role_upgrade_requests
		WHERE id = $1`

	var req domain.RoleUpgradeRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.RequestedRole, &req.InternalRole, &req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find role request: %w", err)
	}
	return &req, nil
}

func (r *RoleRequestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]ports.RoleRequestView, error) {
	rows, err := r.pool.Query(ctx, requestViewQuery+` WHERE r.status = $1 ORDER BY r.id`, status)
	if err != nil {
		return nil, fmt.Errorf("list role requests: %w", err)
	}
	defer rows.Close()

	return scanRequestViews(rows)
}

func (r *RoleRequestRepository) Search(ctx context.Context, term string) ([]ports.RoleRequestView, error) {
	pattern := "%" + term + "%"
	rows, err := r.pool.Query(ctx,
		requestViewQuery+` WHERE u.name ILIKE $1 OR u.email ILIKE $1 OR u.phone ILIKE $1 ORDER BY r.id`,
		pattern)
	if err != nil {
		return nil, fmt.Errorf("search role requests: %w", err)
	}
	defer rows.Close()

	return scanRequestViews(rows)
}

// Approve copies the requested role onto the owner and marks the request
// approved in one transaction, so a crash can never leave the two out of sync.
func (r *RoleRequestRepository) Approve(ctx context.Context, requestID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin approve: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE users u
		SET role = r.requested_role, updated_at = now()
		FROM role_upgrade_requests r
		WHERE r.id = $1 AND u.id = r.user_id`
	tag, err := tx.Exec(ctx, query, requestID)
	if err != nil {
		return fmt.Errorf("apply requested role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE role_upgrade_requests SET status = $2 WHERE id = $1`,
		requestID, domain.RequestApproved); err != nil {
		return fmt.Errorf("mark request approved: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit approve: %w", err)
	}
	return nil
}

func (r *RoleRequestRepository) Reject(ctx context.Context, requestID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE role_upgrade_requests SET status = $2 WHERE id = $1`,
		requestID, domain.RequestRejected)
	if err != nil {
		return fmt.Errorf("mark request rejected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func scanRequestViews(rows pgx.Rows) ([]ports.RoleRequestView, error) {
	var views []ports.RoleRequestView
	for rows.Next() {
		var v ports.RoleRequestView
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.RequestedRole, &v.InternalRole, &v.Status,
			&v.User.Username, &v.User.Email, &v.User.Name, &v.User.Phone, &v.User.OrgName,
		); err != nil {
			return nil, fmt.Errorf("scan role request row: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role request rows: %w", err)
	}
	return views, nil
}
