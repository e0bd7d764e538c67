package postgres

import (
	"context"
	"database/sql"

	"firstseries/internal/domain"
)

type adminSessionRepository struct {
	DB *sql.DB
}

// NewAdminSessionRepository returns a domain.AdminSessionRepository implemented with Postgres.
func NewAdminSessionRepository(db *sql.DB) domain.AdminSessionRepository {
	return &adminSessionRepository{DB: db}
}

func (r *adminSessionRepository) Create(ctx context.Context, s *domain.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (id, admin_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.AdminID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *adminSessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admin_sessions WHERE id = $1 AND expires_at > NOW())`
	if err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *adminSessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = $1`, sessionID)
	return err
}
