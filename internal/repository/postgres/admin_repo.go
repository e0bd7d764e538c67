package postgres

import (
	"context"
	"database/sql"
	"errors"

	"firstseries/internal/domain"
)

type adminRepository struct {
	DB *sql.DB
}

// NewAdminRepository returns a domain.AdminRepository implemented with Postgres.
func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{DB: db}
}

func (r *adminRepository) Create(ctx context.Context, a *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, password_hash, salt, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.Email, a.PasswordHash, a.Salt, a.Name, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	return mapPQError(err)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, salt, name, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, salt, name, created_at, updated_at
		FROM admin_users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *adminRepository) getOne(ctx context.Context, query string, arg any) (*domain.AdminUser, error) {
	a := &domain.AdminUser{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Salt, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapPQError(err)
	}
	return a, nil
}
