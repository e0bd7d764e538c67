package domain

import (
	"context"
	"time"
)

// AdminUser is a back-office account. Any admin has full access.
// swagger:model AdminUser
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminSession is a signed-in admin session. The token carries its ID.
type AdminSession struct {
	ID        string
	AdminID   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenClaims is what a verified session token asserts.
type TokenClaims struct {
	SessionID string
	AdminID   string
	Email     string
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed session tokens.
type TokenIssuer interface {
	Issue(sessionID, adminID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token signature and expiry.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// AdminRepository defines storage for admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *AdminUser) error
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	GetByID(ctx context.Context, id string) (*AdminUser, error)
}

// AdminSessionRepository stores live sessions. Signing out deletes the row.
type AdminSessionRepository interface {
	Create(ctx context.Context, session *AdminSession) error
	// Exists reports whether the session is present and unexpired.
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// LoginCodeRepository defines the interface for one-time login code storage.
type LoginCodeRepository interface {
	Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	Consume(ctx context.Context, email, codeHash string) (consumed bool, err error)
}

// AuthService is the admin session boundary: sign in, check, sign out.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, admin *AdminUser, err error)
	RequestLoginCode(ctx context.Context, email string) error
	VerifyLoginCode(ctx context.Context, email, code string) (token string, admin *AdminUser, err error)
	// CheckSession returns the admin behind a live session token.
	CheckSession(ctx context.Context, token string) (*TokenClaims, error)
	SignOut(ctx context.Context, sessionID string) error
	CreateAdmin(ctx context.Context, email, name, password string) (*AdminUser, error)
}
