package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstseries/internal/domain"
)

type authFixture struct {
	admins   *fakeAdminRepo
	sessions *fakeSessionRepo
	codes    *fakeLoginCodeRepo
	tokens   *fakeTokens
	email    *fakeEmailService
	svc      domain.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		admins:   newFakeAdminRepo(),
		sessions: newFakeSessionRepo(),
		codes:    newFakeLoginCodeRepo(),
		tokens:   newFakeTokens(),
		email:    &fakeEmailService{},
	}
	f.svc = NewAuthService(AuthDeps{
		Admins:       f.admins,
		Sessions:     f.sessions,
		LoginCodes:   f.codes,
		Hasher:       fakePasswordHasher{},
		Issuer:       f.tokens,
		Verifier:     f.tokens,
		EmailService: f.email,
	}, time.Hour, testTimeout)
	_, err := f.svc.CreateAdmin(context.Background(), "Ops@FirstSeries.example", "Ops Team", "correct-horse")
	require.NoError(t, err)
	return f
}

func TestAuthService_CreateAdmin(t *testing.T) {
	f := newAuthFixture(t)
	a := f.admins.byEmail["ops@firstseries.example"]
	require.NotNil(t, a)
	assert.Equal(t, "Ops Team", a.Name)
	assert.Equal(t, "salt", a.Salt)
	assert.Equal(t, "hash-saltcorrect-horse", a.PasswordHash)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "bad email", email: "ops", password: "long-enough", wantErr: domain.ErrInvalidInput},
		{name: "short password", email: "x@firstseries.example", password: "short", wantErr: domain.ErrInvalidInput},
		{name: "duplicate", email: "ops@firstseries.example", password: "long-enough", wantErr: domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateAdmin(context.Background(), tt.email, "", tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_LoginAndCheckSession(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	token, admin, err := f.svc.Login(ctx, " OPS@firstseries.example ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "adm-ops@firstseries.example", admin.ID)
	require.Len(t, f.sessions.sessions, 1)

	claims, err := f.svc.CheckSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, "ops@firstseries.example", claims.Email)

	require.NoError(t, f.svc.SignOut(ctx, claims.SessionID))
	_, err = f.svc.CheckSession(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, _, err := f.svc.Login(ctx, "ops@firstseries.example", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = f.svc.Login(ctx, "nobody@firstseries.example", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	f.admins.getErr = errors.New("db down")
	_, _, err = f.svc.Login(ctx, "ops@firstseries.example", "correct-horse")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.Empty(t, f.sessions.sessions)
}

func TestAuthService_CheckSession(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.svc.CheckSession(ctx, "forged")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	token, _, err := f.svc.Login(ctx, "ops@firstseries.example", "correct-horse")
	require.NoError(t, err)
	for _, s := range f.sessions.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	}
	_, err = f.svc.CheckSession(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_LoginCodeFlow(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	require.NoError(t, f.svc.RequestLoginCode(ctx, "ops@firstseries.example"))
	require.Len(t, f.email.sent, 1)
	sent := f.email.sent[0]
	assert.Equal(t, "Ops Team", sent.Name)
	assert.Equal(t, loginCodeExpiryMins, sent.ExpiresInMinutes)
	assert.Regexp(t, `^\d{6}$`, sent.Code)

	token, admin, err := f.svc.VerifyLoginCode(ctx, "ops@firstseries.example", sent.Code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ops Team", admin.Name)

	_, _, err = f.svc.VerifyLoginCode(ctx, "ops@firstseries.example", sent.Code)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "a code works once")
}

func TestAuthService_RequestLoginCodeUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.svc.RequestLoginCode(context.Background(), "stranger@firstseries.example"))
	assert.Empty(t, f.email.sent)
	assert.Empty(t, f.codes.codes)

	err := f.svc.RequestLoginCode(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_VerifyLoginCodeRejectsMalformed(t *testing.T) {
	f := newAuthFixture(t)
	_, _, err := f.svc.VerifyLoginCode(context.Background(), "ops@firstseries.example", "12ab56")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestHashLoginCode(t *testing.T) {
	assert.Equal(t, hashLoginCode("123456"), hashLoginCode("123456"))
	assert.NotEqual(t, hashLoginCode("123456"), hashLoginCode("123457"))
	assert.Len(t, hashLoginCode("000000"), 64)
}
