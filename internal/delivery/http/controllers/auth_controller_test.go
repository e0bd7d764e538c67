package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstseries/internal/delivery/http/helpers"
	"firstseries/internal/delivery/http/middleware"
	"firstseries/internal/domain"
)

func TestAuthController_Login(t *testing.T) {
	admin := &domain.AdminUser{ID: "adm-1", Email: "ops@firstseries.example", Name: "Ops"}
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"email":"ops@firstseries.example","password":"hunter22"}`,
			svc:        &fakeAuthService{token: "tok", admin: admin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       `{"email":"ops@firstseries.example"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"email":"a@b.co","password":"x","role":"admin"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "wrong password",
			body:       `{"email":"ops@firstseries.example","password":"nope"}`,
			svc:        &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "store failure",
			body:       `{"email":"ops@firstseries.example","password":"hunter22"}`,
			svc:        &fakeAuthService{err: fmt.Errorf("get admin: %w", assert.AnError)},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			c.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var data LoginResponse
			apiErr := decodeEnvelope(t, rr, &data)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "tok", data.Token)
			assert.Equal(t, "Bearer", data.TokenType)
			assert.Equal(t, "adm-1", data.Admin.ID)
			assert.Equal(t, "hunter22", tt.svc.lastPassword)
		})
	}
}

func TestAuthController_RequestLoginCode(t *testing.T) {
	svc := &fakeAuthService{}
	c := NewAuthController(testLogger, svc)
	req := httptest.NewRequest(http.MethodPost, "/admin/login/code", strings.NewReader(`{"email":"ops@firstseries.example"}`))
	rr := httptest.NewRecorder()

	c.RequestLoginCode(rr, req)

	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "ops@firstseries.example", svc.lastEmail)

	svc.err = fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	req = httptest.NewRequest(http.MethodPost, "/admin/login/code", strings.NewReader(`{"email":"nope"}`))
	rr = httptest.NewRecorder()
	c.RequestLoginCode(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthController_VerifyLoginCode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"success", `{"email":"ops@firstseries.example","code":"123456"}`, nil, http.StatusOK},
		{"missing code", `{"email":"ops@firstseries.example"}`, nil, http.StatusBadRequest},
		{"expired code", `{"email":"ops@firstseries.example","code":"000000"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{token: "tok", admin: &domain.AdminUser{ID: "adm-1"}, err: tt.err}
			c := NewAuthController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/admin/login/code/verify", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			c.VerifyLoginCode(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "123456", svc.lastCode)
			}
		})
	}
}

func TestAuthController_SessionAndLogout(t *testing.T) {
	claims := &domain.TokenClaims{SessionID: "sess-1", AdminID: "adm-1", Email: "ops@firstseries.example"}

	t.Run("session without claims", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})
		rr := httptest.NewRecorder()
		c.Session(rr, httptest.NewRequest(http.MethodGet, "/admin/session", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("session with claims", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})
		req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
		req = req.WithContext(middleware.SetSession(req.Context(), claims))
		rr := httptest.NewRecorder()

		c.Session(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var data SessionResponse
		require.Nil(t, decodeEnvelope(t, rr, &data))
		assert.Equal(t, SessionResponse{SessionID: "sess-1", AdminID: "adm-1", Email: "ops@firstseries.example"}, data)
	})

	t.Run("logout deletes the session", func(t *testing.T) {
		svc := &fakeAuthService{}
		c := NewAuthController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
		req = req.WithContext(middleware.SetSession(req.Context(), claims))
		rr := httptest.NewRecorder()

		c.Logout(rr, req)

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "sess-1", svc.lastSignOut)
	})

	t.Run("logout failure", func(t *testing.T) {
		svc := &fakeAuthService{err: assert.AnError}
		c := NewAuthController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
		req = req.WithContext(middleware.SetSession(req.Context(), claims))
		rr := httptest.NewRecorder()

		c.Logout(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
