package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"firstseries/internal/delivery/http/helpers"
	"firstseries/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the API envelope and unmarshals data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}

type fakeAuthService struct {
	token        string
	admin        *domain.AdminUser
	err          error
	lastEmail    string
	lastPassword string
	lastCode     string
	lastSignOut  string
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (string, *domain.AdminUser, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.admin, nil
}

func (f *fakeAuthService) RequestLoginCode(_ context.Context, email string) error {
	f.lastEmail = email
	return f.err
}

func (f *fakeAuthService) VerifyLoginCode(_ context.Context, email, code string) (string, *domain.AdminUser, error) {
	f.lastEmail, f.lastCode = email, code
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.admin, nil
}

func (f *fakeAuthService) CheckSession(_ context.Context, _ string) (*domain.TokenClaims, error) {
	return nil, errors.New("not used")
}

func (f *fakeAuthService) SignOut(_ context.Context, sessionID string) error {
	f.lastSignOut = sessionID
	return f.err
}

func (f *fakeAuthService) CreateAdmin(_ context.Context, _, _, _ string) (*domain.AdminUser, error) {
	return nil, errors.New("not used")
}

type fakeSpeakerService struct {
	result     *domain.Speaker
	err        error
	lastID     string
	lastUpsert domain.SpeakerUpsert
	deletedID  string
}

func (f *fakeSpeakerService) Save(_ context.Context, id string, in domain.SpeakerUpsert) (*domain.Speaker, error) {
	f.lastID, f.lastUpsert = id, in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSpeakerService) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.err
}

type fakeSponsorService struct {
	result     *domain.Sponsor
	err        error
	lastID     string
	lastUpsert domain.SponsorUpsert
	deletedID  string
}

func (f *fakeSponsorService) Save(_ context.Context, id string, in domain.SponsorUpsert) (*domain.Sponsor, error) {
	f.lastID, f.lastUpsert = id, in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSponsorService) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.err
}

type fakeCatalogService struct {
	catalog *domain.Catalog
	err     error
}

func (f *fakeCatalogService) LoadAll(_ context.Context) (*domain.Catalog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

type fakeTableRenderer struct {
	err error
}

func (f *fakeTableRenderer) SpeakerTable(w io.Writer, c *domain.Catalog) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "<table class=\"speakers\"></table>")
	return err
}

func (f *fakeTableRenderer) SponsorTable(w io.Writer, c *domain.Catalog) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "<table class=\"sponsors\"></table>")
	return err
}

type fakeMediaService struct {
	result       *domain.UploadedMedia
	err          error
	lastKind     domain.MediaKind
	lastFilename string
	lastBody     []byte
	lastSize     int64
}

func (f *fakeMediaService) Upload(_ context.Context, kind domain.MediaKind, filename string, body io.Reader, size int64) (*domain.UploadedMedia, error) {
	f.lastKind, f.lastFilename, f.lastSize = kind, filename, size
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	f.lastBody = b
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeShowcaseService struct {
	series     []domain.Series
	speakers   []*domain.Speaker
	total      int
	groups     []domain.TierGroup
	err        error
	lastSlug   string
	lastParams domain.PaginationParams
}

func (f *fakeShowcaseService) ListSeries(_ context.Context) []domain.Series {
	return f.series
}

func (f *fakeShowcaseService) Lineup(_ context.Context, slug string, params domain.PaginationParams) ([]*domain.Speaker, int, error) {
	f.lastSlug, f.lastParams = slug, params
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.speakers, f.total, nil
}

func (f *fakeShowcaseService) SponsorWall(_ context.Context, slug string) ([]domain.TierGroup, error) {
	f.lastSlug = slug
	if f.err != nil {
		return nil, f.err
	}
	return f.groups, nil
}
