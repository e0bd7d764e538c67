package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"firstseries/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testTimeout = 5 * time.Second

// fakeSpeakerRepo implements domain.SpeakerRepository in memory.
type fakeSpeakerRepo struct {
	speakers map[string]*domain.Speaker
	series   map[string][]domain.SeriesSlug
	calls    []string
	nextID   int

	listErr      error
	seriesErr    error
	associateErr error
	deleteErr    error
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{
		speakers: make(map[string]*domain.Speaker),
		series:   make(map[string][]domain.SeriesSlug),
	}
}

func (f *fakeSpeakerRepo) List(ctx context.Context) ([]*domain.Speaker, error) {
	f.calls = append(f.calls, "List")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Speaker, 0, len(f.speakers))
	for _, s := range f.speakers {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeSpeakerRepo) ListSeries(ctx context.Context) ([]domain.SpeakerSeries, error) {
	f.calls = append(f.calls, "ListSeries")
	if f.seriesErr != nil {
		return nil, f.seriesErr
	}
	ids := make([]string, 0, len(f.series))
	for id := range f.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.SpeakerSeries, 0)
	for _, id := range ids {
		for _, slug := range f.series[id] {
			out = append(out, domain.SpeakerSeries{SpeakerID: id, Series: slug})
		}
	}
	return out, nil
}

func (f *fakeSpeakerRepo) CreateWithSeries(ctx context.Context, s *domain.Speaker, series []domain.SeriesSlug) error {
	f.calls = append(f.calls, "CreateWithSeries")
	if f.associateErr != nil {
		return fmt.Errorf("insert speaker series: %w: %w", domain.ErrAssociationWrite, f.associateErr)
	}
	f.nextID++
	s.ID = fmt.Sprintf("sp-%d", f.nextID)
	cp := *s
	f.speakers[s.ID] = &cp
	f.series[s.ID] = append([]domain.SeriesSlug{}, series...)
	return nil
}

func (f *fakeSpeakerRepo) UpdateWithSeries(ctx context.Context, s *domain.Speaker, series []domain.SeriesSlug) error {
	f.calls = append(f.calls, "UpdateWithSeries")
	prev, ok := f.speakers[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.associateErr != nil {
		return fmt.Errorf("clear speaker series: %w: %w", domain.ErrAssociationWrite, f.associateErr)
	}
	s.CreatedAt = prev.CreatedAt
	cp := *s
	f.speakers[s.ID] = &cp
	f.series[s.ID] = append([]domain.SeriesSlug{}, series...)
	return nil
}

func (f *fakeSpeakerRepo) DeleteWithSeries(ctx context.Context, id string) error {
	f.calls = append(f.calls, "DeleteWithSeries")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.speakers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.series, id)
	delete(f.speakers, id)
	return nil
}

func (f *fakeSpeakerRepo) ListActiveBySeries(ctx context.Context, slug domain.SeriesSlug, params domain.PaginationParams) ([]*domain.Speaker, int, error) {
	f.calls = append(f.calls, fmt.Sprintf("ListActiveBySeries %s %d/%d", slug, params.Page, params.PageSize))
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	all, _ := f.List(ctx)
	matched := make([]*domain.Speaker, 0)
	for _, s := range all {
		if s.Status != domain.StatusActive {
			continue
		}
		for _, sl := range f.series[s.ID] {
			if sl == slug {
				matched = append(matched, s)
				break
			}
		}
	}
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], len(matched), nil
}

// fakeSponsorRepo implements domain.SponsorRepository in memory.
type fakeSponsorRepo struct {
	sponsors map[string]*domain.Sponsor
	series   map[string][]domain.SponsorSeries
	calls    []string
	nextID   int

	listErr      error
	associateErr error
}

func newFakeSponsorRepo() *fakeSponsorRepo {
	return &fakeSponsorRepo{
		sponsors: make(map[string]*domain.Sponsor),
		series:   make(map[string][]domain.SponsorSeries),
	}
}

func (f *fakeSponsorRepo) List(ctx context.Context) ([]*domain.Sponsor, error) {
	f.calls = append(f.calls, "List")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Sponsor, 0, len(f.sponsors))
	for _, s := range f.sponsors {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeSponsorRepo) ListSeries(ctx context.Context) ([]domain.SponsorSeriesRow, error) {
	f.calls = append(f.calls, "ListSeries")
	ids := make([]string, 0, len(f.series))
	for id := range f.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.SponsorSeriesRow, 0)
	for _, id := range ids {
		for _, p := range f.series[id] {
			out = append(out, domain.SponsorSeriesRow{SponsorID: id, SponsorSeries: p})
		}
	}
	return out, nil
}

func (f *fakeSponsorRepo) CreateWithSeries(ctx context.Context, s *domain.Sponsor, series []domain.SponsorSeries) error {
	f.calls = append(f.calls, "CreateWithSeries")
	if f.associateErr != nil {
		return fmt.Errorf("insert sponsor series: %w: %w", domain.ErrAssociationWrite, f.associateErr)
	}
	f.nextID++
	s.ID = fmt.Sprintf("spn-%d", f.nextID)
	cp := *s
	f.sponsors[s.ID] = &cp
	f.series[s.ID] = append([]domain.SponsorSeries{}, series...)
	return nil
}

func (f *fakeSponsorRepo) UpdateWithSeries(ctx context.Context, s *domain.Sponsor, series []domain.SponsorSeries) error {
	f.calls = append(f.calls, "UpdateWithSeries")
	prev, ok := f.sponsors[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.associateErr != nil {
		return fmt.Errorf("insert sponsor series: %w: %w", domain.ErrAssociationWrite, f.associateErr)
	}
	s.CreatedAt = prev.CreatedAt
	cp := *s
	f.sponsors[s.ID] = &cp
	f.series[s.ID] = append([]domain.SponsorSeries{}, series...)
	return nil
}

func (f *fakeSponsorRepo) DeleteWithSeries(ctx context.Context, id string) error {
	f.calls = append(f.calls, "DeleteWithSeries")
	if _, ok := f.sponsors[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.series, id)
	delete(f.sponsors, id)
	return nil
}

func (f *fakeSponsorRepo) ListActiveBySeries(ctx context.Context, slug domain.SeriesSlug) ([]*domain.TieredSponsor, error) {
	f.calls = append(f.calls, "ListActiveBySeries "+string(slug))
	if f.listErr != nil {
		return nil, f.listErr
	}
	all, _ := f.List(ctx)
	out := make([]*domain.TieredSponsor, 0)
	for _, s := range all {
		if s.Status != domain.StatusActive {
			continue
		}
		for _, p := range f.series[s.ID] {
			if p.Series == slug {
				out = append(out, &domain.TieredSponsor{Sponsor: *s, Tier: p.Tier})
			}
		}
	}
	return out, nil
}

// fakeAdminRepo implements domain.AdminRepository.
type fakeAdminRepo struct {
	byEmail   map[string]*domain.AdminUser
	getErr    error
	createErr error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byEmail: make(map[string]*domain.AdminUser)}
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *domain.AdminUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return domain.ErrConflict
	}
	a.ID = "adm-" + a.Email
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeSessionRepo implements domain.AdminSessionRepository.
type fakeSessionRepo struct {
	sessions map[string]*domain.AdminSession
	err      error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.AdminSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.AdminSession) error {
	if f.err != nil {
		return f.err
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) Exists(ctx context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	s, ok := f.sessions[id]
	return ok && s.ExpiresAt.After(time.Now()), nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.sessions, id)
	return nil
}

// fakeLoginCodeRepo implements domain.LoginCodeRepository.
type fakeLoginCodeRepo struct {
	codes map[string]string // email -> hash
}

func newFakeLoginCodeRepo() *fakeLoginCodeRepo {
	return &fakeLoginCodeRepo{codes: make(map[string]string)}
}

func (f *fakeLoginCodeRepo) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	f.codes[email] = codeHash
	return nil
}

func (f *fakeLoginCodeRepo) Consume(ctx context.Context, email, codeHash string) (bool, error) {
	if f.codes[email] == codeHash {
		delete(f.codes, email)
		return true, nil
	}
	return false, nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens implements domain.TokenIssuer and domain.TokenVerifier with opaque strings.
type fakeTokens struct {
	issued map[string]*domain.TokenClaims
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{issued: make(map[string]*domain.TokenClaims)}
}

func (f *fakeTokens) Issue(sessionID, adminID, email string, expiry time.Duration) (string, error) {
	token := "token-" + sessionID
	f.issued[token] = &domain.TokenClaims{SessionID: sessionID, AdminID: adminID, Email: email}
	return token, nil
}

func (f *fakeTokens) Verify(token string) (*domain.TokenClaims, error) {
	if c, ok := f.issued[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad signature")
}

// fakeEmailService records login code emails.
type fakeEmailService struct {
	sent []*domain.LoginCodeEmailData
}

func (f *fakeEmailService) SendLoginCode(ctx context.Context, data *domain.LoginCodeEmailData) error {
	f.sent = append(f.sent, data)
	return nil
}
