package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Sponsor represents a sponsoring organization.
// swagger:model Sponsor
type Sponsor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LogoURL     string    `json:"logo_url"`
	WebsiteURL  string    `json:"website_url"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	Status      Status    `json:"status"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SponsorSeries is a (series, tier) association of a sponsor.
// swagger:model SponsorSeries
type SponsorSeries struct {
	Series SeriesSlug `json:"series_slug"`
	Tier   Tier       `json:"tier"`
}

// SponsorSeriesRow is one row of the sponsor_series association table.
type SponsorSeriesRow struct {
	SponsorID string `json:"sponsor_id"`
	SponsorSeries
}

// DefaultSponsorSeries is the pair appended by "add association" in the editor.
var DefaultSponsorSeries = SponsorSeries{Series: SeriesOTSecurityFirst, Tier: TierPartner}

// SponsorUpsert is the payload for creating or editing a sponsor with its tiered series.
// The submitted Series replaces the stored set wholesale.
type SponsorUpsert struct {
	Name        string          `json:"name"`
	LogoURL     string          `json:"logo_url"`
	WebsiteURL  string          `json:"website_url"`
	Description string          `json:"description"`
	Industry    string          `json:"industry"`
	Status      Status          `json:"status"`
	SortOrder   int             `json:"sort_order"`
	Series      []SponsorSeries `json:"series"`
}

// SponsorUpsertFrom seeds an upsert from a stored sponsor and its current associations.
func SponsorUpsertFrom(s *Sponsor, series []SponsorSeries) SponsorUpsert {
	if s == nil {
		return SponsorUpsert{Status: StatusActive, Series: []SponsorSeries{}}
	}
	return SponsorUpsert{
		Name:        s.Name,
		LogoURL:     s.LogoURL,
		WebsiteURL:  s.WebsiteURL,
		Description: s.Description,
		Industry:    s.Industry,
		Status:      s.Status,
		SortOrder:   s.SortOrder,
		Series:      append([]SponsorSeries{}, series...),
	}
}

// AddAssociation appends the default (series, tier) pair.
func (u *SponsorUpsert) AddAssociation() {
	u.Series = append(u.Series, DefaultSponsorSeries)
}

// RemoveAssociation drops the pair at index i. Out of range indexes are ignored.
func (u *SponsorUpsert) RemoveAssociation(i int) {
	if i < 0 || i >= len(u.Series) {
		return
	}
	u.Series = append(u.Series[:i:i], u.Series[i+1:]...)
}

// Normalize trims text fields, defaults the status and collapses exact duplicate
// (series, tier) pairs. The same series at different tiers is kept.
func (u *SponsorUpsert) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.LogoURL = strings.TrimSpace(u.LogoURL)
	u.WebsiteURL = strings.TrimSpace(u.WebsiteURL)
	u.Description = strings.TrimSpace(u.Description)
	u.Industry = strings.TrimSpace(u.Industry)
	if u.Status == "" {
		u.Status = StatusActive
	}
	seen := make(map[SponsorSeries]struct{}, len(u.Series))
	series := make([]SponsorSeries, 0, len(u.Series))
	for _, p := range u.Series {
		p.Series = SeriesSlug(strings.ToLower(strings.TrimSpace(string(p.Series))))
		p.Tier = Tier(strings.ToLower(strings.TrimSpace(string(p.Tier))))
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		series = append(series, p)
	}
	u.Series = series
}

// Validate checks required fields and enumerations. Call Normalize first.
func (u SponsorUpsert) Validate() error {
	var errs []string
	if u.Name == "" {
		errs = append(errs, "name is required")
	}
	if !u.Status.Valid() {
		errs = append(errs, fmt.Sprintf("unknown status %q", u.Status))
	}
	if msg := checkURL("logo_url", u.LogoURL); msg != "" {
		errs = append(errs, msg)
	}
	if msg := checkURL("website_url", u.WebsiteURL); msg != "" {
		errs = append(errs, msg)
	}
	for _, p := range u.Series {
		if !p.Series.Valid() {
			errs = append(errs, fmt.Sprintf("unknown series %q", p.Series))
		}
		if !p.Tier.Valid() {
			errs = append(errs, fmt.Sprintf("unknown tier %q", p.Tier))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

// Sponsor builds the base record for the given id.
func (u SponsorUpsert) Sponsor(id string) *Sponsor {
	return &Sponsor{
		ID:          id,
		Name:        u.Name,
		LogoURL:     u.LogoURL,
		WebsiteURL:  u.WebsiteURL,
		Description: u.Description,
		Industry:    u.Industry,
		Status:      u.Status,
		SortOrder:   u.SortOrder,
	}
}

// checkURL accepts absolute, scheme-less and relative links. It rejects control
// characters and schemes that execute or inline content.
func checkURL(field, raw string) string {
	if raw == "" {
		return ""
	}
	if strings.IndexFunc(raw, unicode.IsControl) >= 0 {
		return field + " must not contain control characters"
	}
	scheme, _, found := strings.Cut(raw, ":")
	if !found || strings.ContainsAny(scheme, "/?#") {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "javascript", "data", "vbscript":
		return field + " must not use the " + strings.ToLower(strings.TrimSpace(scheme)) + ": scheme"
	}
	return ""
}

// SponsorRepository defines storage for sponsors and their tiered series associations.
type SponsorRepository interface {
	// List returns all sponsors ordered by sort_order ascending.
	List(ctx context.Context) ([]*Sponsor, error)
	// ListSeries returns every sponsor_series row.
	ListSeries(ctx context.Context) ([]SponsorSeriesRow, error)
	CreateWithSeries(ctx context.Context, s *Sponsor, series []SponsorSeries) error
	UpdateWithSeries(ctx context.Context, s *Sponsor, series []SponsorSeries) error
	DeleteWithSeries(ctx context.Context, id string) error
	// ListActiveBySeries returns active sponsors in the series with their tier, ordered by sort_order.
	ListActiveBySeries(ctx context.Context, slug SeriesSlug) ([]*TieredSponsor, error)
}

// SponsorService persists sponsors as a single logical operation with their associations.
type SponsorService interface {
	Save(ctx context.Context, id string, in SponsorUpsert) (*Sponsor, error)
	Delete(ctx context.Context, id string) error
}
