package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Speaker represents a speaker shown on the marketing site and edited in the admin.
// swagger:model Speaker
type Speaker struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	JobTitle     string    `json:"job_title"`
	Organization string    `json:"organization"`
	PhotoURL     string    `json:"photo_url"`
	Bio          string    `json:"bio"`
	LinkedInURL  string    `json:"linkedin_url"`
	Country      string    `json:"country"`
	IsFeatured   bool      `json:"is_featured"`
	Status       Status    `json:"status"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (s *Speaker) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// SpeakerSeries is one row of the speaker_series association table.
type SpeakerSeries struct {
	SpeakerID string     `json:"speaker_id"`
	Series    SeriesSlug `json:"series_slug"`
}

// SpeakerUpsert is the payload for creating or editing a speaker together with its series.
// The submitted Series replaces the stored set wholesale.
type SpeakerUpsert struct {
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	JobTitle     string       `json:"job_title"`
	Organization string       `json:"organization"`
	PhotoURL     string       `json:"photo_url"`
	Bio          string       `json:"bio"`
	LinkedInURL  string       `json:"linkedin_url"`
	Country      string       `json:"country"`
	IsFeatured   bool         `json:"is_featured"`
	Status       Status       `json:"status"`
	SortOrder    int          `json:"sort_order"`
	Series       []SeriesSlug `json:"series"`
}

// SpeakerUpsertFrom seeds an upsert from a stored speaker and its current series,
// so that submitting it unchanged leaves the record as it is.
func SpeakerUpsertFrom(s *Speaker, series []SeriesSlug) SpeakerUpsert {
	if s == nil {
		return SpeakerUpsert{Status: StatusActive, Series: []SeriesSlug{}}
	}
	return SpeakerUpsert{
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		JobTitle:     s.JobTitle,
		Organization: s.Organization,
		PhotoURL:     s.PhotoURL,
		Bio:          s.Bio,
		LinkedInURL:  s.LinkedInURL,
		Country:      s.Country,
		IsFeatured:   s.IsFeatured,
		Status:       s.Status,
		SortOrder:    s.SortOrder,
		Series:       append([]SeriesSlug{}, series...),
	}
}

// Normalize trims text fields, defaults the status and collapses duplicate series
// keeping the first occurrence.
func (u *SpeakerUpsert) Normalize() {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.JobTitle = strings.TrimSpace(u.JobTitle)
	u.Organization = strings.TrimSpace(u.Organization)
	u.PhotoURL = strings.TrimSpace(u.PhotoURL)
	u.Bio = strings.TrimSpace(u.Bio)
	u.LinkedInURL = strings.TrimSpace(u.LinkedInURL)
	u.Country = strings.TrimSpace(u.Country)
	if u.Status == "" {
		u.Status = StatusActive
	}
	seen := make(map[SeriesSlug]struct{}, len(u.Series))
	series := make([]SeriesSlug, 0, len(u.Series))
	for _, s := range u.Series {
		s = SeriesSlug(strings.ToLower(strings.TrimSpace(string(s))))
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		series = append(series, s)
	}
	u.Series = series
}

// Validate checks required fields and enumerations. Call Normalize first.
func (u SpeakerUpsert) Validate() error {
	var errs []string
	if u.FirstName == "" {
		errs = append(errs, "first_name is required")
	}
	if u.LastName == "" {
		errs = append(errs, "last_name is required")
	}
	if u.JobTitle == "" {
		errs = append(errs, "job_title is required")
	}
	if u.Organization == "" {
		errs = append(errs, "organization is required")
	}
	if !u.Status.Valid() {
		errs = append(errs, fmt.Sprintf("unknown status %q", u.Status))
	}
	if msg := checkURL("photo_url", u.PhotoURL); msg != "" {
		errs = append(errs, msg)
	}
	if msg := checkURL("linkedin_url", u.LinkedInURL); msg != "" {
		errs = append(errs, msg)
	}
	for _, s := range u.Series {
		if !s.Valid() {
			errs = append(errs, fmt.Sprintf("unknown series %q", s))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

// Speaker builds the base record for the given id.
func (u SpeakerUpsert) Speaker(id string) *Speaker {
	return &Speaker{
		ID:           id,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		JobTitle:     u.JobTitle,
		Organization: u.Organization,
		PhotoURL:     u.PhotoURL,
		Bio:          u.Bio,
		LinkedInURL:  u.LinkedInURL,
		Country:      u.Country,
		IsFeatured:   u.IsFeatured,
		Status:       u.Status,
		SortOrder:    u.SortOrder,
	}
}

// SpeakerRepository defines storage for speakers and their series associations.
type SpeakerRepository interface {
	// List returns all speakers ordered by sort_order ascending.
	List(ctx context.Context) ([]*Speaker, error)
	// ListSeries returns every speaker_series row.
	ListSeries(ctx context.Context) ([]SpeakerSeries, error)
	// CreateWithSeries inserts the speaker, sets its ID and timestamps, then inserts its series, atomically.
	CreateWithSeries(ctx context.Context, s *Speaker, series []SeriesSlug) error
	// UpdateWithSeries updates the speaker and replaces its series, atomically.
	UpdateWithSeries(ctx context.Context, s *Speaker, series []SeriesSlug) error
	// DeleteWithSeries removes the speaker's series and then the speaker, atomically.
	DeleteWithSeries(ctx context.Context, id string) error
	// ListActiveBySeries returns one page of active speakers in the series and the total count.
	ListActiveBySeries(ctx context.Context, slug SeriesSlug, params PaginationParams) ([]*Speaker, int, error)
}

// SpeakerService persists speakers as a single logical operation with their series.
type SpeakerService interface {
	// Save creates the speaker when id is empty and edits it otherwise.
	Save(ctx context.Context, id string, in SpeakerUpsert) (*Speaker, error)
	Delete(ctx context.Context, id string) error
}
