// Package adminview renders the admin speaker and sponsor tables as HTML fragments.
package adminview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"firstseries/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Column headers, in display order.
var (
	SpeakerColumns = []string{"Name", "Job Title", "Organization", "Series", "Status", "Featured", "Order", "Actions"}
	SponsorColumns = []string{"Name", "Industry", "Series & Tier", "Status", "Order", "Actions"}
)

const (
	speakerEmptyText = "No speakers found. Add your first speaker."
	sponsorEmptyText = "No sponsors found. Add your first sponsor."
)

// Renderer executes the embedded table templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("adminview").Funcs(template.FuncMap{
		"tierLabel": tierLabel,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse admin templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type speakerRow struct {
	ID           string
	Name         string
	JobTitle     string
	Organization string
	Series       []domain.Series
	Status       domain.Status
	Featured     bool
	Order        int
}

type sponsorRow struct {
	ID       string
	Name     string
	Industry string
	Series   []sponsorPair
	Status   domain.Status
	Order    int
}

type sponsorPair struct {
	Series domain.Series
	Tier   domain.Tier
}

type tableData[T any] struct {
	Columns   []string
	Rows      []T
	EmptyText string
}

// SpeakerTable writes the speaker table for the catalog. Rows keep the catalog order.
func (r *Renderer) SpeakerTable(w io.Writer, c *domain.Catalog) error {
	rows := make([]speakerRow, 0, len(c.Speakers))
	for _, s := range c.Speakers {
		slugs := c.SeriesForSpeaker(s.ID)
		series := make([]domain.Series, 0, len(slugs))
		for _, slug := range slugs {
			series = append(series, domain.Series{Slug: slug, Name: slug.Name()})
		}
		rows = append(rows, speakerRow{
			ID:           s.ID,
			Name:         s.FullName(),
			JobTitle:     s.JobTitle,
			Organization: s.Organization,
			Series:       series,
			Status:       s.Status,
			Featured:     s.IsFeatured,
			Order:        s.SortOrder,
		})
	}
	return r.tmpl.ExecuteTemplate(w, "speakers.html", tableData[speakerRow]{
		Columns:   SpeakerColumns,
		Rows:      rows,
		EmptyText: speakerEmptyText,
	})
}

// SponsorTable writes the sponsor table for the catalog.
func (r *Renderer) SponsorTable(w io.Writer, c *domain.Catalog) error {
	rows := make([]sponsorRow, 0, len(c.Sponsors))
	for _, s := range c.Sponsors {
		pairs := c.SeriesForSponsor(s.ID)
		series := make([]sponsorPair, 0, len(pairs))
		for _, p := range pairs {
			series = append(series, sponsorPair{Series: domain.Series{Slug: p.Series, Name: p.Series.Name()}, Tier: p.Tier})
		}
		rows = append(rows, sponsorRow{
			ID:       s.ID,
			Name:     s.Name,
			Industry: s.Industry,
			Series:   series,
			Status:   s.Status,
			Order:    s.SortOrder,
		})
	}
	return r.tmpl.ExecuteTemplate(w, "sponsors.html", tableData[sponsorRow]{
		Columns:   SponsorColumns,
		Rows:      rows,
		EmptyText: sponsorEmptyText,
	})
}

func tierLabel(t domain.Tier) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
