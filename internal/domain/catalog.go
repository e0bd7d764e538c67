package domain

import "context"

// Catalog is the full admin view of speakers, sponsors and their associations.
// swagger:model Catalog
type Catalog struct {
	Speakers      []*Speaker                 `json:"speakers"`
	SpeakerSeries map[string][]SeriesSlug    `json:"speaker_series"`
	Sponsors      []*Sponsor                 `json:"sponsors"`
	SponsorSeries map[string][]SponsorSeries `json:"sponsor_series"`
}

// SeriesForSpeaker returns the series of the given speaker, never nil.
func (c *Catalog) SeriesForSpeaker(id string) []SeriesSlug {
	if s := c.SpeakerSeries[id]; s != nil {
		return s
	}
	return []SeriesSlug{}
}

// SeriesForSponsor returns the (series, tier) pairs of the given sponsor, never nil.
func (c *Catalog) SeriesForSponsor(id string) []SponsorSeries {
	if s := c.SponsorSeries[id]; s != nil {
		return s
	}
	return []SponsorSeries{}
}

// CatalogService loads the admin catalog.
type CatalogService interface {
	// LoadAll reads every list and association and replaces the whole catalog.
	LoadAll(ctx context.Context) (*Catalog, error)
}
