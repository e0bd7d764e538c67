package domain

import (
	"fmt"
	"strings"
)

// SeriesSlug identifies a recurring event brand line.
type SeriesSlug string

const (
	SeriesOTSecurityFirst SeriesSlug = "ot-security-first"
	SeriesDataAIFirst     SeriesSlug = "data-ai-first"
	SeriesOpexFirst       SeriesSlug = "opex-first"
	SeriesCxOFirst        SeriesSlug = "cxo-first"
)

// AllSeries lists every series in display order.
var AllSeries = []SeriesSlug{
	SeriesOTSecurityFirst,
	SeriesDataAIFirst,
	SeriesOpexFirst,
	SeriesCxOFirst,
}

var seriesNames = map[SeriesSlug]string{
	SeriesOTSecurityFirst: "OT Security First",
	SeriesDataAIFirst:     "Data & AI First",
	SeriesOpexFirst:       "Opex First",
	SeriesCxOFirst:        "CxO First",
}

// Valid reports whether s is a known series.
func (s SeriesSlug) Valid() bool {
	_, ok := seriesNames[s]
	return ok
}

// Name returns the display name of the series, or the slug itself when unknown.
func (s SeriesSlug) Name() string {
	if n, ok := seriesNames[s]; ok {
		return n
	}
	return string(s)
}

// ParseSeriesSlug normalizes and validates a series slug.
func ParseSeriesSlug(s string) (SeriesSlug, error) {
	slug := SeriesSlug(strings.ToLower(strings.TrimSpace(s)))
	if !slug.Valid() {
		return "", fmt.Errorf("%w: unknown series %q", ErrInvalidInput, s)
	}
	return slug, nil
}

// Series is the public description of a series.
// swagger:model Series
type Series struct {
	Slug SeriesSlug `json:"slug"`
	Name string     `json:"name"`
}

// Tier is a sponsorship level scoped to one series association.
type Tier string

const (
	TierTitle    Tier = "title"
	TierPlatinum Tier = "platinum"
	TierGold     Tier = "gold"
	TierSilver   Tier = "silver"
	TierBronze   Tier = "bronze"
	TierPartner  Tier = "partner"
	TierMedia    Tier = "media"
)

// AllTiers lists tiers from the highest rank to the lowest.
var AllTiers = []Tier{TierTitle, TierPlatinum, TierGold, TierSilver, TierBronze, TierPartner, TierMedia}

// Rank returns the position of t in AllTiers (0 is title). Unknown tiers rank last.
func (t Tier) Rank() int {
	for i, v := range AllTiers {
		if v == t {
			return i
		}
	}
	return len(AllTiers)
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t.Rank() < len(AllTiers)
}

// ParseTier normalizes and validates a tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Status is the publication state of a speaker or sponsor record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// ParseStatus normalizes a status; an empty value defaults to active.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StatusActive, nil
	}
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
	return st, nil
}
