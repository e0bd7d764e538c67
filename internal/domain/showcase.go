package domain

import "context"

// TieredSponsor is a sponsor as it appears in one series, with its tier there.
// swagger:model TieredSponsor
type TieredSponsor struct {
	Sponsor
	Tier Tier `json:"tier"`
}

// TierGroup is one band of a sponsor wall.
// swagger:model TierGroup
type TierGroup struct {
	Tier     Tier             `json:"tier"`
	Sponsors []*TieredSponsor `json:"sponsors"`
}

// ShowcaseService serves published records to the marketing site.
type ShowcaseService interface {
	ListSeries(ctx context.Context) []Series
	// Lineup returns one page of active speakers in the series and the total count.
	Lineup(ctx context.Context, slug string, params PaginationParams) ([]*Speaker, int, error)
	// SponsorWall returns active sponsors in the series grouped by tier, highest tier first.
	SponsorWall(ctx context.Context, slug string) ([]TierGroup, error)
}
