package services

import (
	"context"
	"fmt"
	"time"

	"firstseries/internal/domain"
)

type showcaseService struct {
	speakers       domain.SpeakerRepository
	sponsors       domain.SponsorRepository
	contextTimeout time.Duration
}

// NewShowcaseService returns the read-only service used by the public site.
func NewShowcaseService(speakers domain.SpeakerRepository, sponsors domain.SponsorRepository, timeout time.Duration) domain.ShowcaseService {
	return &showcaseService{speakers: speakers, sponsors: sponsors, contextTimeout: timeout}
}

func (s *showcaseService) ListSeries(ctx context.Context) []domain.Series {
	out := make([]domain.Series, 0, len(domain.AllSeries))
	for _, slug := range domain.AllSeries {
		out = append(out, domain.Series{Slug: slug, Name: slug.Name()})
	}
	return out
}

func (s *showcaseService) Lineup(ctx context.Context, slug string, params domain.PaginationParams) ([]*domain.Speaker, int, error) {
	series, err := domain.ParseSeriesSlug(slug)
	if err != nil {
		return nil, 0, err
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speakers, total, err := s.speakers.ListActiveBySeries(ctx, series, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list lineup for %s: %w", series, err)
	}
	return speakers, total, nil
}

// SponsorWall groups the series' active sponsors by tier. Within a tier the
// repository's sort_order is kept; tiers with no sponsors are omitted.
func (s *showcaseService) SponsorWall(ctx context.Context, slug string) ([]domain.TierGroup, error) {
	series, err := domain.ParseSeriesSlug(slug)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sponsors, err := s.sponsors.ListActiveBySeries(ctx, series)
	if err != nil {
		return nil, fmt.Errorf("list sponsors for %s: %w", series, err)
	}
	return groupByTier(sponsors), nil
}

func groupByTier(sponsors []*domain.TieredSponsor) []domain.TierGroup {
	buckets := make([][]*domain.TieredSponsor, len(domain.AllTiers)+1)
	for _, sp := range sponsors {
		r := sp.Tier.Rank()
		buckets[r] = append(buckets[r], sp)
	}
	groups := make([]domain.TierGroup, 0)
	for i, b := range buckets {
		if len(b) == 0 || i >= len(domain.AllTiers) {
			continue
		}
		groups = append(groups, domain.TierGroup{Tier: domain.AllTiers[i], Sponsors: b})
	}
	return groups
}
