package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"firstseries/internal/domain"
)

type catalogService struct {
	speakers       domain.SpeakerRepository
	sponsors       domain.SponsorRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewCatalogService returns a CatalogService that reads both lists and their associations.
func NewCatalogService(speakers domain.SpeakerRepository, sponsors domain.SponsorRepository, logger *slog.Logger, timeout time.Duration) domain.CatalogService {
	return &catalogService{
		speakers:       speakers,
		sponsors:       sponsors,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *catalogService) LoadAll(ctx context.Context) (*domain.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speakers, err := s.speakers.List(ctx)
	if err != nil {
		return nil, s.readFailed(ctx, "speakers", err)
	}
	speakerLinks, err := s.speakers.ListSeries(ctx)
	if err != nil {
		return nil, s.readFailed(ctx, "speaker_series", err)
	}
	sponsors, err := s.sponsors.List(ctx)
	if err != nil {
		return nil, s.readFailed(ctx, "sponsors", err)
	}
	sponsorLinks, err := s.sponsors.ListSeries(ctx)
	if err != nil {
		return nil, s.readFailed(ctx, "sponsor_series", err)
	}

	catalog := &domain.Catalog{
		Speakers:      speakers,
		SpeakerSeries: make(map[string][]domain.SeriesSlug, len(speakers)),
		Sponsors:      sponsors,
		SponsorSeries: make(map[string][]domain.SponsorSeries, len(sponsors)),
	}
	for _, l := range speakerLinks {
		catalog.SpeakerSeries[l.SpeakerID] = append(catalog.SpeakerSeries[l.SpeakerID], l.Series)
	}
	for _, l := range sponsorLinks {
		catalog.SponsorSeries[l.SponsorID] = append(catalog.SponsorSeries[l.SponsorID], l.SponsorSeries)
	}
	return catalog, nil
}

func (s *catalogService) readFailed(ctx context.Context, table string, err error) error {
	s.logger.ErrorContext(ctx, "catalog read failed", "table", table, "err", err)
	return fmt.Errorf("load %s: %w", table, err)
}
