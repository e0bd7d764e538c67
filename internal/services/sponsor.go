package services

import (
	"context"
	"fmt"
	"time"

	"firstseries/internal/domain"
)

type sponsorService struct {
	repo           domain.SponsorRepository
	contextTimeout time.Duration
}

// NewSponsorService returns a SponsorService backed by the given repository.
func NewSponsorService(repo domain.SponsorRepository, timeout time.Duration) domain.SponsorService {
	return &sponsorService{repo: repo, contextTimeout: timeout}
}

func (s *sponsorService) Save(ctx context.Context, id string, in domain.SponsorUpsert) (*domain.Sponsor, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sponsor := in.Sponsor(id)
	sponsor.UpdatedAt = time.Now()
	if id == "" {
		sponsor.CreatedAt = sponsor.UpdatedAt
		if err := s.repo.CreateWithSeries(ctx, sponsor, in.Series); err != nil {
			return nil, fmt.Errorf("create sponsor: %w", err)
		}
		return sponsor, nil
	}
	if err := s.repo.UpdateWithSeries(ctx, sponsor, in.Series); err != nil {
		return nil, fmt.Errorf("update sponsor %s: %w", id, err)
	}
	return sponsor, nil
}

func (s *sponsorService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: sponsor id is required", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repo.DeleteWithSeries(ctx, id); err != nil {
		return fmt.Errorf("delete sponsor %s: %w", id, err)
	}
	return nil
}
