package services

import (
	"context"
	"fmt"
	"time"

	"firstseries/internal/domain"
)

type speakerService struct {
	repo           domain.SpeakerRepository
	contextTimeout time.Duration
}

// NewSpeakerService returns a SpeakerService backed by the given repository.
func NewSpeakerService(repo domain.SpeakerRepository, timeout time.Duration) domain.SpeakerService {
	return &speakerService{repo: repo, contextTimeout: timeout}
}

// Save validates the upsert and writes the speaker together with its series.
// The stored series set becomes exactly in.Series.
func (s *speakerService) Save(ctx context.Context, id string, in domain.SpeakerUpsert) (*domain.Speaker, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker := in.Speaker(id)
	speaker.UpdatedAt = time.Now()
	if id == "" {
		speaker.CreatedAt = speaker.UpdatedAt
		if err := s.repo.CreateWithSeries(ctx, speaker, in.Series); err != nil {
			return nil, fmt.Errorf("create speaker: %w", err)
		}
		return speaker, nil
	}
	if err := s.repo.UpdateWithSeries(ctx, speaker, in.Series); err != nil {
		return nil, fmt.Errorf("update speaker %s: %w", id, err)
	}
	return speaker, nil
}

func (s *speakerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: speaker id is required", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repo.DeleteWithSeries(ctx, id); err != nil {
		return fmt.Errorf("delete speaker %s: %w", id, err)
	}
	return nil
}
