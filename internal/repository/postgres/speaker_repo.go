package postgres

import (
	"context"
	"database/sql"
	"errors"

	"firstseries/internal/domain"
)

const speakerColumns = `id, first_name, last_name, job_title, organization, photo_url, bio, linkedin_url, country, is_featured, status, sort_order, created_at, updated_at`

type speakerRepository struct {
	DB *sql.DB
}

// NewSpeakerRepository returns a domain.SpeakerRepository implemented with Postgres.
func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpeaker(row rowScanner) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.JobTitle, &s.Organization, &s.PhotoURL, &s.Bio,
		&s.LinkedInURL, &s.Country, &s.IsFeatured, &s.Status, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+speakerColumns+` FROM speakers ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) ListSeries(ctx context.Context) ([]domain.SpeakerSeries, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT speaker_id, series_slug FROM speaker_series ORDER BY speaker_id, series_slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	links := make([]domain.SpeakerSeries, 0)
	for rows.Next() {
		var l domain.SpeakerSeries
		if err := rows.Scan(&l.SpeakerID, &l.Series); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *speakerRepository) CreateWithSeries(ctx context.Context, s *domain.Speaker, series []domain.SeriesSlug) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			INSERT INTO speakers (first_name, last_name, job_title, organization, photo_url, bio, linkedin_url, country, is_featured, status, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, query, s.FirstName, s.LastName, s.JobTitle, s.Organization, s.PhotoURL, s.Bio,
			s.LinkedInURL, s.Country, s.IsFeatured, s.Status, s.SortOrder, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
		if err != nil {
			return mapPQError(err)
		}
		return insertSpeakerSeries(ctx, tx, s.ID, series)
	})
}

func (r *speakerRepository) UpdateWithSeries(ctx context.Context, s *domain.Speaker, series []domain.SeriesSlug) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			UPDATE speakers
			SET first_name = $1, last_name = $2, job_title = $3, organization = $4, photo_url = $5, bio = $6,
				linkedin_url = $7, country = $8, is_featured = $9, status = $10, sort_order = $11, updated_at = $12
			WHERE id = $13
			RETURNING created_at
		`
		err := tx.QueryRowContext(ctx, query, s.FirstName, s.LastName, s.JobTitle, s.Organization, s.PhotoURL, s.Bio,
			s.LinkedInURL, s.Country, s.IsFeatured, s.Status, s.SortOrder, s.UpdatedAt, s.ID).Scan(&s.CreatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return mapPQError(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM speaker_series WHERE speaker_id = $1`, s.ID); err != nil {
			return associationErr("clear speaker series", err)
		}
		return insertSpeakerSeries(ctx, tx, s.ID, series)
	})
}

func insertSpeakerSeries(ctx context.Context, tx *sql.Tx, speakerID string, series []domain.SeriesSlug) error {
	for _, slug := range series {
		if _, err := tx.ExecContext(ctx, `INSERT INTO speaker_series (speaker_id, series_slug) VALUES ($1, $2)`, speakerID, slug); err != nil {
			return associationErr("insert speaker series", err)
		}
	}
	return nil
}

func (r *speakerRepository) DeleteWithSeries(ctx context.Context, id string) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM speaker_series WHERE speaker_id = $1`, id); err != nil {
			return associationErr("delete speaker series", mapPQError(err))
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM speakers WHERE id = $1`, id)
		if err != nil {
			return mapPQError(err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *speakerRepository) ListActiveBySeries(ctx context.Context, slug domain.SeriesSlug, params domain.PaginationParams) ([]*domain.Speaker, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM speakers s
		JOIN speaker_series ss ON ss.speaker_id = s.id
		WHERE ss.series_slug = $1 AND s.status = 'active'
	`
	if err := r.DB.QueryRowContext(ctx, countQuery, slug).Scan(&total); err != nil {
		return nil, 0, err
	}
	speakers := make([]*domain.Speaker, 0)
	if total == 0 {
		return speakers, 0, nil
	}
	query := `
		SELECT s.id, s.first_name, s.last_name, s.job_title, s.organization, s.photo_url, s.bio, s.linkedin_url,
			s.country, s.is_featured, s.status, s.sort_order, s.created_at, s.updated_at
		FROM speakers s
		JOIN speaker_series ss ON ss.speaker_id = s.id
		WHERE ss.series_slug = $1 AND s.status = 'active'
		ORDER BY s.sort_order ASC, s.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, slug, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, 0, err
		}
		speakers = append(speakers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return speakers, total, nil
}
