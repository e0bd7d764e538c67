package postgres

import (
	"context"
	"database/sql"
	"errors"

	"firstseries/internal/domain"
)

const sponsorColumns = `id, name, logo_url, website_url, description, industry, status, sort_order, created_at, updated_at`

type sponsorRepository struct {
	DB *sql.DB
}

// NewSponsorRepository returns a domain.SponsorRepository implemented with Postgres.
func NewSponsorRepository(db *sql.DB) domain.SponsorRepository {
	return &sponsorRepository{DB: db}
}

func (r *sponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+sponsorColumns+` FROM sponsors ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sponsors := make([]*domain.Sponsor, 0)
	for rows.Next() {
		s := &domain.Sponsor{}
		if err := rows.Scan(&s.ID, &s.Name, &s.LogoURL, &s.WebsiteURL, &s.Description, &s.Industry, &s.Status, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}

func (r *sponsorRepository) ListSeries(ctx context.Context) ([]domain.SponsorSeriesRow, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT sponsor_id, series_slug, tier FROM sponsor_series ORDER BY sponsor_id, series_slug, tier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	links := make([]domain.SponsorSeriesRow, 0)
	for rows.Next() {
		var l domain.SponsorSeriesRow
		if err := rows.Scan(&l.SponsorID, &l.Series, &l.Tier); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *sponsorRepository) CreateWithSeries(ctx context.Context, s *domain.Sponsor, series []domain.SponsorSeries) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			INSERT INTO sponsors (name, logo_url, website_url, description, industry, status, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, query, s.Name, s.LogoURL, s.WebsiteURL, s.Description, s.Industry, s.Status,
			s.SortOrder, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
		if err != nil {
			return mapPQError(err)
		}
		return insertSponsorSeries(ctx, tx, s.ID, series)
	})
}

func (r *sponsorRepository) UpdateWithSeries(ctx context.Context, s *domain.Sponsor, series []domain.SponsorSeries) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			UPDATE sponsors
			SET name = $1, logo_url = $2, website_url = $3, description = $4, industry = $5, status = $6,
				sort_order = $7, updated_at = $8
			WHERE id = $9
			RETURNING created_at
		`
		err := tx.QueryRowContext(ctx, query, s.Name, s.LogoURL, s.WebsiteURL, s.Description, s.Industry, s.Status,
			s.SortOrder, s.UpdatedAt, s.ID).Scan(&s.CreatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return mapPQError(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sponsor_series WHERE sponsor_id = $1`, s.ID); err != nil {
			return associationErr("clear sponsor series", err)
		}
		return insertSponsorSeries(ctx, tx, s.ID, series)
	})
}

func insertSponsorSeries(ctx context.Context, tx *sql.Tx, sponsorID string, series []domain.SponsorSeries) error {
	for _, p := range series {
		_, err := tx.ExecContext(ctx, `INSERT INTO sponsor_series (sponsor_id, series_slug, tier) VALUES ($1, $2, $3)`, sponsorID, p.Series, p.Tier)
		if err != nil {
			return associationErr("insert sponsor series", err)
		}
	}
	return nil
}

func (r *sponsorRepository) DeleteWithSeries(ctx context.Context, id string) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sponsor_series WHERE sponsor_id = $1`, id); err != nil {
			return associationErr("delete sponsor series", mapPQError(err))
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
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

func (r *sponsorRepository) ListActiveBySeries(ctx context.Context, slug domain.SeriesSlug) ([]*domain.TieredSponsor, error) {
	query := `
		SELECT s.id, s.name, s.logo_url, s.website_url, s.description, s.industry, s.status, s.sort_order,
			s.created_at, s.updated_at, ss.tier
		FROM sponsors s
		JOIN sponsor_series ss ON ss.sponsor_id = s.id
		WHERE ss.series_slug = $1 AND s.status = 'active'
		ORDER BY s.sort_order ASC, s.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.TieredSponsor, 0)
	for rows.Next() {
		ts := &domain.TieredSponsor{}
		s := &ts.Sponsor
		if err := rows.Scan(&s.ID, &s.Name, &s.LogoURL, &s.WebsiteURL, &s.Description, &s.Industry, &s.Status, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt, &ts.Tier); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}
