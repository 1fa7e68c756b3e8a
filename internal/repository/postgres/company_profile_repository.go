package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
)

type CompanyProfileRepository struct {
	db *sql.DB
}

func NewCompanyProfileRepository(db *sql.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

func (r *CompanyProfileRepository) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO company_profiles (user_id, company_name, industry, location, website, description, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			industry = EXCLUDED.industry,
			location = EXCLUDED.location,
			website = EXCLUDED.website,
			description = EXCLUDED.description,
			logo_url = EXCLUDED.logo_url,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.CompanyName, p.Industry, p.Location, p.Website, p.Description, p.LogoURL, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert company profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *CompanyProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, company_name, industry, location, website, description, logo_url, created_at, updated_at
		FROM company_profiles WHERE user_id = $1`, userID)
	var p profile.CompanyProfile
	if err := row.Scan(&p.UserID, &p.CompanyName, &p.Industry, &p.Location, &p.Website, &p.Description, &p.LogoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company profile", err)
	}
	return &p, nil
}

func (r *CompanyProfileRepository) UpdateLogo(ctx context.Context, userID common.UUID, logoURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE company_profiles SET logo_url = $1, updated_at = $2 WHERE user_id = $3`,
		logoURL, time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update company logo", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "company profile not found", sql.ErrNoRows)
	}
	return nil
}
