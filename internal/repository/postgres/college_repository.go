package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/college"
)

type CollegeRepository struct {
	db *sql.DB
}

func NewCollegeRepository(db *sql.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

func (r *CollegeRepository) List(ctx context.Context) ([]college.College, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location FROM colleges ORDER BY name`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list colleges", err)
	}
	defer rows.Close()
	var items []college.College
	for rows.Next() {
		var c college.College
		if err := rows.Scan(&c.ID, &c.Name, &c.Location); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan college", err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *CollegeRepository) GetByID(ctx context.Context, id common.UUID) (*college.College, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, location FROM colleges WHERE id = $1`, id)
	var c college.College
	if err := row.Scan(&c.ID, &c.Name, &c.Location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "college not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load college", err)
	}
	return &c, nil
}
