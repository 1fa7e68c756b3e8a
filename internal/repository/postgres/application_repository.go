package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, student_id, status, placement_cell_notes, company_notes, submitted_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.SubmittedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.JobID, app.StudentID, app.Status, app.PlacementCellNotes, app.CompanyNotes, app.SubmittedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND student_id = $2`,
		jobID, studentID)
	return scanApplication(row)
}

const applicationDetailQuery = `SELECT a.id, a.job_id, a.student_id, a.status, a.placement_cell_notes, a.company_notes, a.submitted_at, a.updated_at,
		j.title, COALESCE(cp.company_name, ''), COALESCE(sp.full_name, ''), COALESCE(sp.roll_number, ''), COALESCE(sp.branch, '')
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	LEFT JOIN company_profiles cp ON cp.user_id = j.company_id
	LEFT JOIN student_profiles sp ON sp.user_id = a.student_id`

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Detail, error) {
	rows, err := r.db.QueryContext(ctx, applicationDetailQuery+`
		WHERE a.student_id = $1 ORDER BY a.submitted_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	return collectDetails(rows)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.UUID, status application.Status) ([]application.Detail, error) {
	query := applicationDetailQuery + ` WHERE j.company_id = $1`
	args := []any{companyID}
	if status != "" {
		query += ` AND a.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY a.submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company applications", err)
	}
	return collectDetails(rows)
}

func (r *ApplicationRepository) ListByCollege(ctx context.Context, collegeID common.UUID, status application.Status) ([]application.Detail, error) {
	query := applicationDetailQuery + ` WHERE sp.college_id = $1`
	args := []any{collegeID}
	if status != "" {
		query += ` AND a.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY a.submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list college applications", err)
	}
	return collectDetails(rows)
}

func (r *ApplicationRepository) UpdateCellDecision(ctx context.Context, id common.UUID, status application.Status, notes string) (*application.Application, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, placement_cell_notes = $2, updated_at = $3 WHERE id = $4`,
		status, notes, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) UpdateCompanyDecision(ctx context.Context, id common.UUID, status application.Status, notes string) (*application.Application, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, company_notes = $2, updated_at = $3 WHERE id = $4`,
		status, notes, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.GetByID(ctx, id)
}

func scanApplication(row *sql.Row) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.StudentID, &app.Status, &app.PlacementCellNotes, &app.CompanyNotes,
		&app.SubmittedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func collectDetails(rows *sql.Rows) ([]application.Detail, error) {
	defer rows.Close()
	var items []application.Detail
	for rows.Next() {
		var d application.Detail
		if err := rows.Scan(&d.ID, &d.JobID, &d.StudentID, &d.Status, &d.PlacementCellNotes, &d.CompanyNotes,
			&d.SubmittedAt, &d.UpdatedAt, &d.JobTitle, &d.CompanyName, &d.StudentName, &d.RollNumber, &d.Branch); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, d)
	}
	return items, nil
}
