package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, company_id, title, position, location, job_type, description, min_cgpa, stipend, eligibility_criteria, application_deadline, requirements, status, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		j.ID, j.CompanyID, j.Title, j.Position, j.Location, j.JobType, j.Description, j.MinCGPA,
		j.Stipend, j.EligibilityCriteria, j.ApplicationDeadline, pq.Array(j.Requirements), j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, position = $2, location = $3, job_type = $4, description = $5,
			min_cgpa = $6, stipend = $7, eligibility_criteria = $8, application_deadline = $9, requirements = $10, status = $11, updated_at = $12
		WHERE id = $13 AND company_id = $14`,
		j.Title, j.Position, j.Location, j.JobType, j.Description, j.MinCGPA, j.Stipend,
		j.EligibilityCriteria, j.ApplicationDeadline, pq.Array(j.Requirements), j.Status, j.UpdatedAt, j.ID, j.CompanyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	var j job.Job
	if err := scanJob(row.Scan, &j); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return nil
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := scanJob(rows.Scan, &j); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, j)
	}
	return items, nil
}

func (r *JobRepository) ListAll(ctx context.Context) ([]job.AdminJob, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT j.id, j.company_id, j.title, j.position, j.location, j.job_type, j.description, j.min_cgpa,
			j.stipend, j.eligibility_criteria, j.application_deadline, j.requirements, j.status, j.created_at, j.updated_at,
			COALESCE(cp.company_name, '')
		FROM jobs j
		LEFT JOIN company_profiles cp ON cp.user_id = j.company_id
		ORDER BY j.created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.AdminJob
	for rows.Next() {
		var a job.AdminJob
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Title, &a.Position, &a.Location, &a.JobType, &a.Description, &a.MinCGPA,
			&a.Stipend, &a.EligibilityCriteria, &a.ApplicationDeadline, pq.Array(&a.Requirements), &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&a.CompanyName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, a)
	}
	return items, nil
}

// ListVisibleToCollege returns published, still-open jobs with an approved
// target row for the college, newest first. Eligible is left for the service
// to fill in.
func (r *JobRepository) ListVisibleToCollege(ctx context.Context, collegeID common.UUID, filter job.ListFilter) ([]job.VisibleJob, error) {
	query := `SELECT j.id, j.company_id, j.title, j.position, j.location, j.job_type, j.description, j.min_cgpa,
			j.stipend, j.eligibility_criteria, j.application_deadline, j.requirements, j.status, j.created_at, j.updated_at,
			COALESCE(cp.company_name, '')
		FROM jobs j
		JOIN job_college_targets t ON t.job_id = j.id
		LEFT JOIN company_profiles cp ON cp.user_id = j.company_id
		WHERE j.status = 'published' AND j.application_deadline > now() AND t.college_id = $1 AND t.approval_status = 'approved'`
	args := []any{collegeID}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND (j.title ILIKE $%d OR j.description ILIKE $%d)`, len(args), len(args))
	}
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		query += fmt.Sprintf(` AND j.job_type = $%d`, len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		query += fmt.Sprintf(` AND j.location ILIKE $%d`, len(args))
	}
	if filter.MinCGPA > 0 {
		args = append(args, filter.MinCGPA)
		query += fmt.Sprintf(` AND j.min_cgpa <= $%d`, len(args))
	}
	query += ` ORDER BY j.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list visible jobs", err)
	}
	defer rows.Close()
	var items []job.VisibleJob
	for rows.Next() {
		var v job.VisibleJob
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.Title, &v.Position, &v.Location, &v.JobType, &v.Description, &v.MinCGPA,
			&v.Stipend, &v.EligibilityCriteria, &v.ApplicationDeadline, pq.Array(&v.Requirements), &v.Status, &v.CreatedAt, &v.UpdatedAt,
			&v.CompanyName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan visible job", err)
		}
		items = append(items, v)
	}
	return items, nil
}

func (r *JobRepository) ListTargets(ctx context.Context, jobID common.UUID) ([]job.CollegeTarget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT job_id, college_id, approval_status, created_at, updated_at
		FROM job_college_targets WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list targets", err)
	}
	defer rows.Close()
	var items []job.CollegeTarget
	for rows.Next() {
		var t job.CollegeTarget
		if err := rows.Scan(&t.JobID, &t.CollegeID, &t.ApprovalStatus, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan target", err)
		}
		items = append(items, t)
	}
	return items, nil
}

func (r *JobRepository) ListTargetsByCollege(ctx context.Context, collegeID common.UUID, status job.TargetStatus) ([]job.TargetDetail, error) {
	query := `SELECT t.job_id, t.college_id, t.approval_status, t.created_at, t.updated_at,
			j.title, COALESCE(cp.company_name, ''), c.name
		FROM job_college_targets t
		JOIN jobs j ON j.id = t.job_id
		JOIN colleges c ON c.id = t.college_id
		LEFT JOIN company_profiles cp ON cp.user_id = j.company_id
		WHERE t.college_id = $1`
	args := []any{collegeID}
	if status != "" {
		query += ` AND t.approval_status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY t.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list college targets", err)
	}
	defer rows.Close()
	var items []job.TargetDetail
	for rows.Next() {
		var t job.TargetDetail
		if err := rows.Scan(&t.JobID, &t.CollegeID, &t.ApprovalStatus, &t.CreatedAt, &t.UpdatedAt,
			&t.JobTitle, &t.CompanyName, &t.CollegeName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan college target", err)
		}
		items = append(items, t)
	}
	return items, nil
}

// ReconcileTargets inserts and deletes target pairs in one transaction so a
// crash never leaves the job with a half-applied set.
func (r *JobRepository) ReconcileTargets(ctx context.Context, jobID common.UUID, add, remove []common.UUID) error {
	if len(add) == 0 && len(remove) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, collegeID := range add {
		if _, err := tx.ExecContext(ctx, `INSERT INTO job_college_targets (job_id, college_id, approval_status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (job_id, college_id) DO NOTHING`,
			jobID, collegeID, job.TargetPending, now); err != nil {
			return common.NewError(common.CodeInternal, "failed to insert target", err)
		}
	}
	if len(remove) > 0 {
		removeIDs := make([]string, 0, len(remove))
		for _, collegeID := range remove {
			removeIDs = append(removeIDs, collegeID.String())
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM job_college_targets WHERE job_id = $1 AND college_id = ANY($2)`,
			jobID, pq.Array(removeIDs)); err != nil {
			return common.NewError(common.CodeInternal, "failed to delete targets", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit targets", err)
	}
	return nil
}

func (r *JobRepository) UpdateTargetApproval(ctx context.Context, jobID, collegeID common.UUID, status job.TargetStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE job_college_targets SET approval_status = $1, updated_at = $2
		WHERE job_id = $3 AND college_id = $4`,
		status, time.Now().UTC(), jobID, collegeID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update target approval", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "target not found", sql.ErrNoRows)
	}
	return nil
}

func (r *JobRepository) HasApprovedTarget(ctx context.Context, jobID, collegeID common.UUID) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM job_college_targets WHERE job_id = $1 AND college_id = $2 AND approval_status = 'approved'
	)`, jobID, collegeID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check target", err)
	}
	return exists, nil
}

func scanJob(scan func(...any) error, j *job.Job) error {
	return scan(&j.ID, &j.CompanyID, &j.Title, &j.Position, &j.Location, &j.JobType, &j.Description, &j.MinCGPA,
		&j.Stipend, &j.EligibilityCriteria, &j.ApplicationDeadline, pq.Array(&j.Requirements), &j.Status, &j.CreatedAt, &j.UpdatedAt)
}
