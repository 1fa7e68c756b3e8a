package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/interview"
)

type InterviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `id, application_id, interview_date, interview_type, location, meeting_link, notes, result, created_at, updated_at`

func (r *InterviewRepository) Create(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	iv.ID = common.NewUUID()
	now := time.Now().UTC()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO interviews (`+interviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		iv.ID, iv.ApplicationID, iv.InterviewDate, iv.InterviewType, iv.Location, iv.MeetingLink, iv.Notes, iv.Result, iv.CreatedAt, iv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "interview already scheduled", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create interview", err)
	}
	return &iv, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id common.UUID) (*interview.Interview, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	return scanInterview(row)
}

func (r *InterviewRepository) FindByApplication(ctx context.Context, applicationID common.UUID) (*interview.Interview, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1`, applicationID)
	return scanInterview(row)
}

const interviewDetailQuery = `SELECT i.id, i.application_id, i.interview_date, i.interview_type, i.location, i.meeting_link, i.notes, i.result, i.created_at, i.updated_at,
		a.job_id, j.title, a.student_id, COALESCE(sp.full_name, ''), COALESCE(cp.company_name, '')
	FROM interviews i
	JOIN applications a ON a.id = i.application_id
	JOIN jobs j ON j.id = a.job_id
	LEFT JOIN student_profiles sp ON sp.user_id = a.student_id
	LEFT JOIN company_profiles cp ON cp.user_id = j.company_id`

func (r *InterviewRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]interview.Detail, error) {
	rows, err := r.db.QueryContext(ctx, interviewDetailQuery+`
		WHERE j.company_id = $1 ORDER BY i.interview_date DESC`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company interviews", err)
	}
	return collectInterviewDetails(rows)
}

func (r *InterviewRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]interview.Detail, error) {
	rows, err := r.db.QueryContext(ctx, interviewDetailQuery+`
		WHERE a.student_id = $1 ORDER BY i.interview_date DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student interviews", err)
	}
	return collectInterviewDetails(rows)
}

func (r *InterviewRepository) SetResult(ctx context.Context, id common.UUID, result interview.Result) (*interview.Interview, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE interviews SET result = $1, updated_at = $2 WHERE id = $3`,
		result, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to set interview result", err)
	}
	return r.GetByID(ctx, id)
}

func scanInterview(row *sql.Row) (*interview.Interview, error) {
	var iv interview.Interview
	if err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.InterviewDate, &iv.InterviewType, &iv.Location, &iv.MeetingLink,
		&iv.Notes, &iv.Result, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "interview not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load interview", err)
	}
	return &iv, nil
}

func collectInterviewDetails(rows *sql.Rows) ([]interview.Detail, error) {
	defer rows.Close()
	var items []interview.Detail
	for rows.Next() {
		var d interview.Detail
		if err := rows.Scan(&d.ID, &d.ApplicationID, &d.InterviewDate, &d.InterviewType, &d.Location, &d.MeetingLink,
			&d.Notes, &d.Result, &d.CreatedAt, &d.UpdatedAt, &d.JobID, &d.JobTitle, &d.StudentID, &d.StudentName, &d.CompanyName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan interview", err)
		}
		items = append(items, d)
	}
	return items, nil
}
