package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

const studentProfileColumns = `user_id, college_id, full_name, roll_number, branch, cgpa, graduation_year, skills, resume_url, avatar_url, approval_status, created_at, updated_at`

func (r *StudentProfileRepository) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.ApprovalStatus == "" {
		p.ApprovalStatus = profile.ApprovalPending
	}
	// Insert path stamps created_at; update path keeps it and the approval
	// status already on the row.
	_, err := r.db.ExecContext(ctx, `INSERT INTO student_profiles (`+studentProfileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			college_id = EXCLUDED.college_id,
			full_name = EXCLUDED.full_name,
			roll_number = EXCLUDED.roll_number,
			branch = EXCLUDED.branch,
			cgpa = EXCLUDED.cgpa,
			graduation_year = EXCLUDED.graduation_year,
			skills = EXCLUDED.skills,
			resume_url = EXCLUDED.resume_url,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.CollegeID, p.FullName, p.RollNumber, p.Branch, p.CGPA, p.GraduationYear,
		pq.Array(p.Skills), p.ResumeURL, p.AvatarURL, p.ApprovalStatus, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert student profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	var p profile.StudentProfile
	if err := row.Scan(&p.UserID, &p.CollegeID, &p.FullName, &p.RollNumber, &p.Branch, &p.CGPA, &p.GraduationYear,
		pq.Array(&p.Skills), &p.ResumeURL, &p.AvatarURL, &p.ApprovalStatus, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student profile", err)
	}
	return &p, nil
}

func (r *StudentProfileRepository) UpdateFiles(ctx context.Context, userID common.UUID, resumeURL, avatarURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE student_profiles SET
			resume_url = CASE WHEN $1 <> '' THEN $1 ELSE resume_url END,
			avatar_url = CASE WHEN $2 <> '' THEN $2 ELSE avatar_url END,
			updated_at = $3
		WHERE user_id = $4`,
		resumeURL, avatarURL, time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update student files", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "student profile not found", sql.ErrNoRows)
	}
	return nil
}

func (r *StudentProfileRepository) UpdateApproval(ctx context.Context, userID common.UUID, status profile.ApprovalStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE student_profiles SET approval_status = $1, updated_at = $2 WHERE user_id = $3`,
		status, time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update approval status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "student profile not found", sql.ErrNoRows)
	}
	return nil
}

func (r *StudentProfileRepository) ListByCollege(ctx context.Context, collegeID common.UUID, status profile.ApprovalStatus) ([]profile.StudentProfile, error) {
	query := `SELECT ` + studentProfileColumns + ` FROM student_profiles WHERE college_id = $1`
	args := []any{collegeID}
	if status != "" {
		query += ` AND approval_status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student profiles", err)
	}
	defer rows.Close()
	var items []profile.StudentProfile
	for rows.Next() {
		var p profile.StudentProfile
		if err := rows.Scan(&p.UserID, &p.CollegeID, &p.FullName, &p.RollNumber, &p.Branch, &p.CGPA, &p.GraduationYear,
			pq.Array(&p.Skills), &p.ResumeURL, &p.AvatarURL, &p.ApprovalStatus, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan student profile", err)
		}
		items = append(items, p)
	}
	return items, nil
}
