package profile

import (
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// StudentProfile is one row per student user. ApprovalStatus is set by the
// placement cell of the student's college.
type StudentProfile struct {
	UserID         common.UUID    `json:"user_id"`
	CollegeID      common.UUID    `json:"college_id"`
	FullName       string         `json:"full_name"`
	RollNumber     string         `json:"roll_number"`
	Branch         string         `json:"branch"`
	CGPA           float64        `json:"cgpa"`
	GraduationYear int            `json:"graduation_year"`
	Skills         []string       `json:"skills"`
	ResumeURL      string         `json:"resume_url,omitempty"`
	AvatarURL      string         `json:"avatar_url,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type CompanyProfile struct {
	UserID      common.UUID `json:"user_id"`
	CompanyName string      `json:"company_name"`
	Industry    string      `json:"industry"`
	Location    string      `json:"location"`
	Website     string      `json:"website,omitempty"`
	Description string      `json:"description,omitempty"`
	LogoURL     string      `json:"logo_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
