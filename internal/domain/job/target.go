package job

import (
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type TargetStatus string

const (
	TargetPending  TargetStatus = "pending"
	TargetApproved TargetStatus = "approved"
	TargetRejected TargetStatus = "rejected"
)

// CollegeTarget restricts a job's visibility to one college. The job is
// visible to that college's students only while ApprovalStatus is approved.
type CollegeTarget struct {
	JobID          common.UUID  `json:"job_id"`
	CollegeID      common.UUID  `json:"college_id"`
	ApprovalStatus TargetStatus `json:"approval_status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TargetDetail is a target row joined with job and college names for the
// placement cell's approval queue.
type TargetDetail struct {
	CollegeTarget
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	CollegeName string `json:"college_name"`
}
