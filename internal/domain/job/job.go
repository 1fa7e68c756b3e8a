package job

import (
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusClosed    Status = "closed"
)

type Job struct {
	ID                  common.UUID `json:"id"`
	CompanyID           common.UUID `json:"company_id"`
	Title               string      `json:"title"`
	Position            string      `json:"position"`
	Location            string      `json:"location"`
	JobType             string      `json:"job_type"`
	Description         string      `json:"description"`
	MinCGPA             float64     `json:"min_cgpa"`
	Stipend             string      `json:"stipend"`
	EligibilityCriteria string      `json:"eligibility_criteria,omitempty"`
	ApplicationDeadline time.Time   `json:"application_deadline"`
	Requirements        []string    `json:"requirements"`
	Status              Status      `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// VisibleJob is a listing row as seen by a student: the job plus the
// informational CGPA eligibility flag. Eligible never gates applying.
type VisibleJob struct {
	Job
	CompanyName string `json:"company_name"`
	Eligible    bool   `json:"eligible"`
}

// AdminJob is a row in the placement cell's job management screen.
type AdminJob struct {
	Job
	CompanyName string `json:"company_name"`
}

// ListFilter narrows the student job listing. MinCGPA keeps only jobs whose
// CGPA bar is at or below the given value; zero means no CGPA filter.
type ListFilter struct {
	Search   string
	JobType  string
	Location string
	MinCGPA  float64
	Limit    int
	Offset   int
}
