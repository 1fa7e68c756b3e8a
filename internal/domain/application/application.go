package application

import (
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusCellApproved    Status = "cell_approved"
	StatusCellRejected    Status = "cell_rejected"
	StatusCompanyApproved Status = "company_approved"
	StatusCompanyRejected Status = "company_rejected"
)

// Application tracks one student's candidacy for one job. At most one row
// exists per (student, job) pair.
type Application struct {
	ID                 common.UUID `json:"id"`
	JobID              common.UUID `json:"job_id"`
	StudentID          common.UUID `json:"student_id"`
	Status             Status      `json:"status"`
	PlacementCellNotes string      `json:"placement_cell_notes,omitempty"`
	CompanyNotes       string      `json:"company_notes,omitempty"`
	SubmittedAt        time.Time   `json:"submitted_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// Detail is an application joined with the job and student rows the listing
// screens show next to it.
type Detail struct {
	Application
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
	Branch      string `json:"branch"`
}
