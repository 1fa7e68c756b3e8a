package interview

import (
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Type string

const (
	TypeTechnical Type = "technical"
	TypeHR        Type = "hr"
	TypeOther     Type = "other"
)

type Result string

const (
	ResultSelected    Result = "selected"
	ResultNotSelected Result = "not_selected"
)

// Interview records logistics for a company-approved application. Result
// stays empty until set after the interview date has passed.
type Interview struct {
	ID            common.UUID `json:"id"`
	ApplicationID common.UUID `json:"application_id"`
	InterviewDate time.Time   `json:"interview_date"`
	InterviewType Type        `json:"interview_type"`
	Location      string      `json:"location,omitempty"`
	MeetingLink   string      `json:"meeting_link,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Result        Result      `json:"result,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Detail joins an interview with the application, student and job it belongs
// to.
type Detail struct {
	Interview
	JobID       common.UUID `json:"job_id"`
	JobTitle    string      `json:"job_title"`
	StudentID   common.UUID `json:"student_id"`
	StudentName string      `json:"student_name"`
	CompanyName string      `json:"company_name"`
}

// Stats are the company dashboard counters, recomputed from the full set on
// every load.
type Stats struct {
	AwaitingInterview int `json:"awaiting_interview"`
	Scheduled         int `json:"scheduled"`
	Selected          int `json:"selected"`
	NotSelected       int `json:"not_selected"`
}
