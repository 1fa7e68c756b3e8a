package app

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
)

type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Metrics is the slice of the collector the services record to.
type Metrics interface {
	RecordApplicationCreated()
	RecordTransition(status string)
	RecordInterviewScheduled()
}

type nopMetrics struct{}

func (nopMetrics) RecordApplicationCreated() {}
func (nopMetrics) RecordTransition(string)   {}
func (nopMetrics) RecordInterviewScheduled() {}

func orNopMetrics(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

func analyticsPayload(ctx context.Context, payload map[string]string) map[string]string {
	if requestID := common.RequestIDFromContext(ctx); requestID != "" {
		payload["request_id"] = requestID
	}
	return payload
}

func IsStudentProfileComplete(p profile.StudentProfile) bool {
	return p.FullName != "" && p.RollNumber != "" && p.Branch != "" && p.GraduationYear > 0
}

func IsCompanyProfileComplete(p profile.CompanyProfile) bool {
	return p.CompanyName != "" && p.Industry != "" && p.Location != ""
}
