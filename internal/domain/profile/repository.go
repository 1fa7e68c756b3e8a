package profile

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type StudentRepository interface {
	Upsert(ctx context.Context, p StudentProfile) (*StudentProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
	UpdateFiles(ctx context.Context, userID common.UUID, resumeURL, avatarURL string) error
	UpdateApproval(ctx context.Context, userID common.UUID, status ApprovalStatus) error
	ListByCollege(ctx context.Context, collegeID common.UUID, status ApprovalStatus) ([]StudentProfile, error)
}

type CompanyRepository interface {
	Upsert(ctx context.Context, p CompanyProfile) (*CompanyProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*CompanyProfile, error)
	UpdateLogo(ctx context.Context, userID common.UUID, logoURL string) error
}
