package interview

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Repository interface {
	Create(ctx context.Context, iv Interview) (*Interview, error)
	GetByID(ctx context.Context, id common.UUID) (*Interview, error)
	FindByApplication(ctx context.Context, applicationID common.UUID) (*Interview, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Detail, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Detail, error)
	SetResult(ctx context.Context, id common.UUID, result Result) (*Interview, error)
}
