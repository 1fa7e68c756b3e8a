package application

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Detail, error)
	ListByCompany(ctx context.Context, companyID common.UUID, status Status) ([]Detail, error)
	ListByCollege(ctx context.Context, collegeID common.UUID, status Status) ([]Detail, error)
	UpdateCellDecision(ctx context.Context, id common.UUID, status Status, notes string) (*Application, error)
	UpdateCompanyDecision(ctx context.Context, id common.UUID, status Status, notes string) (*Application, error)
}
