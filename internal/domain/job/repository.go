package job

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	Delete(ctx context.Context, id common.UUID) error
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Job, error)
	ListAll(ctx context.Context) ([]AdminJob, error)
	ListVisibleToCollege(ctx context.Context, collegeID common.UUID, filter ListFilter) ([]VisibleJob, error)

	ListTargets(ctx context.Context, jobID common.UUID) ([]CollegeTarget, error)
	ListTargetsByCollege(ctx context.Context, collegeID common.UUID, status TargetStatus) ([]TargetDetail, error)
	// ReconcileTargets applies a computed diff of the job's target set in a
	// single transaction. Pairs outside both sets keep their approval status.
	ReconcileTargets(ctx context.Context, jobID common.UUID, add, remove []common.UUID) error
	UpdateTargetApproval(ctx context.Context, jobID, collegeID common.UUID, status TargetStatus) error
	HasApprovedTarget(ctx context.Context, jobID, collegeID common.UUID) (bool, error)
}
