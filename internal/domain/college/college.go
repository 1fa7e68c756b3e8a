package college

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
)

// College is read-only reference data; rows are seeded by migration.
type College struct {
	ID       common.UUID `json:"id"`
	Name     string      `json:"name"`
	Location string      `json:"location"`
}

type Repository interface {
	List(ctx context.Context) ([]College, error)
	GetByID(ctx context.Context, id common.UUID) (*College, error)
}
