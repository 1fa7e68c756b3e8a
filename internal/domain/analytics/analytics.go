package analytics

import (
	"context"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Event struct {
	ID        common.UUID
	Name      string
	UserID    *common.UUID
	Payload   map[string]string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, event Event) error
}
