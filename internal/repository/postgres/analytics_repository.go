package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/analytics"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Create(ctx context.Context, event analytics.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode analytics payload", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO analytics_events (id, name, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		common.NewUUID(), event.Name, event.UserID, payload, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store analytics event", err)
	}
	return nil
}
