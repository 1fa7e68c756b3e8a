package auth

import (
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type RefreshToken struct {
	ID        common.UUID
	UserID    common.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
