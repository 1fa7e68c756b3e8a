package user

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
