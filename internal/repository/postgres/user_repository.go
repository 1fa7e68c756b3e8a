package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	account.ID = common.NewUUID()
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	account.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, role, college_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.Email, account.PasswordHash, account.Role, account.CollegeID, account.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &account, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, college_id, created_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, college_id, created_at FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func scanUser(row *sql.Row) (*user.User, error) {
	var account user.User
	if err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &account.Role, &account.CollegeID, &account.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &account, nil
}
