package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/auth"
)

// RefreshTokenRepository stores only a hash of each token; the raw value
// never touches the database.
type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Store(ctx context.Context, token auth.RefreshToken) error {
	if token.ID.IsZero() {
		token.ID = common.NewUUID()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		token.ID, token.UserID, hashToken(token.Token), token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, expires_at, created_at, revoked_at FROM refresh_tokens WHERE token_hash = $1`,
		hashToken(token))
	var stored auth.RefreshToken
	if err := row.Scan(&stored.ID, &stored.UserID, &stored.ExpiresAt, &stored.CreatedAt, &stored.RevokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "refresh token not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load refresh token", err)
	}
	stored.Token = token
	return &stored, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked_at = $1 WHERE token_hash = $2 AND revoked_at IS NULL`,
		time.Unix(revokedAtUnix, 0).UTC(), hashToken(token))
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to revoke refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked_at = $1 WHERE user_id = $2 AND revoked_at IS NULL`,
		time.Unix(revokedAtUnix, 0).UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to revoke refresh tokens", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
