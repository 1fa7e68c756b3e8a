package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
	"github.com/Kartikay-0111/Placify/internal/http/response"
	"github.com/Kartikay-0111/Placify/internal/security"
)

type contextKey string

const (
	ContextUserIDKey    contextKey = "user_id"
	ContextRoleKey      contextKey = "role"
	ContextCollegeIDKey contextKey = "college_id"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := m.jwt.Parse(parts[1])
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		userID, err := common.ParseUUID(claims.UserID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid user id", err))
			return
		}
		role := user.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
		ctx := context.WithValue(r.Context(), ContextUserIDKey, userID)
		ctx = context.WithValue(ctx, ContextRoleKey, role)
		if claims.CollegeID != "" {
			if collegeID, err := common.ParseUUID(claims.CollegeID); err == nil {
				ctx = context.WithValue(ctx, ContextCollegeIDKey, collegeID)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := r.Context().Value(ContextRoleKey).(user.Role)
			if !ok || current == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
				return
			}
			if current != role {
				response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(common.UUID)
	return id, ok
}

func RoleFromContext(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(ContextRoleKey).(user.Role)
	return role, ok
}

func CollegeIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextCollegeIDKey).(common.UUID)
	return id, ok
}
