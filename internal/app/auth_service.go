package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/analytics"
	"github.com/Kartikay-0111/Placify/internal/domain/auth"
	"github.com/Kartikay-0111/Placify/internal/domain/college"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
	"github.com/Kartikay-0111/Placify/internal/security"
)

type AuthService struct {
	users         user.Repository
	refreshTokens auth.RefreshTokenRepository
	colleges      college.Repository
	analytics     analytics.Repository
	jwtProvider   *security.JWTProvider
	logger        Logger
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(users user.Repository, refreshTokens auth.RefreshTokenRepository, colleges college.Repository, analyticsRepo analytics.Repository, jwtProvider *security.JWTProvider, logger Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		colleges:      colleges,
		analytics:     analyticsRepo,
		jwtProvider:   jwtProvider,
		logger:        logger,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 8

func (s *AuthService) Register(ctx context.Context, email, password string, role user.Role, collegeID *common.UUID) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fields := map[string]string{}
	if !emailPattern.MatchString(email) {
		fields["email"] = "invalid email address"
	}
	if len(password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	switch role {
	case user.RoleStudent, user.RoleCompany, user.RoleAdmin:
	default:
		fields["role"] = "role must be student, company, or admin"
	}
	if role == user.RoleAdmin && collegeID == nil {
		fields["college_id"] = "college_id is required for admins"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	if collegeID != nil {
		if _, err := s.colleges.GetByID(ctx, *collegeID); err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewValidationError("invalid registration", map[string]string{"college_id": "unknown college"})
			}
			return nil, err
		}
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CollegeID:    collegeID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", created.ID.String(), "role", string(role))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.registered", UserID: &created.ID, Payload: analyticsPayload(ctx, map[string]string{"role": string(role)})})
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *user.User, error) {
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.login_failed", UserID: &account.ID, Payload: analyticsPayload(ctx, map[string]string{})})
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.logged_in", UserID: &account.ID, Payload: analyticsPayload(ctx, map[string]string{})})
	return pair, account, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	stored, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, err
	}
	now := time.Now().UTC()
	if stored.RevokedAt != nil || stored.ExpiresAt.Before(now) {
		return nil, common.NewError(common.CodeUnauthorized, "refresh token expired", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Revoke(ctx, refreshToken, now.Unix()); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, account)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokens.Revoke(ctx, refreshToken, time.Now().UTC().Unix())
}

func (s *AuthService) issueTokens(ctx context.Context, account *user.User) (*auth.TokenPair, error) {
	collegeID := ""
	if account.CollegeID != nil {
		collegeID = account.CollegeID.String()
	}
	accessToken, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), collegeID, s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate access token", err)
	}
	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate refresh token", err)
	}
	if err := s.refreshTokens.Store(ctx, auth.RefreshToken{
		UserID:    account.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresAt: expiresAt}, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
