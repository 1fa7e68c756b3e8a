package app

import (
	"context"
	"testing"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/college"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
	"github.com/Kartikay-0111/Placify/internal/security"
)

func newAuthService(users *fakeUserRepo, refresh *fakeRefreshTokenRepo, colleges *fakeCollegeRepo) *AuthService {
	jwtProvider := security.NewJWTProvider("secret")
	return NewAuthService(users, refresh, colleges, noopAnalyticsRepo{}, jwtProvider, nopLogger{}, time.Minute, time.Hour)
}

func TestAuthServiceRegister_Student(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeRefreshTokenRepo(), newFakeCollegeRepo())

	created, err := service.Register(context.Background(), "Asha@Example.com", "s3cret-pass", user.RoleStudent, nil)
	if err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	if created.Email != "asha@example.com" {
		t.Fatalf("expected email to be lowercased, got %q", created.Email)
	}
	if created.Role != user.RoleStudent {
		t.Fatalf("expected student role, got %s", created.Role)
	}
	if created.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
}

func TestAuthServiceRegister_DuplicateEmailConflicts(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeRefreshTokenRepo(), newFakeCollegeRepo())
	ctx := context.Background()

	if _, err := service.Register(ctx, "asha@example.com", "s3cret-pass", user.RoleStudent, nil); err != nil {
		t.Fatalf("expected first registration to succeed, got %v", err)
	}
	_, err := service.Register(ctx, "asha@example.com", "other-pass123", user.RoleStudent, nil)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthServiceRegister_AdminNeedsKnownCollege(t *testing.T) {
	collegeID := common.NewUUID()
	colleges := newFakeCollegeRepo(college.College{ID: collegeID, Name: "IIT Example"})
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), colleges)
	ctx := context.Background()

	if _, err := service.Register(ctx, "cell@example.com", "s3cret-pass", user.RoleAdmin, nil); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error without college, got %v", err)
	}
	unknown := common.NewUUID()
	if _, err := service.Register(ctx, "cell@example.com", "s3cret-pass", user.RoleAdmin, &unknown); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for unknown college, got %v", err)
	}
	created, err := service.Register(ctx, "cell@example.com", "s3cret-pass", user.RoleAdmin, &collegeID)
	if err != nil {
		t.Fatalf("expected admin registration to succeed, got %v", err)
	}
	if created.CollegeID == nil || *created.CollegeID != collegeID {
		t.Fatal("expected admin to carry college id")
	}
}

func TestAuthServiceLogin(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeRefreshTokenRepo(), newFakeCollegeRepo())
	ctx := context.Background()

	if _, err := service.Register(ctx, "asha@example.com", "s3cret-pass", user.RoleStudent, nil); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}

	pair, account, err := service.Login(ctx, "asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if pair == nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if account == nil || account.Email != "asha@example.com" {
		t.Fatal("expected account returned")
	}

	if _, _, err := service.Login(ctx, "asha@example.com", "wrong-pass"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, _, err := service.Login(ctx, "nobody@example.com", "s3cret-pass"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestAuthServiceRefresh_RotatesToken(t *testing.T) {
	users := newFakeUserRepo()
	refresh := newFakeRefreshTokenRepo()
	service := newAuthService(users, refresh, newFakeCollegeRepo())
	ctx := context.Background()

	if _, err := service.Register(ctx, "asha@example.com", "s3cret-pass", user.RoleStudent, nil); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	pair, _, err := service.Login(ctx, "asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}

	rotated, err := service.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("expected refresh to succeed, got %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("expected refresh token rotation")
	}
	if _, err := service.Refresh(ctx, pair.RefreshToken); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected old token to be revoked, got %v", err)
	}
}

func TestAuthServiceLogin_TokenCarriesRoleAndCollege(t *testing.T) {
	collegeID := common.NewUUID()
	colleges := newFakeCollegeRepo(college.College{ID: collegeID, Name: "IIT Example"})
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), colleges)
	ctx := context.Background()

	if _, err := service.Register(ctx, "cell@example.com", "s3cret-pass", user.RoleAdmin, &collegeID); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	pair, _, err := service.Login(ctx, "cell@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}

	claims, err := security.NewJWTProvider("secret").Parse(pair.AccessToken)
	if err != nil {
		t.Fatalf("expected token parse, got %v", err)
	}
	if claims.Role != string(user.RoleAdmin) {
		t.Fatalf("expected admin role claim, got %q", claims.Role)
	}
	if claims.CollegeID != collegeID.String() {
		t.Fatalf("expected college claim %s, got %q", collegeID, claims.CollegeID)
	}
}
