package security

import (
	"testing"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

func TestJWTProviderGenerateAndParse(t *testing.T) {
	provider := NewJWTProvider("secret")
	userID := common.NewUUID()
	collegeID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "admin", collegeID.String(), time.Minute)
	if err != nil {
		t.Fatalf("expected token generated, got %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expected expiry in the future")
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("expected token to parse, got %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
	if claims.CollegeID != collegeID.String() {
		t.Fatalf("expected college id %s, got %q", collegeID, claims.CollegeID)
	}
}

func TestJWTProviderParse_RejectsTamperedSignature(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", "", time.Minute)
	if err != nil {
		t.Fatalf("expected token generated, got %v", err)
	}
	if _, err := provider.Parse(token + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
	if _, err := NewJWTProvider("other").Parse(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestJWTProviderParse_RejectsExpired(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", "", -time.Minute)
	if err != nil {
		t.Fatalf("expected token generated, got %v", err)
	}
	if _, err := provider.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
