package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	t.Setenv("HARBOR_AUTH_SECRET", "test-secret")
	ResetSecretForTests()

	token, err := GenerateToken("user-42", "foreman", 4, 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != "foreman" || claims.RoleLevel != 4 {
		t.Fatalf("role claims not preserved: %s/%d", claims.Role, claims.RoleLevel)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti claim")
	}
}

func TestGenerateTokenRequiresUser(t *testing.T) {
	t.Setenv("HARBOR_AUTH_SECRET", "test-secret")
	ResetSecretForTests()

	if _, err := GenerateToken("  ", "foreman", 4, time.Minute); err == nil {
		t.Fatalf("expected error for blank user id")
	}
	if _, err := GenerateToken("user-1", "foreman", 4, 0); err == nil {
		t.Fatalf("expected error for non-positive ttl")
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Setenv("HARBOR_AUTH_SECRET", "test-secret")
	ResetSecretForTests()

	token, err := GenerateToken("user-42", "checker", 3, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := ParseAndValidate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := ParseAndValidate(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("blank token should be invalid")
	}
}

func TestMissingSecret(t *testing.T) {
	t.Setenv("HARBOR_AUTH_SECRET", "")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, err := GenerateToken("user-42", "checker", 3, time.Minute); err == nil {
		t.Fatalf("expected error without configured secret")
	}
}

func TestContextHelpers(t *testing.T) {
	claims := &Claims{Role: "foreman", RoleLevel: 4}
	claims.Subject = "user-7"

	ctx := ContextWithClaims(context.Background(), claims)
	got, ok := ClaimsFromContext(ctx)
	if !ok || got.Subject != "user-7" {
		t.Fatalf("claims round-trip failed: %+v ok=%v", got, ok)
	}
	id, ok := UserIDFromContext(ctx)
	if !ok || id != "user-7" {
		t.Fatalf("unexpected user id: %s ok=%v", id, ok)
	}
	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Fatalf("empty context should have no claims")
	}
}
