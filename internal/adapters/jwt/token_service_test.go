package token_adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testAccount() *domain.Account {
	return &domain.Account{ID: uuid.New(), Username: "test_seller", IsSeller: true}
}

func TestGenerateAndValidate(t *testing.T) {
	svc, err := NewTokenService("secret")
	if err != nil {
		t.Fatal(err)
	}
	account := testAccount()

	token, err := svc.GenerateToken(context.Background(), account, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AccountID != account.ID || claims.Username != account.Username || !claims.IsSeller {
		t.Errorf("claims do not match account: %+v", claims)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	svc, _ := NewTokenService("secret")
	other, _ := NewTokenService("another-secret")
	account := testAccount()

	expired, _ := svc.GenerateToken(context.Background(), account, -time.Minute)
	foreign, _ := other.GenerateToken(context.Background(), account, time.Hour)
	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"account_id": account.ID.String(),
		"iss":        tokenIssuer,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": foreign,
		"alg none":  unsigned,
		"garbage":   "not.a.token",
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestNewTokenServiceRequiresKey(t *testing.T) {
	if _, err := NewTokenService(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}
