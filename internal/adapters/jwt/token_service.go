package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "property-direct"

// TokenService implements port.TokenServicePort with HS256 JWTs.
type TokenService struct {
	signingKey []byte
	now        func() time.Time
}

func NewTokenService(signingKey string) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenService{signingKey: []byte(signingKey), now: time.Now}, nil
}

type accessClaims struct {
	AccountID uuid.UUID `json:"account_id"`
	Username  string    `json:"username"`
	IsSeller  bool      `json:"is_seller"`
	jwt.RegisteredClaims
}

func (s *TokenService) GenerateToken(ctx context.Context, account *domain.Account, ttl time.Duration) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	serviceLogger := logger.WithFields(port.Fields{
		"component":  "TokenService",
		"method":     "GenerateToken",
		"account_id": account.ID.String(),
	})

	now := s.now()
	claims := &accessClaims{
		AccountID: account.ID,
		Username:  account.Username,
		IsSeller:  account.IsSeller,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		serviceLogger.Error("Failed to sign token", err, nil)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	serviceLogger.Debug("Token generated.", port.Fields{"ttl": ttl.String()})
	return signedToken, nil
}

// ValidateToken accepts only HS256 tokens issued by this service.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	serviceLogger := logger.WithFields(port.Fields{
		"component": "TokenService",
		"method":    "ValidateToken",
	})

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			serviceLogger.Info("Token has expired", nil)
		} else {
			serviceLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.AccountID == uuid.Nil {
		serviceLogger.Warn("Token was parsed but carries no account", nil)
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		AccountID: claims.AccountID,
		Username:  claims.Username,
		IsSeller:  claims.IsSeller,
	}, nil
}
