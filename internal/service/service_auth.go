package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/models"
)

// authService issues and verifies the bearer tokens that protect the
// control API.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from cfg. The returned service is
// safe for concurrent use; all state is read-only after construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	issuer := cfg.TokenIssuer
	if issuer == "" {
		issuer = config.DefaultTokenIssuer
	}

	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  issuer,
		logger:       logger,
	}
}

// CreateToken issues a signed JWT for subject valid for ttl.
func (a *authService) CreateToken(ctx context.Context, subject string, ttl time.Duration) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, subject, ttl, a.tokenSignKey)
	if err != nil {
		logger.FromContextOr(ctx, a.logger).Err(err).Str("subject", subject).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContextOr(ctx, a.logger).Debug().Err(err).Msg("rejected bearer token")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
