package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"medqbank/internal/auth"
	"medqbank/internal/cache"
	"medqbank/internal/config"
	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrTokenRevoked    = errors.New("token has been revoked")
)

// AuthService verifies tokens issued by the hosted auth backend. It never
// issues tokens for end users itself.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*auth.Principal, error)
	Logout(ctx context.Context, principal *auth.Principal) error
	GetProfile(ctx context.Context, principal *auth.Principal) (*dto.MeResponse, error)
}

type authServiceImpl struct {
	profiles domain.ProfileRepository
	cache    domain.Cache
	cfg      config.AuthConfig
	now      func() time.Time
}

func NewAuthService(profiles domain.ProfileRepository, cache domain.Cache, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.Auth.JWTSecret) == 0 {
		return nil, errors.New("auth.jwt_secret is not configured")
	}
	return &authServiceImpl{
		profiles: profiles,
		cache:    cache,
		cfg:      appConfig.Auth,
		now:      time.Now,
	}, nil
}

// SignToken signs claims with HS256. The API only verifies tokens; this is
// used by cmd/seed to mint development tokens and by tests.
func SignToken(secret string, claims *dto.AuthClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// tokenID is the denylist key of a token: its jti, or a digest of the raw
// token when the issuer doesn't set one.
func tokenID(claims *dto.AuthClaims, tokenString string) string {
	if claims.ID != "" {
		return claims.ID
	}
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}

func snippet(token string) string {
	if len(token) > 20 {
		return token[:20] + "..."
	}
	return token
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*auth.Principal, error) {
	appLogger := logger.Get()

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}

	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Debug("JWT token expired", zap.String("token_snippet", snippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidJWTToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidJWTToken)
	}

	id := tokenID(claims, tokenString)
	if s.cache != nil {
		revoked, err := s.cache.Exists(ctx, cache.RevokedTokenKey(id))
		if err != nil {
			appLogger.Warn("Failed to check token denylist", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	principal := &auth.Principal{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: id,
		Token:   tokenString,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal, nil
}

// Logout denylists the principal's token until it would have expired.
func (s *authServiceImpl) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return domain.NewUnauthorizedError("Not authenticated")
	}
	if s.cache == nil {
		return domain.NewInternalError("Logout is unavailable without a cache", nil)
	}

	ttl := principal.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, cache.RevokedTokenKey(principal.TokenID), "1", ttl); err != nil {
		return domain.NewInternalError("Failed to revoke token", err)
	}
	logger.Get().Info("User logged out", zap.String("userID", principal.UserID))
	return nil
}

// GetProfile returns the stored profile, falling back to what the token says
// for users who never filled one in.
func (s *authServiceImpl) GetProfile(ctx context.Context, principal *auth.Principal) (*dto.MeResponse, error) {
	if principal == nil {
		return nil, domain.NewUnauthorizedError("Not authenticated")
	}

	resp := &dto.MeResponse{UserID: principal.UserID, Email: principal.Email}

	profile, err := s.profiles.GetProfileByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get profile", err)
	}
	if profile != nil {
		resp.FullName = profile.FullName
		resp.AvatarURL = profile.AvatarURL
		resp.Bio = profile.Bio
	}
	return resp, nil
}
