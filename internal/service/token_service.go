package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/token"
)

// RefreshPolicy decides what rotateRefresh does with the refresh token.
type RefreshPolicy string

const (
	// RefreshReuse keeps the presented refresh token valid until logout or the next login.
	RefreshReuse RefreshPolicy = "reuse"
	// RefreshRotate issues a new refresh token on every refresh and invalidates the old one.
	RefreshRotate RefreshPolicy = "rotate"
)

// ParseRefreshPolicy accepts "reuse" and "rotate"; empty means reuse.
func ParseRefreshPolicy(s string) (RefreshPolicy, error) {
	switch p := RefreshPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return RefreshReuse, nil
	case RefreshReuse, RefreshRotate:
		return p, nil
	default:
		return "", fmt.Errorf("unknown refresh policy %q", s)
	}
}

// TokenPair is what a successful login or refresh hands to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenManager signs and verifies tokens.
type TokenManager interface {
	GenerateAccessToken(id token.Identity) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ParseAccessToken(tokenString string) (token.Identity, error)
	ParseRefreshToken(tokenString string) (int64, error)
}

// TokenService owns the session token lifecycle.
type TokenService interface {
	IssuePair(ctx context.Context, userID int64) (TokenPair, error)
	VerifyAccess(ctx context.Context, accessToken string) (token.Identity, error)
	RotateRefresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Revoke(ctx context.Context, userID int64) error
}

type tokenService struct {
	users  repository.UserRepository
	tokens TokenManager
	policy RefreshPolicy
	logger logrus.FieldLogger
}

func NewTokenService(users repository.UserRepository, tokens TokenManager, policy RefreshPolicy, logger logrus.FieldLogger) TokenService {
	if policy == "" {
		policy = RefreshReuse
	}
	return &tokenService{
		users:  users,
		tokens: tokens,
		policy: policy,
		logger: logger,
	}
}

// IssuePair signs a new pair and stores the refresh token, replacing any previous one.
func (s *tokenService) IssuePair(ctx context.Context, userID int64) (TokenPair, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, apperr.Internal("failed to generate tokens", err)
	}

	access, err := s.tokens.GenerateAccessToken(identityOf(user))
	if err != nil {
		return TokenPair{}, apperr.Internal("failed to generate tokens", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, apperr.Internal("failed to generate tokens", err)
	}
	if err := s.users.SetRefreshTokenHash(ctx, user.ID, hashToken(refresh)); err != nil {
		return TokenPair{}, apperr.Internal("failed to generate tokens", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *tokenService) VerifyAccess(ctx context.Context, accessToken string) (token.Identity, error) {
	if strings.TrimSpace(accessToken) == "" {
		return token.Identity{}, apperr.Unauthorized("unauthorized request")
	}
	id, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return token.Identity{}, apperr.Unauthorized("invalid access token")
	}
	return id, nil
}

func (s *tokenService) RotateRefresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return TokenPair{}, apperr.Unauthorized("unauthorized request")
	}

	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, apperr.Unauthorized("invalid refresh token")
		}
		return TokenPair{}, apperr.Internal("failed to refresh session", err)
	}

	if !matchesStored(user.RefreshTokenHash, refreshToken) {
		s.logger.WithField("user_id", user.ID).Warn("refresh token does not match the stored one")
		return TokenPair{}, apperr.Unauthorized("refresh token is expired or used")
	}

	if s.policy == RefreshRotate {
		return s.IssuePair(ctx, user.ID)
	}

	access, err := s.tokens.GenerateAccessToken(identityOf(user))
	if err != nil {
		return TokenPair{}, apperr.Internal("failed to refresh session", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Revoke clears the stored refresh token. Unknown users are treated as already revoked.
func (s *tokenService) Revoke(ctx context.Context, userID int64) error {
	if err := s.users.SetRefreshTokenHash(ctx, userID, ""); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperr.Internal("failed to log out", err)
	}
	return nil
}

func identityOf(user *domain.User) token.Identity {
	return token.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

func hashToken(t string) string {
	sum := sha256.Sum256([]byte(t))
	return hex.EncodeToString(sum[:])
}

func matchesStored(storedHash, presented string) bool {
	if storedHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(hashToken(presented))) == 1
}
