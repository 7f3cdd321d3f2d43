package services

import (
	"context"
	"errors"
	"time"

	"github.com/hari2128-cell/CureVox/internal/auth"
	"github.com/hari2128-cell/CureVox/internal/identity"
	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/internal/repositories"
	"github.com/hari2128-cell/CureVox/internal/services/dto"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	// CompleteProfile exchanges a verified identity-provider token plus
	// profile data for local access and refresh tokens.
	CompleteProfile(ctx context.Context, db *gorm.DB, req *dto.CompleteProfileRequest, meta dto.ClientMeta) (*dto.AuthResponse, error)

	// Refresh exchanges a refresh token for a fresh token pair.
	Refresh(ctx context.Context, db *gorm.DB, refreshToken string, meta dto.ClientMeta) (*dto.AuthResponse, error)

	// RefreshForUser issues a fresh token pair for an already authenticated
	// user (header-only refresh, no body token).
	RefreshForUser(ctx context.Context, db *gorm.DB, userID string, meta dto.ClientMeta) (*dto.AuthResponse, error)

	// Logout revokes the session tied to the bearer token. Repeated calls
	// succeed with Revoked=false.
	Logout(ctx context.Context, db *gorm.DB, bearerToken string) (*dto.LogoutResult, error)

	// LogoutAll revokes every active session of the user and reports how
	// many were closed.
	LogoutAll(ctx context.Context, db *gorm.DB, userID string) (*dto.LogoutAllResult, error)

	// IsSessionActive reports whether the bearer token still has an
	// active session row.
	IsSessionActive(ctx context.Context, db *gorm.DB, bearerToken string) (bool, error)
}

type AuthServiceImpl struct {
	verifier    identity.Verifier
	tokens      *auth.TokenManager
	userService UserService
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

func NewAuthService(
	verifier identity.Verifier,
	tokens *auth.TokenManager,
	userService UserService,
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
) AuthService {
	return &AuthServiceImpl{
		verifier:    verifier,
		tokens:      tokens,
		userService: userService,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *AuthServiceImpl) CompleteProfile(ctx context.Context, db *gorm.DB, req *dto.CompleteProfileRequest, meta dto.ClientMeta) (*dto.AuthResponse, error) {
	claims, err := s.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrServiceUnavailable):
			return nil, apperrors.ErrIdentityProvider(err)
		case errors.Is(err, identity.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		default:
			return nil, apperrors.ErrInvalidToken
		}
	}

	user, err := s.userService.ResolveOrCreate(ctx, db, claims, req)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, db, user, meta)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, db *gorm.DB, refreshToken string, meta dto.ClientMeta) (*dto.AuthResponse, error) {
	claims, err := s.tokens.ParseToken(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, auth.ErrInvalidSignature):
			return nil, apperrors.ErrInvalidSignature
		default:
			return nil, apperrors.ErrInvalidToken
		}
	}
	if claims.TokenType != "refresh" {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userService.GetByID(ctx, db, claims.UserID())
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, db, user, meta)
}

func (s *AuthServiceImpl) RefreshForUser(ctx context.Context, db *gorm.DB, userID string, meta dto.ClientMeta) (*dto.AuthResponse, error) {
	user, err := s.userService.GetByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, db, user, meta)
}

// issueTokens mints the pair and records a session row keyed by the access
// token. A failed session insert is logged but does not fail the login; the
// tokens are already valid and revocation just loses one audit row.
func (s *AuthServiceImpl) issueTokens(ctx context.Context, db *gorm.DB, user *models.User, meta dto.ClientMeta) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	session := &models.Session{
		UserID:     user.ID,
		Token:      accessToken,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		DeviceInfo: meta.DeviceInfo,
		LoginTime:  now,
		IsActive:   true,
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		logger.CtxWarn(ctx, "failed to record session", "error", err)
	}
	if err := s.userRepo.UpdateLastLogin(db, user.ID, now); err != nil {
		logger.CtxWarn(ctx, "failed to stamp last login", "error", err)
	}
	user.LastLogin = &now

	return &dto.AuthResponse{
		Tokens: dto.AuthTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		},
		User: dto.NewUserPayload(user),
	}, nil
}

func (s *AuthServiceImpl) Logout(_ context.Context, db *gorm.DB, bearerToken string) (*dto.LogoutResult, error) {
	revoked, err := s.sessionRepo.Invalidate(db, bearerToken)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return &dto.LogoutResult{Revoked: revoked}, nil
}

func (s *AuthServiceImpl) LogoutAll(_ context.Context, db *gorm.DB, userID string) (*dto.LogoutAllResult, error) {
	count, err := s.sessionRepo.InvalidateAllForUser(db, userID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return &dto.LogoutAllResult{RevokedCount: count}, nil
}

func (s *AuthServiceImpl) IsSessionActive(_ context.Context, db *gorm.DB, bearerToken string) (bool, error) {
	active, err := s.sessionRepo.IsActive(db, bearerToken)
	if err != nil {
		return false, apperrors.ErrDatabase(err)
	}
	return active, nil
}
