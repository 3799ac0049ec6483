package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shacademy-backend/internal/domain"
	"shacademy-backend/pkg/utils"

	"github.com/google/uuid"
)

type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   domain.TokenStore
	cache    domain.StatsCache
	cfg      TokenConfig
}

func NewAuthUsecase(ur domain.UserRepository, ts domain.TokenStore, cache domain.StatsCache, cfg TokenConfig) domain.AuthUsecase {
	return &authUsecase{userRepo: ur, tokens: ts, cache: cache, cfg: cfg}
}

func (uc *authUsecase) Register(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrEmailTaken
	}
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.IsBlocked = false

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return err
	}
	invalidateStats(ctx, uc.cache)
	return nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, domain.ErrUserBlocked
	}

	access, err := utils.GenerateAccessToken(uc.cfg.Secret, uc.cfg.AccessTTL, user.ID, user.Name, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh, err := utils.GenerateRefreshToken(uc.cfg.Secret, uc.cfg.RefreshTTL, user.ID, jti)
	if err != nil {
		return nil, err
	}
	if err := uc.tokens.Save(ctx, jti, user.ID, uc.cfg.RefreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (uc *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ValidateJWT(uc.cfg.Secret, refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	live, err := uc.tokens.Exists(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if !live {
		return "", domain.ErrInvalidToken
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	if user.IsBlocked {
		_ = uc.tokens.Revoke(ctx, claims.ID)
		return "", domain.ErrUserBlocked
	}

	return utils.GenerateAccessToken(uc.cfg.Secret, uc.cfg.AccessTTL, user.ID, user.Name, user.Email, string(user.Role))
}

// Logout is idempotent: an unknown or already revoked token is not an error.
func (uc *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := utils.ValidateJWT(uc.cfg.Secret, refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil
	}
	return uc.tokens.Revoke(ctx, claims.ID)
}
