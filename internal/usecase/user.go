package usecase

import (
	"context"
	"errors"
	"strings"

	"shacademy-backend/internal/domain"
)

type userUsecase struct {
	userRepo domain.UserRepository
	cache    domain.StatsCache
}

func NewUserUsecase(ur domain.UserRepository, cache domain.StatsCache) domain.UserUsecase {
	return &userUsecase{userRepo: ur, cache: cache}
}

func (uc *userUsecase) GetProfile(ctx context.Context, id uint) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, id uint, name, email string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !strings.EqualFold(email, user.Email) {
		other, err := uc.userRepo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
		user.Email = email
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUsecase) ListUsers(ctx context.Context, filter domain.UserFilter) (*domain.Page[domain.User], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(users, total, filter.PageRequest), nil
}

func (uc *userUsecase) SetBlocked(ctx context.Context, actorID, targetID uint, blocked bool) (*domain.User, error) {
	if blocked && actorID == targetID {
		return nil, domain.ErrCannotBlockSelf
	}
	if err := uc.userRepo.SetBlocked(ctx, targetID, blocked); err != nil {
		return nil, err
	}
	invalidateStats(ctx, uc.cache)
	return uc.userRepo.GetByID(ctx, targetID)
}
