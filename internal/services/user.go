package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/repos"
	"github.com/paceline/paceline-backend/internal/requestdata"
	"github.com/paceline/paceline-backend/internal/types"
)

// Identity modes shift the tone of engine recommendations, never the math.
const (
	IdentityModeCompetitive = "competitive"
	IdentityModeBalanced    = "balanced"
	IdentityModeLongevity   = "longevity"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateIdentityMode(ctx context.Context, identityMode string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("User not found")
	}
	return users[0], nil
}

func (us *userService) UpdateIdentityMode(ctx context.Context, identityMode string) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}

	switch identityMode {
	case IdentityModeCompetitive, IdentityModeBalanced, IdentityModeLongevity:
	default:
		return nil, fmt.Errorf("Unknown identity mode %q", identityMode)
	}

	if err := us.userRepo.UpdateIdentityMode(ctx, nil, rd.UserID, identityMode); err != nil {
		return nil, fmt.Errorf("Failed to update identity mode: %w", err)
	}
	return us.GetMe(ctx)
}
