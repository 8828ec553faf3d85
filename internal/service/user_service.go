package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/pkg/entity"
)

// Profile of users created from a frame interaction
const (
	FarcasterGoal           = "Personal growth and development"
	FarcasterNiche          = "productivity"
	FarcasterExperience     = entity.Intermediate
	FarcasterTimeCommitment = "15min"
)

const defaultNotificationTime = "09:00"

type UserService struct {
	repo  repository.UsersRepositoryI
	clock func() time.Time
}

func NewUserService(usersRepo repository.UsersRepositoryI, clock func() time.Time) *UserService {
	if clock == nil {
		clock = time.Now
	}
	return &UserService{
		repo:  usersRepo,
		clock: clock,
	}
}

func (us *UserService) Onboard(ctx context.Context, req *OnboardingRequest) (*entity.User, error) {
	if req == nil {
		return nil, errorvalues.ErrValidation
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user := us.newUser("user_"+uuid.NewString(), sanitize(req.Goal), req.Niche, req.Experience, req.TimeCommitment)
	if err := us.repo.Save(ctx, user); err != nil {
		return nil, errors.New("repository creating error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) GetOrCreateFarcasterUser(ctx context.Context, fid string) (*entity.User, error) {
	if fid == "" {
		return nil, errorvalues.ErrInvalidIdentifier
	}
	user, err := us.repo.FindByFarcasterID(ctx, fid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errorvalues.ErrFarcasterLinkNotFound) {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	user = us.newUser("farcaster_"+fid, FarcasterGoal, FarcasterNiche, FarcasterExperience, FarcasterTimeCommitment)
	if err = us.repo.Save(ctx, user); err != nil {
		return nil, errors.New("repository creating error: " + err.Error())
	}
	if err = us.repo.LinkFarcaster(ctx, fid, user.ID); err != nil {
		return nil, fmt.Errorf("linking farcaster id %s: %w", fid, err)
	}
	return user, nil
}

func (us *UserService) newUser(id, goal, niche string, experience entity.Experience, commitment string) *entity.User {
	return &entity.User{
		ID:                 id,
		StatedGoal:         goal,
		Niche:              niche,
		Experience:         experience,
		TimeCommitment:     commitment,
		OnboardingComplete: true,
		NotificationPreferences: entity.NotificationPreferences{
			Enabled: true,
			Time:    defaultNotificationTime,
		},
		CreatedAt: us.clock().UTC(),
	}
}
