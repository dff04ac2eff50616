package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

type UserUpdateInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

type UserService interface {
	Get(ctx context.Context, userID uint) (*types.User, error)
	List(ctx context.Context, filter repos.UserFilter) ([]*types.User, int64, error)
	Update(ctx context.Context, userID uint, input UserUpdateInput) (*types.User, error)
	SetActive(ctx context.Context, userID uint, active bool) (*types.User, error)
	Delete(ctx context.Context, userID uint) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) Get(ctx context.Context, userID uint) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *userService) List(ctx context.Context, filter repos.UserFilter) ([]*types.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	return s.userRepo.List(ctx, nil, filter)
}

// Update applies an allow-listed set of fields; email and password hash are
// never writable through this path.
func (s *userService) Update(ctx context.Context, userID uint, input UserUpdateInput) (*types.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if err := s.userRepo.Save(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) SetActive(ctx context.Context, userID uint, active bool) (*types.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.Save(ctx, nil, user); err != nil {
		return nil, err
	}
	s.log.Info("user active flag changed", "user_id", userID, "is_active", active)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, nil, userID)
}
