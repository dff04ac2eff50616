package repos

import (
  "context"
  "time"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type UserFilter struct {
  Search   string
  IsActive *bool
  IsAdmin  *bool
  Page     int
  PageSize int
}

type UserRepo interface {
  Create(ctx context.Context, tx *gorm.DB, user *types.User) error
  GetByID(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
  List(ctx context.Context, tx *gorm.DB, filter UserFilter) ([]*types.User, int64, error)
  Save(ctx context.Context, tx *gorm.DB, user *types.User) error
  Delete(ctx context.Context, tx *gorm.DB, userID uint) error
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
  CountCreatedBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) (int64, error)
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
  return r.conn(tx).WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error) {
  var user types.User
  if err := r.conn(tx).WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
    return nil, err
  }
  return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
  var user types.User
  if err := r.conn(tx).WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
    return nil, err
  }
  return &user, nil
}

func (r *userRepo) List(ctx context.Context, tx *gorm.DB, filter UserFilter) ([]*types.User, int64, error) {
  query := r.conn(tx).WithContext(ctx).Model(&types.User{})
  if filter.Search != "" {
    pattern := "%" + filter.Search + "%"
    query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
  }
  if filter.IsActive != nil {
    query = query.Where("is_active = ?", *filter.IsActive)
  }
  if filter.IsAdmin != nil {
    query = query.Where("is_admin = ?", *filter.IsAdmin)
  }

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  var users []*types.User
  offset := (filter.Page - 1) * filter.PageSize
  if err := query.Offset(offset).Limit(filter.PageSize).Find(&users).Error; err != nil {
    return nil, 0, err
  }
  return users, total, nil
}

func (r *userRepo) Save(ctx context.Context, tx *gorm.DB, user *types.User) error {
  return r.conn(tx).WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, tx *gorm.DB, userID uint) error {
  return r.conn(tx).WithContext(ctx).Delete(&types.User{}, "user_id = ?", userID).Error
}

func (r *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.User{}).Count(&total).Error
  return total, err
}

func (r *userRepo) CountCreatedBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.User{}).
    Where("created_at >= ? AND created_at <= ?", start, end).
    Count(&total).Error
  return total, err
}
