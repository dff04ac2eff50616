package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type ProviderRepo interface {
  Create(ctx context.Context, tx *gorm.DB, provider *types.Provider) error
  GetByID(ctx context.Context, tx *gorm.DB, providerID uint) (*types.Provider, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Provider, error)
  IDSet(ctx context.Context, tx *gorm.DB) (map[uint]struct{}, error)
  Exists(ctx context.Context, tx *gorm.DB, providerID uint) (bool, error)
  Save(ctx context.Context, tx *gorm.DB, provider *types.Provider) error
  Delete(ctx context.Context, tx *gorm.DB, providerID uint) error
}

type providerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProviderRepo(db *gorm.DB, baseLog *logger.Logger) ProviderRepo {
  return &providerRepo{db: db, log: baseLog.With("repo", "ProviderRepo")}
}

func (r *providerRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *providerRepo) Create(ctx context.Context, tx *gorm.DB, provider *types.Provider) error {
  return r.conn(tx).WithContext(ctx).Create(provider).Error
}

func (r *providerRepo) GetByID(ctx context.Context, tx *gorm.DB, providerID uint) (*types.Provider, error) {
  var provider types.Provider
  if err := r.conn(tx).WithContext(ctx).First(&provider, "provider_id = ?", providerID).Error; err != nil {
    return nil, err
  }
  return &provider, nil
}

func (r *providerRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Provider, error) {
  var providers []*types.Provider
  if err := r.conn(tx).WithContext(ctx).Order("provider_id").Find(&providers).Error; err != nil {
    return nil, err
  }
  return providers, nil
}

func (r *providerRepo) IDSet(ctx context.Context, tx *gorm.DB) (map[uint]struct{}, error) {
  var ids []uint
  if err := r.conn(tx).WithContext(ctx).Model(&types.Provider{}).
    Pluck("provider_id", &ids).Error; err != nil {
    return nil, err
  }
  set := make(map[uint]struct{}, len(ids))
  for _, id := range ids {
    set[id] = struct{}{}
  }
  return set, nil
}

func (r *providerRepo) Exists(ctx context.Context, tx *gorm.DB, providerID uint) (bool, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.Provider{}).
    Where("provider_id = ?", providerID).Count(&total).Error
  return total > 0, err
}

func (r *providerRepo) Save(ctx context.Context, tx *gorm.DB, provider *types.Provider) error {
  return r.conn(tx).WithContext(ctx).Save(provider).Error
}

func (r *providerRepo) Delete(ctx context.Context, tx *gorm.DB, providerID uint) error {
  return r.conn(tx).WithContext(ctx).Delete(&types.Provider{}, "provider_id = ?", providerID).Error
}
