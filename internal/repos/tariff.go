package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type TariffRepo interface {
  CreateBatch(ctx context.Context, tx *gorm.DB, tariffs []*types.Tariff) error
  GetByID(ctx context.Context, tx *gorm.DB, tariffID uint) (*types.Tariff, error)
  GetByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) ([]*types.Tariff, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Tariff, error)
  CountByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error)
  Save(ctx context.Context, tx *gorm.DB, tariff *types.Tariff) error
  Delete(ctx context.Context, tx *gorm.DB, tariffID uint) error
  DeleteByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error)
}

type tariffRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTariffRepo(db *gorm.DB, baseLog *logger.Logger) TariffRepo {
  return &tariffRepo{db: db, log: baseLog.With("repo", "TariffRepo")}
}

func (r *tariffRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *tariffRepo) CreateBatch(ctx context.Context, tx *gorm.DB, tariffs []*types.Tariff) error {
  if len(tariffs) == 0 {
    return nil
  }
  return r.conn(tx).WithContext(ctx).Create(&tariffs).Error
}

func (r *tariffRepo) GetByID(ctx context.Context, tx *gorm.DB, tariffID uint) (*types.Tariff, error) {
  var tariff types.Tariff
  if err := r.conn(tx).WithContext(ctx).First(&tariff, "tariff_id = ?", tariffID).Error; err != nil {
    return nil, err
  }
  return &tariff, nil
}

func (r *tariffRepo) GetByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) ([]*types.Tariff, error) {
  var tariffs []*types.Tariff
  if err := r.conn(tx).WithContext(ctx).
    Where("policy_id = ?", policyID).
    Order("tariff_id").
    Find(&tariffs).Error; err != nil {
    return nil, err
  }
  return tariffs, nil
}

func (r *tariffRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Tariff, error) {
  var tariffs []*types.Tariff
  if err := r.conn(tx).WithContext(ctx).Order("tariff_id").Find(&tariffs).Error; err != nil {
    return nil, err
  }
  return tariffs, nil
}

func (r *tariffRepo) CountByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.Tariff{}).
    Where("policy_id = ?", policyID).Count(&total).Error
  return total, err
}

func (r *tariffRepo) Save(ctx context.Context, tx *gorm.DB, tariff *types.Tariff) error {
  return r.conn(tx).WithContext(ctx).Save(tariff).Error
}

func (r *tariffRepo) Delete(ctx context.Context, tx *gorm.DB, tariffID uint) error {
  return r.conn(tx).WithContext(ctx).Delete(&types.Tariff{}, "tariff_id = ?", tariffID).Error
}

func (r *tariffRepo) DeleteByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error) {
  result := r.conn(tx).WithContext(ctx).Delete(&types.Tariff{}, "policy_id = ?", policyID)
  return result.RowsAffected, result.Error
}
