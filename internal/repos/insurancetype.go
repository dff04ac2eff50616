package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type InsuranceTypeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, insuranceType *types.InsuranceType) error
  GetByID(ctx context.Context, tx *gorm.DB, typeID uint) (*types.InsuranceType, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.InsuranceType, error)
  IDSet(ctx context.Context, tx *gorm.DB) (map[uint]struct{}, error)
}

type insuranceTypeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInsuranceTypeRepo(db *gorm.DB, baseLog *logger.Logger) InsuranceTypeRepo {
  return &insuranceTypeRepo{db: db, log: baseLog.With("repo", "InsuranceTypeRepo")}
}

func (r *insuranceTypeRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *insuranceTypeRepo) Create(ctx context.Context, tx *gorm.DB, insuranceType *types.InsuranceType) error {
  return r.conn(tx).WithContext(ctx).Create(insuranceType).Error
}

func (r *insuranceTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, typeID uint) (*types.InsuranceType, error) {
  var insuranceType types.InsuranceType
  if err := r.conn(tx).WithContext(ctx).First(&insuranceType, "type_id = ?", typeID).Error; err != nil {
    return nil, err
  }
  return &insuranceType, nil
}

func (r *insuranceTypeRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.InsuranceType, error) {
  var insuranceTypes []*types.InsuranceType
  if err := r.conn(tx).WithContext(ctx).Order("type_id").Find(&insuranceTypes).Error; err != nil {
    return nil, err
  }
  return insuranceTypes, nil
}

func (r *insuranceTypeRepo) IDSet(ctx context.Context, tx *gorm.DB) (map[uint]struct{}, error) {
  var ids []uint
  if err := r.conn(tx).WithContext(ctx).Model(&types.InsuranceType{}).Pluck("type_id", &ids).Error; err != nil {
    return nil, err
  }
  set := make(map[uint]struct{}, len(ids))
  for _, id := range ids {
    set[id] = struct{}{}
  }
  return set, nil
}
