package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type PlanCriteriaRepo interface {
  Create(ctx context.Context, tx *gorm.DB, criteria *types.PlanCriteria) error
  GetByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (*types.PlanCriteria, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.PlanCriteria, error)
  CountByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error)
  Save(ctx context.Context, tx *gorm.DB, criteria *types.PlanCriteria) error
  DeleteByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) error
}

type planCriteriaRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlanCriteriaRepo(db *gorm.DB, baseLog *logger.Logger) PlanCriteriaRepo {
  return &planCriteriaRepo{db: db, log: baseLog.With("repo", "PlanCriteriaRepo")}
}

func (r *planCriteriaRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *planCriteriaRepo) Create(ctx context.Context, tx *gorm.DB, criteria *types.PlanCriteria) error {
  return r.conn(tx).WithContext(ctx).Create(criteria).Error
}

// GetByPolicyID returns (nil, nil) when no criteria row exists for the plan.
func (r *planCriteriaRepo) GetByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (*types.PlanCriteria, error) {
  var criteria types.PlanCriteria
  err := r.conn(tx).WithContext(ctx).First(&criteria, "policy_id = ?", policyID).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &criteria, nil
}

func (r *planCriteriaRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.PlanCriteria, error) {
  var criteria []*types.PlanCriteria
  if err := r.conn(tx).WithContext(ctx).Find(&criteria).Error; err != nil {
    return nil, err
  }
  return criteria, nil
}

func (r *planCriteriaRepo) CountByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.PlanCriteria{}).
    Where("policy_id = ?", policyID).Count(&total).Error
  return total, err
}

func (r *planCriteriaRepo) Save(ctx context.Context, tx *gorm.DB, criteria *types.PlanCriteria) error {
  return r.conn(tx).WithContext(ctx).Save(criteria).Error
}

func (r *planCriteriaRepo) DeleteByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) error {
  return r.conn(tx).WithContext(ctx).Delete(&types.PlanCriteria{}, "policy_id = ?", policyID).Error
}
