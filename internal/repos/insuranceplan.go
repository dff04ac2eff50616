package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type PlanFilter struct {
  Search     string
  Status     string
  TypeID     uint
  ProviderID uint
  Page       int
  PageSize   int
}

type InsurancePlanRepo interface {
  Create(ctx context.Context, tx *gorm.DB, plan *types.InsurancePlan) error
  GetByID(ctx context.Context, tx *gorm.DB, policyID uint) (*types.InsurancePlan, error)
  GetActive(ctx context.Context, tx *gorm.DB) ([]*types.InsurancePlan, error)
  List(ctx context.Context, tx *gorm.DB, filter PlanFilter) ([]*types.InsurancePlan, int64, error)
  GetByNameAndProvider(ctx context.Context, tx *gorm.DB, name string, providerID uint) (*types.InsurancePlan, error)
  IDSet(ctx context.Context, tx *gorm.DB) (map[uint]struct{}, error)
  Exists(ctx context.Context, tx *gorm.DB, policyID uint) (bool, error)
  CountByProviderID(ctx context.Context, tx *gorm.DB, providerID uint) (int64, error)
  Save(ctx context.Context, tx *gorm.DB, plan *types.InsurancePlan) error
  Delete(ctx context.Context, tx *gorm.DB, policyID uint) error
}

type insurancePlanRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInsurancePlanRepo(db *gorm.DB, baseLog *logger.Logger) InsurancePlanRepo {
  return &insurancePlanRepo{db: db, log: baseLog.With("repo", "InsurancePlanRepo")}
}

func (r *insurancePlanRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *insurancePlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.InsurancePlan) error {
  return r.conn(tx).WithContext(ctx).Create(plan).Error
}

func (r *insurancePlanRepo) GetByID(ctx context.Context, tx *gorm.DB, policyID uint) (*types.InsurancePlan, error) {
  var plan types.InsurancePlan
  if err := r.conn(tx).WithContext(ctx).
    Preload("InsuranceType").
    Preload("Provider").
    First(&plan, "policy_id = ?", policyID).Error; err != nil {
    return nil, err
  }
  return &plan, nil
}

func (r *insurancePlanRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.InsurancePlan, error) {
  var plans []*types.InsurancePlan
  if err := r.conn(tx).WithContext(ctx).
    Preload("InsuranceType").
    Preload("Provider").
    Where("status = ?", types.PlanStatusActive).
    Order("policy_id").
    Find(&plans).Error; err != nil {
    return nil, err
  }
  return plans, nil
}

func (r *insurancePlanRepo) List(ctx context.Context, tx *gorm.DB, filter PlanFilter) ([]*types.InsurancePlan, int64, error) {
  query := r.conn(tx).WithContext(ctx).Model(&types.InsurancePlan{})
  if filter.Search != "" {
    pattern := "%" + filter.Search + "%"
    query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
  }
  if filter.Status != "" {
    query = query.Where("status = ?", filter.Status)
  }
  if filter.TypeID != 0 {
    query = query.Where("type_id = ?", filter.TypeID)
  }
  if filter.ProviderID != 0 {
    query = query.Where("provider_id = ?", filter.ProviderID)
  }

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  var plans []*types.InsurancePlan
  listQuery := query.Preload("InsuranceType").Preload("Provider").Order("policy_id")
  if filter.PageSize > 0 {
    listQuery = listQuery.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
  }
  if err := listQuery.Find(&plans).Error; err != nil {
    return nil, 0, err
  }
  return plans, total, nil
}

// GetByNameAndProvider returns nil, nil when no plan matches; bulk uploads
// identify a plan by its name within one provider.
func (r *insurancePlanRepo) GetByNameAndProvider(ctx context.Context, tx *gorm.DB, name string, providerID uint) (*types.InsurancePlan, error) {
  var plan types.InsurancePlan
  err := r.conn(tx).WithContext(ctx).
    First(&plan, "name = ? AND provider_id = ?", name, providerID).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &plan, nil
}

func (r *insurancePlanRepo) IDSet(ctx context.Context, tx *gorm.DB) (map[uint]struct{}, error) {
  var ids []uint
  if err := r.conn(tx).WithContext(ctx).Model(&types.InsurancePlan{}).Pluck("policy_id", &ids).Error; err != nil {
    return nil, err
  }
  set := make(map[uint]struct{}, len(ids))
  for _, id := range ids {
    set[id] = struct{}{}
  }
  return set, nil
}

func (r *insurancePlanRepo) Exists(ctx context.Context, tx *gorm.DB, policyID uint) (bool, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.InsurancePlan{}).
    Where("policy_id = ?", policyID).Count(&total).Error
  return total > 0, err
}

func (r *insurancePlanRepo) CountByProviderID(ctx context.Context, tx *gorm.DB, providerID uint) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.InsurancePlan{}).
    Where("provider_id = ?", providerID).Count(&total).Error
  return total, err
}

func (r *insurancePlanRepo) Save(ctx context.Context, tx *gorm.DB, plan *types.InsurancePlan) error {
  return r.conn(tx).WithContext(ctx).Save(plan).Error
}

func (r *insurancePlanRepo) Delete(ctx context.Context, tx *gorm.DB, policyID uint) error {
  return r.conn(tx).WithContext(ctx).Delete(&types.InsurancePlan{}, "policy_id = ?", policyID).Error
}
