package repos

import (
  "context"
  "time"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type ApplicationFilter struct {
  Status     string
  TypeID     uint
  ProviderID uint
  Search     string
  Page       int
  PageSize   int
}

// NameCount is a grouped aggregation row for the dashboard top-N queries.
type NameCount struct {
  Name  string `json:"name"`
  Count int64  `json:"count"`
}

type UserPolicyRepo interface {
  Create(ctx context.Context, tx *gorm.DB, userPolicy *types.UserPolicy) error
  GetByID(ctx context.Context, tx *gorm.DB, userPolicyID uint) (*types.UserPolicy, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserPolicy, error)
  ListApplications(ctx context.Context, tx *gorm.DB, filter ApplicationFilter) ([]*types.UserPolicy, int64, error)
  Save(ctx context.Context, tx *gorm.DB, userPolicy *types.UserPolicy) error
  Delete(ctx context.Context, tx *gorm.DB, userPolicyID uint) error
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
  CountByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error)
  CountByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (int64, error)
  CountDistinctUsersByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (int64, error)
  SumPremiumByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (float64, error)
  AvgPremiumByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (float64, error)
  CountIssuedBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) (int64, error)
  SumPremiumIssuedBetween(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus, start, end time.Time) (float64, error)
  TopTypesByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus, limit int) ([]NameCount, error)
  TopProvidersByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus, limit int) ([]NameCount, error)
}

type userPolicyRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserPolicyRepo(db *gorm.DB, baseLog *logger.Logger) UserPolicyRepo {
  return &userPolicyRepo{db: db, log: baseLog.With("repo", "UserPolicyRepo")}
}

func (r *userPolicyRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *userPolicyRepo) Create(ctx context.Context, tx *gorm.DB, userPolicy *types.UserPolicy) error {
  return r.conn(tx).WithContext(ctx).Create(userPolicy).Error
}

func (r *userPolicyRepo) GetByID(ctx context.Context, tx *gorm.DB, userPolicyID uint) (*types.UserPolicy, error) {
  var userPolicy types.UserPolicy
  if err := r.conn(tx).WithContext(ctx).
    Preload("Plan").
    Preload("Plan.InsuranceType").
    Preload("Plan.Provider").
    Preload("Version").
    First(&userPolicy, "user_policy_id = ?", userPolicyID).Error; err != nil {
    return nil, err
  }
  return &userPolicy, nil
}

func (r *userPolicyRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserPolicy, error) {
  var userPolicies []*types.UserPolicy
  if err := r.conn(tx).WithContext(ctx).
    Preload("Plan").
    Preload("Plan.InsuranceType").
    Preload("Plan.Provider").
    Preload("Version").
    Where("user_id = ?", userID).
    Order("user_policy_id").
    Find(&userPolicies).Error; err != nil {
    return nil, err
  }
  return userPolicies, nil
}

// ListApplications orders oldest-first: the review queue is a priority queue.
func (r *userPolicyRepo) ListApplications(ctx context.Context, tx *gorm.DB, filter ApplicationFilter) ([]*types.UserPolicy, int64, error) {
  query := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Joins("JOIN insurance_plans ON insurance_plans.policy_id = user_policies.policy_id")
  if filter.Status != "" {
    query = query.Where("user_policies.status = ?", filter.Status)
  }
  if filter.TypeID != 0 {
    query = query.Where("insurance_plans.type_id = ?", filter.TypeID)
  }
  if filter.ProviderID != 0 {
    query = query.Where("insurance_plans.provider_id = ?", filter.ProviderID)
  }
  if filter.Search != "" {
    pattern := "%" + filter.Search + "%"
    query = query.Joins("JOIN users ON users.user_id = user_policies.user_id").
      Where("users.name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
  }

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  var userPolicies []*types.UserPolicy
  if err := query.
    Preload("User").
    Preload("Plan").
    Preload("Plan.InsuranceType").
    Preload("Plan.Provider").
    Order("user_policies.issued_at ASC").
    Offset((filter.Page - 1) * filter.PageSize).
    Limit(filter.PageSize).
    Find(&userPolicies).Error; err != nil {
    return nil, 0, err
  }
  return userPolicies, total, nil
}

func (r *userPolicyRepo) Save(ctx context.Context, tx *gorm.DB, userPolicy *types.UserPolicy) error {
  return r.conn(tx).WithContext(ctx).Save(userPolicy).Error
}

func (r *userPolicyRepo) Delete(ctx context.Context, tx *gorm.DB, userPolicyID uint) error {
  return r.conn(tx).WithContext(ctx).Delete(&types.UserPolicy{}, "user_policy_id = ?", userPolicyID).Error
}

func (r *userPolicyRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).Count(&total).Error
  return total, err
}

func (r *userPolicyRepo) CountByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Where("policy_id = ?", policyID).Count(&total).Error
  return total, err
}

func (r *userPolicyRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Where("status = ?", status).Count(&total).Error
  return total, err
}

func (r *userPolicyRepo) CountDistinctUsersByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Where("status = ?", status).
    Distinct("user_id").
    Count(&total).Error
  return total, err
}

func (r *userPolicyRepo) SumPremiumByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (float64, error) {
  var sum *float64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Where("status = ?", status).
    Select("SUM(premium_paid)").
    Scan(&sum).Error
  if err != nil || sum == nil {
    return 0, err
  }
  return *sum, nil
}

func (r *userPolicyRepo) AvgPremiumByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus) (float64, error) {
  var avg *float64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Where("status = ?", status).
    Select("AVG(premium_paid)").
    Scan(&avg).Error
  if err != nil || avg == nil {
    return 0, err
  }
  return *avg, nil
}

func (r *userPolicyRepo) CountIssuedBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Where("issued_at >= ? AND issued_at <= ?", start, end).
    Count(&total).Error
  return total, err
}

func (r *userPolicyRepo) SumPremiumIssuedBetween(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus, start, end time.Time) (float64, error) {
  var sum *float64
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Where("status = ? AND issued_at >= ? AND issued_at <= ?", status, start, end).
    Select("SUM(premium_paid)").
    Scan(&sum).Error
  if err != nil || sum == nil {
    return 0, err
  }
  return *sum, nil
}

func (r *userPolicyRepo) TopTypesByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus, limit int) ([]NameCount, error) {
  var rows []NameCount
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Select("insurance_types.name AS name, COUNT(user_policies.user_policy_id) AS count").
    Joins("JOIN insurance_plans ON insurance_plans.policy_id = user_policies.policy_id").
    Joins("JOIN insurance_types ON insurance_types.type_id = insurance_plans.type_id").
    Where("user_policies.status = ?", status).
    Group("insurance_types.name").
    Order("count DESC").
    Limit(limit).
    Scan(&rows).Error
  return rows, err
}

func (r *userPolicyRepo) TopProvidersByStatus(ctx context.Context, tx *gorm.DB, status types.UserPolicyStatus, limit int) ([]NameCount, error) {
  var rows []NameCount
  err := r.conn(tx).WithContext(ctx).Model(&types.UserPolicy{}).
    Select("providers.name AS name, COUNT(user_policies.user_policy_id) AS count").
    Joins("JOIN insurance_plans ON insurance_plans.policy_id = user_policies.policy_id").
    Joins("JOIN providers ON providers.provider_id = insurance_plans.provider_id").
    Where("user_policies.status = ?", status).
    Group("providers.name").
    Order("count DESC").
    Limit(limit).
    Scan(&rows).Error
  return rows, err
}
