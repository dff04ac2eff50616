package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type ClaimFilter struct {
  Status   string
  UserID   uint
  Page     int
  PageSize int
}

type ClaimRepo interface {
  Create(ctx context.Context, tx *gorm.DB, claim *types.Claim) error
  GetByID(ctx context.Context, tx *gorm.DB, claimID uint) (*types.Claim, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Claim, error)
  List(ctx context.Context, tx *gorm.DB, filter ClaimFilter) ([]*types.Claim, int64, error)
  Save(ctx context.Context, tx *gorm.DB, claim *types.Claim) error
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
  CountByUserPolicyID(ctx context.Context, tx *gorm.DB, userPolicyID uint) (int64, error)
  CountByStatus(ctx context.Context, tx *gorm.DB, status types.ClaimStatus) (int64, error)
  SumAmountByStatus(ctx context.Context, tx *gorm.DB, status types.ClaimStatus) (float64, error)
}

type claimRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewClaimRepo(db *gorm.DB, baseLog *logger.Logger) ClaimRepo {
  return &claimRepo{db: db, log: baseLog.With("repo", "ClaimRepo")}
}

func (r *claimRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *claimRepo) Create(ctx context.Context, tx *gorm.DB, claim *types.Claim) error {
  return r.conn(tx).WithContext(ctx).Create(claim).Error
}

func (r *claimRepo) GetByID(ctx context.Context, tx *gorm.DB, claimID uint) (*types.Claim, error) {
  var claim types.Claim
  if err := r.conn(tx).WithContext(ctx).
    Preload("UserPolicy").
    Preload("UserPolicy.Plan").
    Preload("UserPolicy.User").
    First(&claim, "claim_id = ?", claimID).Error; err != nil {
    return nil, err
  }
  return &claim, nil
}

func (r *claimRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Claim, error) {
  var claims []*types.Claim
  if err := r.conn(tx).WithContext(ctx).
    Preload("UserPolicy").
    Preload("UserPolicy.Plan").
    Joins("JOIN user_policies ON user_policies.user_policy_id = claims.user_policy_id").
    Where("user_policies.user_id = ?", userID).
    Order("claims.date_filed DESC, claims.claim_id DESC").
    Find(&claims).Error; err != nil {
    return nil, err
  }
  return claims, nil
}

func (r *claimRepo) List(ctx context.Context, tx *gorm.DB, filter ClaimFilter) ([]*types.Claim, int64, error) {
  query := r.conn(tx).WithContext(ctx).Model(&types.Claim{})
  if filter.Status != "" {
    query = query.Where("claims.status = ?", filter.Status)
  }
  if filter.UserID != 0 {
    query = query.
      Joins("JOIN user_policies ON user_policies.user_policy_id = claims.user_policy_id").
      Where("user_policies.user_id = ?", filter.UserID)
  }

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  var claims []*types.Claim
  if err := query.
    Preload("UserPolicy").
    Preload("UserPolicy.Plan").
    Preload("UserPolicy.User").
    Order("claims.date_filed DESC, claims.claim_id DESC").
    Offset((filter.Page - 1) * filter.PageSize).
    Limit(filter.PageSize).
    Find(&claims).Error; err != nil {
    return nil, 0, err
  }
  return claims, total, nil
}

func (r *claimRepo) Save(ctx context.Context, tx *gorm.DB, claim *types.Claim) error {
  return r.conn(tx).WithContext(ctx).Save(claim).Error
}

func (r *claimRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.Claim{}).Count(&total).Error
  return total, err
}

func (r *claimRepo) CountByUserPolicyID(ctx context.Context, tx *gorm.DB, userPolicyID uint) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.Claim{}).
    Where("user_policy_id = ?", userPolicyID).Count(&total).Error
  return total, err
}

func (r *claimRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status types.ClaimStatus) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.Claim{}).
    Where("status = ?", status).Count(&total).Error
  return total, err
}

func (r *claimRepo) SumAmountByStatus(ctx context.Context, tx *gorm.DB, status types.ClaimStatus) (float64, error) {
  var sum *float64
  err := r.conn(tx).WithContext(ctx).Model(&types.Claim{}).
    Where("status = ?", status).
    Select("SUM(claim_amount)").
    Scan(&sum).Error
  if err != nil || sum == nil {
    return 0, err
  }
  return *sum, nil
}
