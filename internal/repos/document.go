package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type DocumentRepo interface {
  CreateRequired(ctx context.Context, tx *gorm.DB, doc *types.RequiredDocument) error
  GetRequiredByID(ctx context.Context, tx *gorm.DB, docID uint) (*types.RequiredDocument, error)
  GetAllRequired(ctx context.Context, tx *gorm.DB) ([]*types.RequiredDocument, error)
  GetRequirementsByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) ([]*types.PolicyDocumentRequirement, error)
  CountRequirementsByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error)
  CountVersionsByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error)
  CreateRequirement(ctx context.Context, tx *gorm.DB, req *types.PolicyDocumentRequirement) error
  CreateUserDocument(ctx context.Context, tx *gorm.DB, doc *types.UserDocument) error
  GetUserDocumentByID(ctx context.Context, tx *gorm.DB, userDocID uint) (*types.UserDocument, error)
  GetUserDocuments(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserDocument, error)
  SaveUserDocument(ctx context.Context, tx *gorm.DB, doc *types.UserDocument) error
  DeleteUserDocument(ctx context.Context, tx *gorm.DB, userDocID uint) error
  GetLatestVersion(ctx context.Context, tx *gorm.DB, policyID uint) (*types.PolicyDocumentVersion, error)
  CreateVersion(ctx context.Context, tx *gorm.DB, version *types.PolicyDocumentVersion) error
}

type documentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
  return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) conn(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return r.db
}

func (r *documentRepo) CreateRequired(ctx context.Context, tx *gorm.DB, doc *types.RequiredDocument) error {
  return r.conn(tx).WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) GetRequiredByID(ctx context.Context, tx *gorm.DB, docID uint) (*types.RequiredDocument, error) {
  var doc types.RequiredDocument
  if err := r.conn(tx).WithContext(ctx).First(&doc, "doc_id = ?", docID).Error; err != nil {
    return nil, err
  }
  return &doc, nil
}

func (r *documentRepo) GetAllRequired(ctx context.Context, tx *gorm.DB) ([]*types.RequiredDocument, error) {
  var docs []*types.RequiredDocument
  if err := r.conn(tx).WithContext(ctx).Order("doc_id").Find(&docs).Error; err != nil {
    return nil, err
  }
  return docs, nil
}

func (r *documentRepo) GetRequirementsByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) ([]*types.PolicyDocumentRequirement, error) {
  var reqs []*types.PolicyDocumentRequirement
  if err := r.conn(tx).WithContext(ctx).
    Preload("Document").
    Where("policy_id = ?", policyID).
    Order("policy_doc_id").
    Find(&reqs).Error; err != nil {
    return nil, err
  }
  return reqs, nil
}

func (r *documentRepo) CountRequirementsByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.PolicyDocumentRequirement{}).
    Where("policy_id = ?", policyID).Count(&total).Error
  return total, err
}

func (r *documentRepo) CountVersionsByPolicyID(ctx context.Context, tx *gorm.DB, policyID uint) (int64, error) {
  var total int64
  err := r.conn(tx).WithContext(ctx).Model(&types.PolicyDocumentVersion{}).
    Where("policy_id = ?", policyID).Count(&total).Error
  return total, err
}

func (r *documentRepo) CreateRequirement(ctx context.Context, tx *gorm.DB, req *types.PolicyDocumentRequirement) error {
  return r.conn(tx).WithContext(ctx).Create(req).Error
}

func (r *documentRepo) CreateUserDocument(ctx context.Context, tx *gorm.DB, doc *types.UserDocument) error {
  return r.conn(tx).WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) GetUserDocumentByID(ctx context.Context, tx *gorm.DB, userDocID uint) (*types.UserDocument, error) {
  var doc types.UserDocument
  if err := r.conn(tx).WithContext(ctx).
    Preload("Document").
    First(&doc, "user_doc_id = ?", userDocID).Error; err != nil {
    return nil, err
  }
  return &doc, nil
}

func (r *documentRepo) GetUserDocuments(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserDocument, error) {
  var docs []*types.UserDocument
  if err := r.conn(tx).WithContext(ctx).
    Preload("Document").
    Where("user_id = ?", userID).
    Order("uploaded_at DESC").
    Find(&docs).Error; err != nil {
    return nil, err
  }
  return docs, nil
}

func (r *documentRepo) SaveUserDocument(ctx context.Context, tx *gorm.DB, doc *types.UserDocument) error {
  return r.conn(tx).WithContext(ctx).Save(doc).Error
}

func (r *documentRepo) DeleteUserDocument(ctx context.Context, tx *gorm.DB, userDocID uint) error {
  return r.conn(tx).WithContext(ctx).Delete(&types.UserDocument{}, "user_doc_id = ?", userDocID).Error
}

// GetLatestVersion returns nil, nil when the policy has no published versions.
func (r *documentRepo) GetLatestVersion(ctx context.Context, tx *gorm.DB, policyID uint) (*types.PolicyDocumentVersion, error) {
  var version types.PolicyDocumentVersion
  err := r.conn(tx).WithContext(ctx).
    Where("policy_id = ?", policyID).
    Order("effective_date DESC NULLS LAST, version_id DESC").
    First(&version).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &version, nil
}

func (r *documentRepo) CreateVersion(ctx context.Context, tx *gorm.DB, version *types.PolicyDocumentVersion) error {
  return r.conn(tx).WithContext(ctx).Create(version).Error
}
