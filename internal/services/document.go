package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

type DocumentService interface {
	ListRequired(ctx context.Context) ([]*types.RequiredDocument, error)
	CreateRequired(ctx context.Context, doc *types.RequiredDocument) error
	PolicyRequirements(ctx context.Context, policyID uint) ([]*types.PolicyDocumentRequirement, error)
	AddPolicyRequirement(ctx context.Context, req *types.PolicyDocumentRequirement) error
	UploadUserDocument(ctx context.Context, userID, docID uint, fileURL string) (*types.UserDocument, error)
	UserDocuments(ctx context.Context, userID uint) ([]*types.UserDocument, error)
	VerifyUserDocument(ctx context.Context, userDocID uint, verified bool) (*types.UserDocument, error)
	DeleteUserDocument(ctx context.Context, userID, userDocID uint) error
	LatestPolicyVersion(ctx context.Context, policyID uint) (*types.PolicyDocumentVersion, error)
	PublishPolicyVersion(ctx context.Context, version *types.PolicyDocumentVersion) error
}

type documentService struct {
	log          *logger.Logger
	documentRepo repos.DocumentRepo
}

func NewDocumentService(baseLog *logger.Logger, documentRepo repos.DocumentRepo) DocumentService {
	return &documentService{
		log:          baseLog.With("service", "DocumentService"),
		documentRepo: documentRepo,
	}
}

func (s *documentService) ListRequired(ctx context.Context) ([]*types.RequiredDocument, error) {
	return s.documentRepo.GetAllRequired(ctx, nil)
}

func (s *documentService) CreateRequired(ctx context.Context, doc *types.RequiredDocument) error {
	return s.documentRepo.CreateRequired(ctx, nil, doc)
}

func (s *documentService) PolicyRequirements(ctx context.Context, policyID uint) ([]*types.PolicyDocumentRequirement, error) {
	return s.documentRepo.GetRequirementsByPolicyID(ctx, nil, policyID)
}

func (s *documentService) AddPolicyRequirement(ctx context.Context, req *types.PolicyDocumentRequirement) error {
	return s.documentRepo.CreateRequirement(ctx, nil, req)
}

func (s *documentService) UploadUserDocument(ctx context.Context, userID, docID uint, fileURL string) (*types.UserDocument, error) {
	if _, err := s.documentRepo.GetRequiredByID(ctx, nil, docID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc := &types.UserDocument{
		UserID:     userID,
		DocID:      docID,
		FileURL:    fileURL,
		UploadedAt: time.Now(),
	}
	if err := s.documentRepo.CreateUserDocument(ctx, nil, doc); err != nil {
		return nil, err
	}
	s.log.Info("user document uploaded", "user_id", userID, "doc_id", docID)
	return doc, nil
}

func (s *documentService) UserDocuments(ctx context.Context, userID uint) ([]*types.UserDocument, error) {
	return s.documentRepo.GetUserDocuments(ctx, nil, userID)
}

func (s *documentService) VerifyUserDocument(ctx context.Context, userDocID uint, verified bool) (*types.UserDocument, error) {
	doc, err := s.documentRepo.GetUserDocumentByID(ctx, nil, userDocID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc.Verified = verified
	if err := s.documentRepo.SaveUserDocument(ctx, nil, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteUserDocument only removes documents owned by the caller.
func (s *documentService) DeleteUserDocument(ctx context.Context, userID, userDocID uint) error {
	doc, err := s.documentRepo.GetUserDocumentByID(ctx, nil, userDocID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if doc.UserID != userID {
		return ErrNotFound
	}
	return s.documentRepo.DeleteUserDocument(ctx, nil, userDocID)
}

func (s *documentService) LatestPolicyVersion(ctx context.Context, policyID uint) (*types.PolicyDocumentVersion, error) {
	version, err := s.documentRepo.GetLatestVersion(ctx, nil, policyID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, ErrNotFound
	}
	return version, nil
}

func (s *documentService) PublishPolicyVersion(ctx context.Context, version *types.PolicyDocumentVersion) error {
	return s.documentRepo.CreateVersion(ctx, nil, version)
}
