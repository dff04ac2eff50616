package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

var ErrClaimClosed = errors.New("claim has already been reviewed")

type ClaimInput struct {
	UserPolicyID uint     `json:"user_policy_id" binding:"required"`
	ClaimAmount  *float64 `json:"claim_amount"`
	Description  string   `json:"description"`
}

type ClaimService interface {
	File(ctx context.Context, userID uint, input ClaimInput) (*types.Claim, error)
	Mine(ctx context.Context, userID uint) ([]*types.Claim, error)
	Get(ctx context.Context, claimID uint) (*types.Claim, error)
	List(ctx context.Context, filter repos.ClaimFilter) ([]*types.Claim, int64, error)
	Approve(ctx context.Context, claimID uint) (*types.Claim, error)
	Reject(ctx context.Context, claimID uint, reason string) (*types.Claim, error)
	MarkInReview(ctx context.Context, claimID uint) (*types.Claim, error)
}

type claimService struct {
	log        *logger.Logger
	claimRepo  repos.ClaimRepo
	policyRepo repos.UserPolicyRepo
}

func NewClaimService(baseLog *logger.Logger, claimRepo repos.ClaimRepo, policyRepo repos.UserPolicyRepo) ClaimService {
	return &claimService{
		log:        baseLog.With("service", "ClaimService"),
		claimRepo:  claimRepo,
		policyRepo: policyRepo,
	}
}

// File creates a claim against one of the caller's own policies.
func (s *claimService) File(ctx context.Context, userID uint, input ClaimInput) (*types.Claim, error) {
	userPolicy, err := s.policyRepo.GetByID(ctx, nil, input.UserPolicyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if userPolicy.UserID != userID {
		return nil, ErrNotFound
	}

	claim := &types.Claim{
		UserPolicyID: input.UserPolicyID,
		DateFiled:    time.Now(),
		Description:  input.Description,
		Status:       types.ClaimSubmitted,
	}
	if input.ClaimAmount != nil {
		amount := decimal.NewFromFloat(*input.ClaimAmount)
		claim.ClaimAmount = &amount
	}
	if err := s.claimRepo.Create(ctx, nil, claim); err != nil {
		return nil, fmt.Errorf("create claim: %w", err)
	}
	s.log.Info("claim filed", "claim_id", claim.ClaimID, "user_policy_id", input.UserPolicyID)
	return claim, nil
}

func (s *claimService) Mine(ctx context.Context, userID uint) ([]*types.Claim, error) {
	return s.claimRepo.GetByUserID(ctx, nil, userID)
}

func (s *claimService) Get(ctx context.Context, claimID uint) (*types.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, nil, claimID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return claim, err
}

func (s *claimService) List(ctx context.Context, filter repos.ClaimFilter) ([]*types.Claim, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	return s.claimRepo.List(ctx, nil, filter)
}

func (s *claimService) Approve(ctx context.Context, claimID uint) (*types.Claim, error) {
	return s.review(ctx, claimID, types.ClaimApproved, "")
}

func (s *claimService) Reject(ctx context.Context, claimID uint, reason string) (*types.Claim, error) {
	return s.review(ctx, claimID, types.ClaimRejected, reason)
}

func (s *claimService) MarkInReview(ctx context.Context, claimID uint) (*types.Claim, error) {
	claim, err := s.Get(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != types.ClaimSubmitted {
		return nil, ErrClaimClosed
	}
	claim.Status = types.ClaimInReview
	if err := s.claimRepo.Save(ctx, nil, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *claimService) review(ctx context.Context, claimID uint, status types.ClaimStatus, reason string) (*types.Claim, error) {
	claim, err := s.Get(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status == types.ClaimApproved || claim.Status == types.ClaimRejected {
		return nil, ErrClaimClosed
	}
	claim.Status = status
	if status == types.ClaimRejected && reason != "" {
		claim.Description = strings.TrimSpace(claim.Description + "\n[Rejected: " + reason + "]")
	}
	if err := s.claimRepo.Save(ctx, nil, claim); err != nil {
		return nil, err
	}
	s.log.Info("claim reviewed", "claim_id", claimID, "status", string(status))
	return claim, nil
}
