package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

var ErrNotPendingPayment = errors.New("application is not in pending_payment status")

type ActivateInput struct {
	StartDate    time.Time
	EndDate      time.Time
	PolicyNumber string
	PremiumPaid  float64
}

type PolicyService interface {
	Purchase(ctx context.Context, userID, policyID uint, versionID *uint) (*types.UserPolicy, error)
	Activate(ctx context.Context, userPolicyID uint, input ActivateInput) (*types.UserPolicy, error)
	Reject(ctx context.Context, userPolicyID uint) (*types.UserPolicy, error)
	Mine(ctx context.Context, userID uint) ([]*types.UserPolicy, error)
	Get(ctx context.Context, userPolicyID uint) (*types.UserPolicy, error)
	ListApplications(ctx context.Context, filter repos.ApplicationFilter) ([]*types.UserPolicy, int64, error)
	Delete(ctx context.Context, userPolicyID uint) error
}

type policyService struct {
	log        *logger.Logger
	planRepo   repos.InsurancePlanRepo
	policyRepo repos.UserPolicyRepo
	claimRepo  repos.ClaimRepo
}

func NewPolicyService(baseLog *logger.Logger, planRepo repos.InsurancePlanRepo, policyRepo repos.UserPolicyRepo, claimRepo repos.ClaimRepo) PolicyService {
	return &policyService{
		log:        baseLog.With("service", "PolicyService"),
		planRepo:   planRepo,
		policyRepo: policyRepo,
		claimRepo:  claimRepo,
	}
}

func (s *policyService) Purchase(ctx context.Context, userID, policyID uint, versionID *uint) (*types.UserPolicy, error) {
	exists, err := s.planRepo.Exists(ctx, nil, policyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	userPolicy := &types.UserPolicy{
		UserID:    userID,
		PolicyID:  policyID,
		VersionID: versionID,
		Status:    types.UserPolicyPendingPayment,
		IssuedAt:  time.Now(),
	}
	if err := s.policyRepo.Create(ctx, nil, userPolicy); err != nil {
		return nil, fmt.Errorf("create user policy: %w", err)
	}
	s.log.Info("policy purchased", "user_id", userID, "policy_id", policyID, "user_policy_id", userPolicy.UserPolicyID)
	return userPolicy, nil
}

// Activate moves a pending application to active. A blank policy number gets
// a generated one so approval never stalls on back-office numbering.
func (s *policyService) Activate(ctx context.Context, userPolicyID uint, input ActivateInput) (*types.UserPolicy, error) {
	userPolicy, err := s.Get(ctx, userPolicyID)
	if err != nil {
		return nil, err
	}
	if userPolicy.Status != types.UserPolicyPendingPayment {
		return nil, fmt.Errorf("%w (current: %s)", ErrNotPendingPayment, userPolicy.Status)
	}

	number := input.PolicyNumber
	if number == "" {
		number = generatePolicyNumber()
	}
	premium := decimal.NewFromFloat(input.PremiumPaid)

	userPolicy.StartDate = &input.StartDate
	userPolicy.EndDate = &input.EndDate
	userPolicy.PolicyNumber = number
	userPolicy.PremiumPaid = &premium
	userPolicy.Status = types.UserPolicyActive
	if err := s.policyRepo.Save(ctx, nil, userPolicy); err != nil {
		return nil, err
	}
	s.log.Info("policy activated", "user_policy_id", userPolicyID, "policy_number", number)
	return userPolicy, nil
}

// Reject marks a pending application expired rather than deleting it, keeping
// the record for audit.
func (s *policyService) Reject(ctx context.Context, userPolicyID uint) (*types.UserPolicy, error) {
	userPolicy, err := s.Get(ctx, userPolicyID)
	if err != nil {
		return nil, err
	}
	if userPolicy.Status != types.UserPolicyPendingPayment {
		return nil, fmt.Errorf("%w (current: %s)", ErrNotPendingPayment, userPolicy.Status)
	}
	userPolicy.Status = types.UserPolicyExpired
	if err := s.policyRepo.Save(ctx, nil, userPolicy); err != nil {
		return nil, err
	}
	return userPolicy, nil
}

func (s *policyService) Mine(ctx context.Context, userID uint) ([]*types.UserPolicy, error) {
	return s.policyRepo.GetByUserID(ctx, nil, userID)
}

func (s *policyService) Get(ctx context.Context, userPolicyID uint) (*types.UserPolicy, error) {
	userPolicy, err := s.policyRepo.GetByID(ctx, nil, userPolicyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return userPolicy, err
}

func (s *policyService) ListApplications(ctx context.Context, filter repos.ApplicationFilter) ([]*types.UserPolicy, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	return s.policyRepo.ListApplications(ctx, nil, filter)
}

func (s *policyService) Delete(ctx context.Context, userPolicyID uint) error {
	if _, err := s.Get(ctx, userPolicyID); err != nil {
		return err
	}
	claims, err := s.claimRepo.CountByUserPolicyID(ctx, nil, userPolicyID)
	if err != nil {
		return err
	}
	if claims > 0 {
		return &DependentRecordsError{Message: fmt.Sprintf(
			"Cannot delete user policy. There are %d claim(s) associated with this policy. Please delete the claims first.", claims)}
	}
	return s.policyRepo.Delete(ctx, nil, userPolicyID)
}

func generatePolicyNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	return "PN-" + suffix
}
