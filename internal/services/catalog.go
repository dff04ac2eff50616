package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

var ErrNotFound = errors.New("record not found")

// DependentRecordsError blocks a hard delete while dependent rows exist; the
// message tells the admin what to clean up first.
type DependentRecordsError struct {
	Message string
}

func (e *DependentRecordsError) Error() string { return e.Message }

type PlanUpdateInput struct {
	TypeID            *uint    `json:"type_id"`
	ProviderID        *uint    `json:"provider_id"`
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	CoverageSummary   *string  `json:"coverage_summary"`
	ExclusionsSummary *string  `json:"exclusions_summary"`
	Premium           *float64 `json:"premium"`
	Duration          *string  `json:"duration"`
	Status            *string  `json:"status"`
	ContractPDFURL    *string  `json:"contract_pdf_url"`
}

type CatalogService interface {
	CreateProvider(ctx context.Context, provider *types.Provider) error
	GetProvider(ctx context.Context, providerID uint) (*types.Provider, error)
	ListProviders(ctx context.Context) ([]*types.Provider, error)
	UpdateProvider(ctx context.Context, provider *types.Provider) error
	DeleteProvider(ctx context.Context, providerID uint) error

	CreateInsuranceType(ctx context.Context, insuranceType *types.InsuranceType) error
	ListInsuranceTypes(ctx context.Context) ([]*types.InsuranceType, error)

	CreatePlan(ctx context.Context, plan *types.InsurancePlan) error
	GetPlan(ctx context.Context, policyID uint) (*types.InsurancePlan, error)
	ListPlans(ctx context.Context, filter repos.PlanFilter) ([]*types.InsurancePlan, int64, error)
	ListActivePlans(ctx context.Context) ([]*types.InsurancePlan, error)
	UpdatePlan(ctx context.Context, policyID uint, input PlanUpdateInput) (*types.InsurancePlan, error)
	DeletePlan(ctx context.Context, policyID uint) error

	GetPlanTariffs(ctx context.Context, policyID uint) ([]*types.Tariff, error)
	SaveTariff(ctx context.Context, tariff *types.Tariff) error
	DeleteTariff(ctx context.Context, tariffID uint) error
	DeletePlanTariffs(ctx context.Context, policyID uint) (int64, error)

	GetPlanCriteria(ctx context.Context, policyID uint) (*types.PlanCriteria, error)
	UpsertPlanCriteria(ctx context.Context, policyID uint, criteriaData, outpatientData []byte) (*types.PlanCriteria, error)
	DeletePlanCriteria(ctx context.Context, policyID uint) error
}

type catalogService struct {
	log          *logger.Logger
	providerRepo repos.ProviderRepo
	typeRepo     repos.InsuranceTypeRepo
	planRepo     repos.InsurancePlanRepo
	tariffRepo   repos.TariffRepo
	criteriaRepo repos.PlanCriteriaRepo
	policyRepo   repos.UserPolicyRepo
	documentRepo repos.DocumentRepo
}

func NewCatalogService(
	baseLog *logger.Logger,
	providerRepo repos.ProviderRepo,
	typeRepo repos.InsuranceTypeRepo,
	planRepo repos.InsurancePlanRepo,
	tariffRepo repos.TariffRepo,
	criteriaRepo repos.PlanCriteriaRepo,
	policyRepo repos.UserPolicyRepo,
	documentRepo repos.DocumentRepo,
) CatalogService {
	return &catalogService{
		log:          baseLog.With("service", "CatalogService"),
		providerRepo: providerRepo,
		typeRepo:     typeRepo,
		planRepo:     planRepo,
		tariffRepo:   tariffRepo,
		criteriaRepo: criteriaRepo,
		policyRepo:   policyRepo,
		documentRepo: documentRepo,
	}
}

func (s *catalogService) CreateProvider(ctx context.Context, provider *types.Provider) error {
	return s.providerRepo.Create(ctx, nil, provider)
}

func (s *catalogService) GetProvider(ctx context.Context, providerID uint) (*types.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, nil, providerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return provider, err
}

func (s *catalogService) ListProviders(ctx context.Context) ([]*types.Provider, error) {
	return s.providerRepo.GetAll(ctx, nil)
}

func (s *catalogService) UpdateProvider(ctx context.Context, provider *types.Provider) error {
	return s.providerRepo.Save(ctx, nil, provider)
}

func (s *catalogService) DeleteProvider(ctx context.Context, providerID uint) error {
	plans, err := s.planRepo.CountByProviderID(ctx, nil, providerID)
	if err != nil {
		return err
	}
	if plans > 0 {
		return &DependentRecordsError{Message: fmt.Sprintf(
			"Cannot delete provider. There are %d insurance policy/policies associated with this provider. Please delete or reassign the policies first.", plans)}
	}
	return s.providerRepo.Delete(ctx, nil, providerID)
}

func (s *catalogService) CreateInsuranceType(ctx context.Context, insuranceType *types.InsuranceType) error {
	return s.typeRepo.Create(ctx, nil, insuranceType)
}

func (s *catalogService) ListInsuranceTypes(ctx context.Context) ([]*types.InsuranceType, error) {
	return s.typeRepo.GetAll(ctx, nil)
}

func (s *catalogService) CreatePlan(ctx context.Context, plan *types.InsurancePlan) error {
	if plan.Status == "" {
		plan.Status = types.PlanStatusActive
	}
	return s.planRepo.Create(ctx, nil, plan)
}

func (s *catalogService) GetPlan(ctx context.Context, policyID uint) (*types.InsurancePlan, error) {
	plan, err := s.planRepo.GetByID(ctx, nil, policyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return plan, err
}

func (s *catalogService) ListPlans(ctx context.Context, filter repos.PlanFilter) ([]*types.InsurancePlan, int64, error) {
	return s.planRepo.List(ctx, nil, filter)
}

func (s *catalogService) ListActivePlans(ctx context.Context) ([]*types.InsurancePlan, error) {
	return s.planRepo.GetActive(ctx, nil)
}

// UpdatePlan applies only the fields present in the request body, so a PATCH
// with one key cannot blank out the rest of the record.
func (s *catalogService) UpdatePlan(ctx context.Context, policyID uint, input PlanUpdateInput) (*types.InsurancePlan, error) {
	plan, err := s.GetPlan(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if input.TypeID != nil {
		plan.TypeID = *input.TypeID
	}
	if input.ProviderID != nil {
		plan.ProviderID = *input.ProviderID
	}
	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.CoverageSummary != nil {
		plan.CoverageSummary = *input.CoverageSummary
	}
	if input.ExclusionsSummary != nil {
		plan.ExclusionsSummary = *input.ExclusionsSummary
	}
	if input.Premium != nil {
		premium := decimal.NewFromFloat(*input.Premium)
		plan.Premium = &premium
	}
	if input.Duration != nil {
		plan.Duration = *input.Duration
	}
	if input.Status != nil {
		plan.Status = types.PlanStatus(*input.Status)
	}
	if input.ContractPDFURL != nil {
		plan.ContractPDFURL = *input.ContractPDFURL
	}
	if err := s.planRepo.Save(ctx, nil, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *catalogService) DeletePlan(ctx context.Context, policyID uint) error {
	if _, err := s.GetPlan(ctx, policyID); err != nil {
		return err
	}

	dependents := []struct {
		count func() (int64, error)
		label string
		hint  string
	}{
		{func() (int64, error) { return s.policyRepo.CountByPolicyID(ctx, nil, policyID) },
			"user policy/policies", "Please delete or reassign the user policies first."},
		{func() (int64, error) { return s.tariffRepo.CountByPolicyID(ctx, nil, policyID) },
			"tariff(s)", "Please delete the tariffs first."},
		{func() (int64, error) { return s.criteriaRepo.CountByPolicyID(ctx, nil, policyID) },
			"plan criteria", "Please delete the criteria first."},
		{func() (int64, error) { return s.documentRepo.CountRequirementsByPolicyID(ctx, nil, policyID) },
			"document requirement(s)", "Please delete the requirements first."},
		{func() (int64, error) { return s.documentRepo.CountVersionsByPolicyID(ctx, nil, policyID) },
			"document version(s)", "Please delete the versions first."},
	}
	for _, dep := range dependents {
		count, err := dep.count()
		if err != nil {
			return err
		}
		if count > 0 {
			return &DependentRecordsError{Message: fmt.Sprintf(
				"Cannot delete policy. There are %d %s associated with this policy. %s", count, dep.label, dep.hint)}
		}
	}
	return s.planRepo.Delete(ctx, nil, policyID)
}

func (s *catalogService) GetPlanTariffs(ctx context.Context, policyID uint) ([]*types.Tariff, error) {
	return s.tariffRepo.GetByPolicyID(ctx, nil, policyID)
}

func (s *catalogService) SaveTariff(ctx context.Context, tariff *types.Tariff) error {
	return s.tariffRepo.Save(ctx, nil, tariff)
}

func (s *catalogService) DeleteTariff(ctx context.Context, tariffID uint) error {
	return s.tariffRepo.Delete(ctx, nil, tariffID)
}

func (s *catalogService) DeletePlanTariffs(ctx context.Context, policyID uint) (int64, error) {
	return s.tariffRepo.DeleteByPolicyID(ctx, nil, policyID)
}

func (s *catalogService) GetPlanCriteria(ctx context.Context, policyID uint) (*types.PlanCriteria, error) {
	criteria, err := s.criteriaRepo.GetByPolicyID(ctx, nil, policyID)
	if err != nil {
		return nil, err
	}
	if criteria == nil {
		return nil, ErrNotFound
	}
	return criteria, nil
}

func (s *catalogService) UpsertPlanCriteria(ctx context.Context, policyID uint, criteriaData, outpatientData []byte) (*types.PlanCriteria, error) {
	if _, err := s.GetPlan(ctx, policyID); err != nil {
		return nil, err
	}
	existing, err := s.criteriaRepo.GetByPolicyID(ctx, nil, policyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.CriteriaData = criteriaData
		existing.OutpatientCriteriaData = outpatientData
		if err := s.criteriaRepo.Save(ctx, nil, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	criteria := &types.PlanCriteria{
		PolicyID:               policyID,
		CriteriaData:           criteriaData,
		OutpatientCriteriaData: outpatientData,
	}
	if err := s.criteriaRepo.Create(ctx, nil, criteria); err != nil {
		return nil, err
	}
	return criteria, nil
}

func (s *catalogService) DeletePlanCriteria(ctx context.Context, policyID uint) error {
	return s.criteriaRepo.DeleteByPolicyID(ctx, nil, policyID)
}
