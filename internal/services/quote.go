package services

import (
	"context"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/matching"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

type QuoteService interface {
	Match(ctx context.Context, criteria matching.Criteria) ([]matching.MatchedPlan, error)
}

type quoteService struct {
	log        *logger.Logger
	planRepo   repos.InsurancePlanRepo
	tariffRepo repos.TariffRepo
}

func NewQuoteService(baseLog *logger.Logger, planRepo repos.InsurancePlanRepo, tariffRepo repos.TariffRepo) QuoteService {
	return &quoteService{
		log:        baseLog.With("service", "QuoteService"),
		planRepo:   planRepo,
		tariffRepo: tariffRepo,
	}
}

// repoTariffSource adapts the tariff repo to the matcher's read interface.
type repoTariffSource struct {
	ctx        context.Context
	tariffRepo repos.TariffRepo
}

func (s *repoTariffSource) TariffsForPlan(policyID uint) ([]*types.Tariff, error) {
	return s.tariffRepo.GetByPolicyID(s.ctx, nil, policyID)
}

func (s *quoteService) Match(ctx context.Context, criteria matching.Criteria) ([]matching.MatchedPlan, error) {
	plans, err := s.planRepo.GetActive(ctx, nil)
	if err != nil {
		return nil, err
	}
	results, err := matching.Match(criteria, plans, &repoTariffSource{ctx: ctx, tariffRepo: s.tariffRepo})
	if err != nil {
		return nil, err
	}
	s.log.Info("quote matched",
		"insurance_type", criteria.InsuranceType,
		"insurance_class", criteria.InsuranceClass,
		"plans_considered", len(plans),
		"plans_matched", len(results))
	return results, nil
}
