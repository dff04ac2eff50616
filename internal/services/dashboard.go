package services

import (
	"context"
	"math"
	"time"

	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type MonthlyApplications struct {
	Month        string `json:"month"`
	Applications int64  `json:"applications"`
}

type DashboardStats struct {
	TotalUsers          int64                 `json:"total_users"`
	ActiveUsers         int64                 `json:"active_users"`
	TotalPolicies       int64                 `json:"total_policies"`
	ActivePolicies      int64                 `json:"active_policies"`
	PendingApplications int64                 `json:"pending_applications"`
	PendingClaims       int64                 `json:"pending_claims"`
	TotalClaims         int64                 `json:"total_claims"`
	ClaimsPaidTotal     float64               `json:"claims_paid_total"`
	TotalRevenue        float64               `json:"total_revenue"`
	AveragePremium      float64               `json:"average_premium"`
	UsersGrowth         float64               `json:"users_growth"`
	PoliciesGrowth      float64               `json:"policies_growth"`
	RevenueGrowth       float64               `json:"revenue_growth"`
	ApprovalRate        float64               `json:"approval_rate"`
	ClaimsApproved      int64                 `json:"claims_approved"`
	ClaimsRejected      int64                 `json:"claims_rejected"`
	TopInsuranceTypes   []repos.NameCount     `json:"top_insurance_types"`
	TopProviders        []repos.NameCount     `json:"top_providers"`
	RevenueTrend        []MonthlyRevenue      `json:"revenue_trend"`
	ApplicationsTrend   []MonthlyApplications `json:"applications_trend"`
}

type DashboardService interface {
	Stats(ctx context.Context, startDate, endDate *time.Time) (*DashboardStats, error)
}

type dashboardService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	policyRepo repos.UserPolicyRepo
	claimRepo  repos.ClaimRepo
}

func NewDashboardService(baseLog *logger.Logger, userRepo repos.UserRepo, policyRepo repos.UserPolicyRepo, claimRepo repos.ClaimRepo) DashboardService {
	return &dashboardService{
		log:        baseLog.With("service", "DashboardService"),
		userRepo:   userRepo,
		policyRepo: policyRepo,
		claimRepo:  claimRepo,
	}
}

// Stats aggregates the admin dashboard in one pass. The period defaults to
// the current month and growth compares against the previous calendar month.
func (s *dashboardService) Stats(ctx context.Context, startDate, endDate *time.Time) (*DashboardStats, error) {
	end := time.Now()
	if endDate != nil {
		end = *endDate
	}
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	if startDate != nil {
		start = *startDate
	}
	prevStart := start.AddDate(0, -1, 0)
	prevEnd := start.Add(-time.Second)

	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx, nil); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.policyRepo.CountDistinctUsersByStatus(ctx, nil, types.UserPolicyActive); err != nil {
		return nil, err
	}
	if stats.TotalPolicies, err = s.policyRepo.Count(ctx, nil); err != nil {
		return nil, err
	}
	if stats.ActivePolicies, err = s.policyRepo.CountByStatus(ctx, nil, types.UserPolicyActive); err != nil {
		return nil, err
	}
	if stats.PendingApplications, err = s.policyRepo.CountByStatus(ctx, nil, types.UserPolicyPendingPayment); err != nil {
		return nil, err
	}

	submitted, err := s.claimRepo.CountByStatus(ctx, nil, types.ClaimSubmitted)
	if err != nil {
		return nil, err
	}
	inReview, err := s.claimRepo.CountByStatus(ctx, nil, types.ClaimInReview)
	if err != nil {
		return nil, err
	}
	stats.PendingClaims = submitted + inReview
	if stats.ClaimsApproved, err = s.claimRepo.CountByStatus(ctx, nil, types.ClaimApproved); err != nil {
		return nil, err
	}
	if stats.ClaimsRejected, err = s.claimRepo.CountByStatus(ctx, nil, types.ClaimRejected); err != nil {
		return nil, err
	}
	if total := stats.PendingClaims + stats.ClaimsApproved + stats.ClaimsRejected; total > 0 {
		stats.ApprovalRate = round2(float64(stats.ClaimsApproved) / float64(total) * 100)
	}
	if stats.TotalClaims, err = s.claimRepo.Count(ctx, nil); err != nil {
		return nil, err
	}
	if stats.ClaimsPaidTotal, err = s.claimRepo.SumAmountByStatus(ctx, nil, types.ClaimApproved); err != nil {
		return nil, err
	}

	if stats.TotalRevenue, err = s.policyRepo.SumPremiumByStatus(ctx, nil, types.UserPolicyActive); err != nil {
		return nil, err
	}
	if stats.AveragePremium, err = s.policyRepo.AvgPremiumByStatus(ctx, nil, types.UserPolicyActive); err != nil {
		return nil, err
	}

	currentUsers, err := s.userRepo.CountCreatedBetween(ctx, nil, start, end)
	if err != nil {
		return nil, err
	}
	prevUsers, err := s.userRepo.CountCreatedBetween(ctx, nil, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	stats.UsersGrowth = growth(float64(currentUsers), float64(prevUsers))

	currentPolicies, err := s.policyRepo.CountIssuedBetween(ctx, nil, start, end)
	if err != nil {
		return nil, err
	}
	prevPolicies, err := s.policyRepo.CountIssuedBetween(ctx, nil, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	stats.PoliciesGrowth = growth(float64(currentPolicies), float64(prevPolicies))

	currentRevenue, err := s.policyRepo.SumPremiumIssuedBetween(ctx, nil, types.UserPolicyActive, start, end)
	if err != nil {
		return nil, err
	}
	prevRevenue, err := s.policyRepo.SumPremiumIssuedBetween(ctx, nil, types.UserPolicyActive, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	stats.RevenueGrowth = growth(currentRevenue, prevRevenue)

	if stats.TopInsuranceTypes, err = s.policyRepo.TopTypesByStatus(ctx, nil, types.UserPolicyActive, 5); err != nil {
		return nil, err
	}
	if stats.TopProviders, err = s.policyRepo.TopProvidersByStatus(ctx, nil, types.UserPolicyActive, 5); err != nil {
		return nil, err
	}

	for i := 5; i >= 0; i-- {
		monthStart := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)
		label := monthStart.Format("2006-01")

		revenue, err := s.policyRepo.SumPremiumIssuedBetween(ctx, nil, types.UserPolicyActive, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		stats.RevenueTrend = append(stats.RevenueTrend, MonthlyRevenue{Month: label, Revenue: revenue})

		applications, err := s.policyRepo.CountIssuedBetween(ctx, nil, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		stats.ApplicationsTrend = append(stats.ApplicationsTrend, MonthlyApplications{Month: label, Applications: applications})
	}

	return stats, nil
}

func growth(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
