package repos

import (
  "context"
  "testing"
  "time"

  "github.com/coverbridge/coverbridge-backend/internal/types"
)

func seedUserPolicies(t *testing.T, repo UserPolicyRepo) {
  t.Helper()
  ctx := context.Background()
  base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
  rows := []*types.UserPolicy{
    {UserID: 1, PolicyID: 1, Status: types.UserPolicyActive, PremiumPaid: decPtr("100.00"), IssuedAt: base},
    {UserID: 1, PolicyID: 2, Status: types.UserPolicyActive, PremiumPaid: decPtr("300.00"), IssuedAt: base.AddDate(0, 0, 5)},
    {UserID: 2, PolicyID: 1, Status: types.UserPolicyActive, PremiumPaid: decPtr("200.00"), IssuedAt: base.AddDate(0, -2, 0)},
    {UserID: 3, PolicyID: 1, Status: types.UserPolicyPendingPayment, IssuedAt: base},
    {UserID: 3, PolicyID: 2, Status: types.UserPolicyExpired, PremiumPaid: decPtr("50.00"), IssuedAt: base},
  }
  for _, row := range rows {
    if err := repo.Create(ctx, nil, row); err != nil {
      t.Fatalf("seed: %v", err)
    }
  }
}

func TestUserPolicyRepoStatusCounts(t *testing.T) {
  db := newTestDB(t)
  repo := NewUserPolicyRepo(db, newTestLogger(t))
  seedUserPolicies(t, repo)
  ctx := context.Background()

  active, err := repo.CountByStatus(ctx, nil, types.UserPolicyActive)
  if err != nil {
    t.Fatalf("CountByStatus: %v", err)
  }
  if active != 3 {
    t.Fatalf("expected 3 active, got %d", active)
  }

  pending, err := repo.CountByStatus(ctx, nil, types.UserPolicyPendingPayment)
  if err != nil {
    t.Fatalf("CountByStatus: %v", err)
  }
  if pending != 1 {
    t.Fatalf("expected 1 pending_payment, got %d", pending)
  }

  holders, err := repo.CountDistinctUsersByStatus(ctx, nil, types.UserPolicyActive)
  if err != nil {
    t.Fatalf("CountDistinctUsersByStatus: %v", err)
  }
  if holders != 2 {
    t.Fatalf("expected 2 distinct active holders, got %d", holders)
  }
}

func TestUserPolicyRepoPremiumAggregates(t *testing.T) {
  db := newTestDB(t)
  repo := NewUserPolicyRepo(db, newTestLogger(t))
  seedUserPolicies(t, repo)
  ctx := context.Background()

  total, err := repo.SumPremiumByStatus(ctx, nil, types.UserPolicyActive)
  if err != nil {
    t.Fatalf("SumPremiumByStatus: %v", err)
  }
  if total != 600 {
    t.Fatalf("expected active premium sum 600, got %v", total)
  }

  avg, err := repo.AvgPremiumByStatus(ctx, nil, types.UserPolicyActive)
  if err != nil {
    t.Fatalf("AvgPremiumByStatus: %v", err)
  }
  if avg != 200 {
    t.Fatalf("expected active premium avg 200, got %v", avg)
  }
}

func TestUserPolicyRepoIssuedWindow(t *testing.T) {
  db := newTestDB(t)
  repo := NewUserPolicyRepo(db, newTestLogger(t))
  seedUserPolicies(t, repo)
  ctx := context.Background()

  start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
  end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

  issued, err := repo.CountIssuedBetween(ctx, nil, start, end)
  if err != nil {
    t.Fatalf("CountIssuedBetween: %v", err)
  }
  if issued != 4 {
    t.Fatalf("expected 4 issued in March, got %d", issued)
  }

  revenue, err := repo.SumPremiumIssuedBetween(ctx, nil, types.UserPolicyActive, start, end)
  if err != nil {
    t.Fatalf("SumPremiumIssuedBetween: %v", err)
  }
  if revenue != 400 {
    t.Fatalf("expected March active revenue 400, got %v", revenue)
  }
}

func TestUserPolicyRepoSumOnEmptyTableIsZero(t *testing.T) {
  db := newTestDB(t)
  repo := NewUserPolicyRepo(db, newTestLogger(t))

  total, err := repo.SumPremiumByStatus(context.Background(), nil, types.UserPolicyActive)
  if err != nil {
    t.Fatalf("SumPremiumByStatus: %v", err)
  }
  if total != 0 {
    t.Fatalf("expected 0 on empty table, got %v", total)
  }
}
