package repos

import (
  "context"
  "strings"
  "testing"

  "github.com/shopspring/decimal"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := db.AutoMigrate(
    &types.User{},
    &types.Provider{},
    &types.InsuranceType{},
    &types.InsurancePlan{},
    &types.Tariff{},
    &types.UserPolicy{},
    &types.Claim{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  t.Cleanup(func() {
    sqlDB, err := db.DB()
    if err == nil {
      sqlDB.Close()
    }
  })
  return db
}

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  return log
}

func floatPtr(v float64) *float64 { return &v }

func decPtr(v string) *decimal.Decimal {
  d, _ := decimal.NewFromString(v)
  return &d
}

func TestTariffRepoCreateBatchAndFetch(t *testing.T) {
  db := newTestDB(t)
  repo := NewTariffRepo(db, newTestLogger(t))
  ctx := context.Background()

  tariffs := []*types.Tariff{
    {PolicyID: 1, AgeMin: 0, AgeMax: 17, ClassType: "silver", FamilyMin: 1, FamilyMax: 1, TotalUSD: decPtr("120.00")},
    {PolicyID: 1, AgeMin: 18, AgeMax: 64, ClassType: "silver", FamilyMin: 1, FamilyMax: 1, TotalUSD: decPtr("180.00"), OutpatientCoveragePercentage: floatPtr(0.8)},
    {PolicyID: 2, AgeMin: 18, AgeMax: 64, ClassType: "gold", FamilyMin: 2, FamilyMax: 6, TotalUSD: decPtr("400.00")},
  }
  if err := repo.CreateBatch(ctx, nil, tariffs); err != nil {
    t.Fatalf("CreateBatch: %v", err)
  }
  for _, tariff := range tariffs {
    if tariff.TariffID == 0 {
      t.Fatalf("expected tariff IDs backfilled after CreateBatch")
    }
  }

  got, err := repo.GetByPolicyID(ctx, nil, 1)
  if err != nil {
    t.Fatalf("GetByPolicyID: %v", err)
  }
  if len(got) != 2 {
    t.Fatalf("expected 2 tariffs for policy 1, got %d", len(got))
  }
  if got[0].TariffID > got[1].TariffID {
    t.Fatalf("expected tariffs ordered by tariff_id")
  }

  count, err := repo.CountByPolicyID(ctx, nil, 2)
  if err != nil {
    t.Fatalf("CountByPolicyID: %v", err)
  }
  if count != 1 {
    t.Fatalf("expected 1 tariff for policy 2, got %d", count)
  }
}

func TestTariffRepoCreateBatchEmptyIsNoop(t *testing.T) {
  db := newTestDB(t)
  repo := NewTariffRepo(db, newTestLogger(t))

  if err := repo.CreateBatch(context.Background(), nil, nil); err != nil {
    t.Fatalf("CreateBatch(nil): %v", err)
  }
}

func TestTariffRepoSaveUpdatesRow(t *testing.T) {
  db := newTestDB(t)
  repo := NewTariffRepo(db, newTestLogger(t))
  ctx := context.Background()

  tariff := &types.Tariff{PolicyID: 3, AgeMin: 18, AgeMax: 40, ClassType: "bronze", FamilyMin: 1, FamilyMax: 1, TotalUSD: decPtr("99.00")}
  if err := repo.CreateBatch(ctx, nil, []*types.Tariff{tariff}); err != nil {
    t.Fatalf("CreateBatch: %v", err)
  }

  tariff.TotalUSD = decPtr("110.00")
  tariff.FamilyType = "single"
  if err := repo.Save(ctx, nil, tariff); err != nil {
    t.Fatalf("Save: %v", err)
  }

  got, err := repo.GetByID(ctx, nil, tariff.TariffID)
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if got.FamilyType != "single" {
    t.Fatalf("expected updated family_type, got %q", got.FamilyType)
  }
  if got.TotalUSD == nil || !got.TotalUSD.Equal(decimal.RequireFromString("110.00")) {
    t.Fatalf("expected updated total_usd, got %v", got.TotalUSD)
  }
}

func TestTariffRepoDeleteByPolicyID(t *testing.T) {
  db := newTestDB(t)
  repo := NewTariffRepo(db, newTestLogger(t))
  ctx := context.Background()

  tariffs := []*types.Tariff{
    {PolicyID: 7, AgeMin: 0, AgeMax: 17, ClassType: "silver", FamilyMin: 1, FamilyMax: 1},
    {PolicyID: 7, AgeMin: 18, AgeMax: 64, ClassType: "silver", FamilyMin: 1, FamilyMax: 1},
    {PolicyID: 8, AgeMin: 18, AgeMax: 64, ClassType: "silver", FamilyMin: 1, FamilyMax: 1},
  }
  if err := repo.CreateBatch(ctx, nil, tariffs); err != nil {
    t.Fatalf("CreateBatch: %v", err)
  }

  deleted, err := repo.DeleteByPolicyID(ctx, nil, 7)
  if err != nil {
    t.Fatalf("DeleteByPolicyID: %v", err)
  }
  if deleted != 2 {
    t.Fatalf("expected 2 deleted, got %d", deleted)
  }

  remaining, err := repo.CountByPolicyID(ctx, nil, 8)
  if err != nil {
    t.Fatalf("CountByPolicyID: %v", err)
  }
  if remaining != 1 {
    t.Fatalf("expected policy 8 untouched, got %d", remaining)
  }
}
