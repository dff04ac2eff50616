package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/coverbridge/coverbridge-backend/internal/types"
  "github.com/coverbridge/coverbridge-backend/internal/utils"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "coverbridge", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  serviceLog.Info("Connecting to Postgres...")
  gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to postgres: %w", err)
  }

  return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.Provider{},
    &types.InsuranceType{},
    &types.InsurancePlan{},
    &types.Tariff{},
    &types.PlanCriteria{},
    &types.RequiredDocument{},
    &types.PolicyDocumentRequirement{},
    &types.UserDocument{},
    &types.PolicyDocumentVersion{},
    &types.UserPolicy{},
    &types.Claim{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  // Concurrent uploads of overlapping tariffs can both miss the in-memory
  // dedup cache; the unique constraint on the identity tuple is the backstop.
  if err := s.db.Exec(`
    CREATE UNIQUE INDEX IF NOT EXISTS "uq_tariff_identity"
    ON "tariffs" ("policy_id", "age_min", "age_max", "class_type", "family_min", "family_max", COALESCE("outpatient_coverage_percentage", -1))
  `).Error; err != nil {
    return fmt.Errorf("failed to create tariff identity index: %w", err)
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
