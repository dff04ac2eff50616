package main

import (
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/coverbridge/coverbridge-backend/internal/db"
  "github.com/coverbridge/coverbridge-backend/internal/handlers"
  "github.com/coverbridge/coverbridge-backend/internal/logger"
  "github.com/coverbridge/coverbridge-backend/internal/middleware"
  "github.com/coverbridge/coverbridge-backend/internal/repos"
  "github.com/coverbridge/coverbridge-backend/internal/server"
  "github.com/coverbridge/coverbridge-backend/internal/services"
  "github.com/coverbridge/coverbridge-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenExpire := utils.GetEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  providerRepo := repos.NewProviderRepo(thePG, log)
  typeRepo := repos.NewInsuranceTypeRepo(thePG, log)
  planRepo := repos.NewInsurancePlanRepo(thePG, log)
  tariffRepo := repos.NewTariffRepo(thePG, log)
  criteriaRepo := repos.NewPlanCriteriaRepo(thePG, log)
  userPolicyRepo := repos.NewUserPolicyRepo(thePG, log)
  claimRepo := repos.NewClaimRepo(thePG, log)
  documentRepo := repos.NewDocumentRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(log, userRepo, jwtSecretKey, accessTokenExpire)
  userService := services.NewUserService(log, userRepo)
  catalogService := services.NewCatalogService(log, providerRepo, typeRepo, planRepo, tariffRepo, criteriaRepo, userPolicyRepo, documentRepo)
  quoteService := services.NewQuoteService(log, planRepo, tariffRepo)
  uploadService := services.NewUploadService(thePG, log, providerRepo, typeRepo, planRepo, tariffRepo, criteriaRepo)
  policyService := services.NewPolicyService(log, planRepo, userPolicyRepo, claimRepo)
  claimService := services.NewClaimService(log, claimRepo, userPolicyRepo)
  documentService := services.NewDocumentService(log, documentRepo)
  dashboardService := services.NewDashboardService(log, userRepo, userPolicyRepo, claimRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService, userService)
  marketplaceHandler := handlers.NewMarketplaceHandler(catalogService, quoteService)
  policyHandler := handlers.NewPolicyHandler(policyService)
  claimHandler := handlers.NewClaimHandler(claimService)
  documentHandler := handlers.NewDocumentHandler(documentService)
  adminHandler := handlers.NewAdminHandler(userService, catalogService, policyService)
  uploadHandler := handlers.NewUploadHandler(uploadService)
  dashboardHandler := handlers.NewDashboardHandler(dashboardService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    MarketplaceHandler: marketplaceHandler,
    PolicyHandler:      policyHandler,
    ClaimHandler:       claimHandler,
    DocumentHandler:    documentHandler,
    AdminHandler:       adminHandler,
    UploadHandler:      uploadHandler,
    DashboardHandler:   dashboardHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
