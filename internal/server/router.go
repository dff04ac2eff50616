package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/handlers"
  "github.com/coverbridge/coverbridge-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler        *handlers.AuthHandler
  AuthMiddleware     *middleware.AuthMiddleware
  MarketplaceHandler *handlers.MarketplaceHandler
  PolicyHandler      *handlers.PolicyHandler
  ClaimHandler       *handlers.ClaimHandler
  DocumentHandler    *handlers.DocumentHandler
  AdminHandler       *handlers.AdminHandler
  UploadHandler      *handlers.UploadHandler
  DashboardHandler   *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/auth/signup", cfg.AuthHandler.Signup)
  router.POST("/auth/login", cfg.AuthHandler.Login)
  router.POST("/auth/admin/login", cfg.AuthHandler.AdminLogin)

  marketplace := router.Group("/marketplace")
  {
    marketplace.GET("/providers", cfg.MarketplaceHandler.ListProviders)
    marketplace.GET("/types", cfg.MarketplaceHandler.ListInsuranceTypes)
    marketplace.GET("/policies", cfg.MarketplaceHandler.ListPlans)
    marketplace.GET("/policies/:policy_id", cfg.MarketplaceHandler.GetPlan)
    marketplace.GET("/policies/:policy_id/criteria", cfg.MarketplaceHandler.GetPlanCriteria)
    marketplace.GET("/policies/:policy_id/tariffs", cfg.MarketplaceHandler.GetPlanTariffs)
    marketplace.POST("/policies/match", cfg.MarketplaceHandler.Match)
  }

  // ===============
  // || Protected ||
  // ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.GET("/auth/me", cfg.AuthHandler.Me)
  // Policies
  protected.POST("/policies/purchase", cfg.PolicyHandler.Purchase)
  protected.GET("/policies/mine", cfg.PolicyHandler.Mine)
  protected.GET("/policies/:user_policy_id", cfg.PolicyHandler.Get)
  // Claims
  protected.POST("/claims", cfg.ClaimHandler.File)
  protected.GET("/claims/mine", cfg.ClaimHandler.Mine)
  protected.GET("/claims/:claim_id", cfg.ClaimHandler.Get)
  // Documents
  protected.GET("/documents/required", cfg.DocumentHandler.ListRequired)
  protected.GET("/documents/policies/:policy_id/requirements", cfg.DocumentHandler.PolicyRequirements)
  protected.GET("/documents/policies/:policy_id/version", cfg.DocumentHandler.LatestPolicyVersion)
  protected.POST("/documents/mine", cfg.DocumentHandler.UploadUserDocument)
  protected.GET("/documents/mine", cfg.DocumentHandler.MyDocuments)
  protected.DELETE("/documents/mine/:user_doc_id", cfg.DocumentHandler.DeleteUserDocument)

  // ===============
  // || Admin     ||
  // ===============
  admin := router.Group("/admin")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
  // Users
  admin.GET("/users", cfg.AdminHandler.ListUsers)
  admin.GET("/users/:user_id", cfg.AdminHandler.GetUser)
  admin.PATCH("/users/:user_id", cfg.AdminHandler.UpdateUser)
  admin.POST("/users/:user_id/activate", cfg.AdminHandler.ActivateUser)
  admin.POST("/users/:user_id/deactivate", cfg.AdminHandler.DeactivateUser)
  admin.DELETE("/users/:user_id", cfg.AdminHandler.DeleteUser)
  admin.GET("/users/:user_id/policies", cfg.AdminHandler.UserPolicies)
  // Applications
  admin.GET("/applications", cfg.AdminHandler.ListApplications)
  admin.POST("/applications/:user_policy_id/approve", cfg.AdminHandler.ApproveApplication)
  admin.POST("/applications/:user_policy_id/reject", cfg.AdminHandler.RejectApplication)
  admin.DELETE("/applications/:user_policy_id", cfg.AdminHandler.DeleteApplication)
  // Providers and types
  admin.POST("/providers", cfg.AdminHandler.CreateProvider)
  admin.PATCH("/providers/:provider_id", cfg.AdminHandler.UpdateProvider)
  admin.DELETE("/providers/:provider_id", cfg.AdminHandler.DeleteProvider)
  admin.POST("/types", cfg.AdminHandler.CreateInsuranceType)
  // Policies
  admin.GET("/policies", cfg.AdminHandler.ListPlans)
  admin.POST("/policies", cfg.AdminHandler.CreatePlan)
  admin.PATCH("/policies/:policy_id", cfg.AdminHandler.UpdatePlan)
  admin.DELETE("/policies/:policy_id", cfg.AdminHandler.DeletePlan)
  // Tariffs
  admin.GET("/policies/:policy_id/tariffs", cfg.AdminHandler.ListPlanTariffs)
  admin.POST("/policies/:policy_id/tariffs", cfg.AdminHandler.SaveTariff)
  admin.DELETE("/policies/:policy_id/tariffs", cfg.AdminHandler.DeletePlanTariffs)
  admin.DELETE("/tariffs/:tariff_id", cfg.AdminHandler.DeleteTariff)
  // Criteria
  admin.PUT("/policies/:policy_id/criteria", cfg.AdminHandler.UpsertPlanCriteria)
  admin.DELETE("/policies/:policy_id/criteria", cfg.AdminHandler.DeletePlanCriteria)
  // Claims review
  admin.GET("/claims", cfg.ClaimHandler.List)
  admin.POST("/claims/:claim_id/approve", cfg.ClaimHandler.Approve)
  admin.POST("/claims/:claim_id/reject", cfg.ClaimHandler.Reject)
  admin.POST("/claims/:claim_id/review", cfg.ClaimHandler.MarkInReview)
  // Documents
  admin.POST("/documents/required", cfg.DocumentHandler.CreateRequired)
  admin.POST("/documents/requirements", cfg.DocumentHandler.AddPolicyRequirement)
  admin.POST("/documents/:user_doc_id/verify", cfg.DocumentHandler.VerifyUserDocument)
  admin.POST("/documents/versions", cfg.DocumentHandler.PublishPolicyVersion)
  // Bulk uploads
  admin.POST("/uploads/policies", cfg.UploadHandler.UploadPolicies)
  admin.POST("/uploads/tariffs", cfg.UploadHandler.UploadTariffs)
  admin.POST("/uploads/criteria", cfg.UploadHandler.UploadCriteria)
  // Dashboard
  admin.GET("/dashboard/stats", cfg.DashboardHandler.Stats)

  return router
}
