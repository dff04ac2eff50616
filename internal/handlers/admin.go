package handlers

import (
  "encoding/json"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/repos"
  "github.com/coverbridge/coverbridge-backend/internal/services"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

// AdminHandler covers the back-office surface: user management, catalog
// maintenance and application review.
type AdminHandler struct {
  userService    services.UserService
  catalogService services.CatalogService
  policyService  services.PolicyService
}

func NewAdminHandler(userService services.UserService, catalogService services.CatalogService, policyService services.PolicyService) *AdminHandler {
  return &AdminHandler{
    userService:    userService,
    catalogService: catalogService,
    policyService:  policyService,
  }
}

// --- users ---

func (ah *AdminHandler) ListUsers(c *gin.Context) {
  filter := repos.UserFilter{
    Search:   c.Query("search"),
    Page:     intQuery(c, "page", 1),
    PageSize: intQuery(c, "page_size", 10),
  }
  if raw := c.Query("is_active"); raw != "" {
    active := raw == "true"
    filter.IsActive = &active
  }
  if raw := c.Query("is_admin"); raw != "" {
    admin := raw == "true"
    filter.IsAdmin = &admin
  }
  users, total, err := ah.userService.List(c.Request.Context(), filter)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewPaginatedResponse(users, total, filter.Page, filter.PageSize))
}

func (ah *AdminHandler) GetUser(c *gin.Context) {
  userID, ok := uintParam(c, "user_id")
  if !ok {
    return
  }
  user, err := ah.userService.Get(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, user)
}

func (ah *AdminHandler) UpdateUser(c *gin.Context) {
  userID, ok := uintParam(c, "user_id")
  if !ok {
    return
  }
  var input services.UserUpdateInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, err := ah.userService.Update(c.Request.Context(), userID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, user)
}

func (ah *AdminHandler) ActivateUser(c *gin.Context) {
  ah.setUserActive(c, true)
}

func (ah *AdminHandler) DeactivateUser(c *gin.Context) {
  ah.setUserActive(c, false)
}

func (ah *AdminHandler) setUserActive(c *gin.Context, active bool) {
  userID, ok := uintParam(c, "user_id")
  if !ok {
    return
  }
  user, err := ah.userService.SetActive(c.Request.Context(), userID, active)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, user)
}

func (ah *AdminHandler) DeleteUser(c *gin.Context) {
  userID, ok := uintParam(c, "user_id")
  if !ok {
    return
  }
  if err := ah.userService.Delete(c.Request.Context(), userID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "user deleted"})
}

func (ah *AdminHandler) UserPolicies(c *gin.Context) {
  userID, ok := uintParam(c, "user_id")
  if !ok {
    return
  }
  policies, err := ah.policyService.Mine(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, policies)
}

// --- providers ---

func (ah *AdminHandler) CreateProvider(c *gin.Context) {
  var provider types.Provider
  if err := c.ShouldBindJSON(&provider); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := ah.catalogService.CreateProvider(c.Request.Context(), &provider); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, provider)
}

func (ah *AdminHandler) UpdateProvider(c *gin.Context) {
  providerID, ok := uintParam(c, "provider_id")
  if !ok {
    return
  }
  provider, err := ah.catalogService.GetProvider(c.Request.Context(), providerID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  if err := c.ShouldBindJSON(provider); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  provider.ProviderID = providerID
  if err := ah.catalogService.UpdateProvider(c.Request.Context(), provider); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, provider)
}

func (ah *AdminHandler) DeleteProvider(c *gin.Context) {
  providerID, ok := uintParam(c, "provider_id")
  if !ok {
    return
  }
  if err := ah.catalogService.DeleteProvider(c.Request.Context(), providerID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "provider deleted"})
}

func (ah *AdminHandler) CreateInsuranceType(c *gin.Context) {
  var insuranceType types.InsuranceType
  if err := c.ShouldBindJSON(&insuranceType); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := ah.catalogService.CreateInsuranceType(c.Request.Context(), &insuranceType); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, insuranceType)
}

// --- plans ---

func (ah *AdminHandler) ListPlans(c *gin.Context) {
  filter := repos.PlanFilter{
    Search:   c.Query("search"),
    Status:   c.Query("status"),
    Page:     intQuery(c, "page", 1),
    PageSize: intQuery(c, "page_size", 10),
  }
  if typeID := intQuery(c, "type_id", 0); typeID > 0 {
    filter.TypeID = uint(typeID)
  }
  if providerID := intQuery(c, "provider_id", 0); providerID > 0 {
    filter.ProviderID = uint(providerID)
  }
  plans, total, err := ah.catalogService.ListPlans(c.Request.Context(), filter)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewPaginatedResponse(plans, total, filter.Page, filter.PageSize))
}

func (ah *AdminHandler) CreatePlan(c *gin.Context) {
  var plan types.InsurancePlan
  if err := c.ShouldBindJSON(&plan); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := ah.catalogService.CreatePlan(c.Request.Context(), &plan); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, plan)
}

func (ah *AdminHandler) UpdatePlan(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  var input services.PlanUpdateInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  plan, err := ah.catalogService.UpdatePlan(c.Request.Context(), policyID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, plan)
}

func (ah *AdminHandler) DeletePlan(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  if err := ah.catalogService.DeletePlan(c.Request.Context(), policyID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "policy deleted"})
}

// --- tariffs ---

func (ah *AdminHandler) ListPlanTariffs(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  tariffs, err := ah.catalogService.GetPlanTariffs(c.Request.Context(), policyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, tariffs)
}

func (ah *AdminHandler) SaveTariff(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  var tariff types.Tariff
  if err := c.ShouldBindJSON(&tariff); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  tariff.PolicyID = policyID
  if err := ah.catalogService.SaveTariff(c.Request.Context(), &tariff); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, tariff)
}

func (ah *AdminHandler) DeleteTariff(c *gin.Context) {
  tariffID, ok := uintParam(c, "tariff_id")
  if !ok {
    return
  }
  if err := ah.catalogService.DeleteTariff(c.Request.Context(), tariffID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "tariff deleted"})
}

func (ah *AdminHandler) DeletePlanTariffs(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  deleted, err := ah.catalogService.DeletePlanTariffs(c.Request.Context(), policyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "tariffs deleted", "deleted": deleted})
}

// --- criteria ---

type upsertCriteriaRequest struct {
  CriteriaData           json.RawMessage `json:"criteria_data" binding:"required"`
  OutpatientCriteriaData json.RawMessage `json:"outpatient_criteria_data"`
}

func (ah *AdminHandler) UpsertPlanCriteria(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  var req upsertCriteriaRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  criteria, err := ah.catalogService.UpsertPlanCriteria(c.Request.Context(), policyID, req.CriteriaData, req.OutpatientCriteriaData)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, criteria)
}

func (ah *AdminHandler) DeletePlanCriteria(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  if err := ah.catalogService.DeletePlanCriteria(c.Request.Context(), policyID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "criteria deleted"})
}

// --- applications ---

func (ah *AdminHandler) ListApplications(c *gin.Context) {
  filter := repos.ApplicationFilter{
    Status:   c.Query("status"),
    Search:   c.Query("search"),
    Page:     intQuery(c, "page", 1),
    PageSize: intQuery(c, "page_size", 10),
  }
  if typeID := intQuery(c, "type_id", 0); typeID > 0 {
    filter.TypeID = uint(typeID)
  }
  if providerID := intQuery(c, "provider_id", 0); providerID > 0 {
    filter.ProviderID = uint(providerID)
  }
  applications, total, err := ah.policyService.ListApplications(c.Request.Context(), filter)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewPaginatedResponse(applications, total, filter.Page, filter.PageSize))
}

type approveApplicationRequest struct {
  StartDate    string  `json:"start_date" binding:"required"`
  EndDate      string  `json:"end_date" binding:"required"`
  PolicyNumber string  `json:"policy_number"`
  PremiumPaid  float64 `json:"premium_paid" binding:"required"`
}

// ApproveApplication activates a pending_payment application with its
// coverage window and collected premium.
func (ah *AdminHandler) ApproveApplication(c *gin.Context) {
  userPolicyID, ok := uintParam(c, "user_policy_id")
  if !ok {
    return
  }
  var req approveApplicationRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  startDate, err := time.Parse("2006-01-02", req.StartDate)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  endDate, err := time.Parse("2006-01-02", req.EndDate)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  input := services.ActivateInput{
    StartDate:    startDate,
    EndDate:      endDate,
    PolicyNumber: req.PolicyNumber,
    PremiumPaid:  req.PremiumPaid,
  }
  userPolicy, err := ah.policyService.Activate(c.Request.Context(), userPolicyID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, userPolicy)
}

func (ah *AdminHandler) RejectApplication(c *gin.Context) {
  userPolicyID, ok := uintParam(c, "user_policy_id")
  if !ok {
    return
  }
  userPolicy, err := ah.policyService.Reject(c.Request.Context(), userPolicyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, userPolicy)
}

func (ah *AdminHandler) DeleteApplication(c *gin.Context) {
  userPolicyID, ok := uintParam(c, "user_policy_id")
  if !ok {
    return
  }
  if err := ah.policyService.Delete(c.Request.Context(), userPolicyID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "application deleted"})
}
