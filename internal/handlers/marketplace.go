package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/matching"
  "github.com/coverbridge/coverbridge-backend/internal/repos"
  "github.com/coverbridge/coverbridge-backend/internal/services"
)

// MarketplaceHandler serves the public browse-and-quote surface.
type MarketplaceHandler struct {
  catalogService services.CatalogService
  quoteService   services.QuoteService
}

func NewMarketplaceHandler(catalogService services.CatalogService, quoteService services.QuoteService) *MarketplaceHandler {
  return &MarketplaceHandler{catalogService: catalogService, quoteService: quoteService}
}

func (mh *MarketplaceHandler) ListProviders(c *gin.Context) {
  providers, err := mh.catalogService.ListProviders(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, providers)
}

func (mh *MarketplaceHandler) ListInsuranceTypes(c *gin.Context) {
  insuranceTypes, err := mh.catalogService.ListInsuranceTypes(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, insuranceTypes)
}

func (mh *MarketplaceHandler) ListPlans(c *gin.Context) {
  filter := repos.PlanFilter{
    Search: c.Query("search"),
    Status: c.DefaultQuery("status", "active"),
    Page:   intQuery(c, "page", 1),
  }
  filter.PageSize = intQuery(c, "page_size", 10)
  if typeID := intQuery(c, "type_id", 0); typeID > 0 {
    filter.TypeID = uint(typeID)
  }
  if providerID := intQuery(c, "provider_id", 0); providerID > 0 {
    filter.ProviderID = uint(providerID)
  }
  plans, total, err := mh.catalogService.ListPlans(c.Request.Context(), filter)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewPaginatedResponse(plans, total, filter.Page, filter.PageSize))
}

func (mh *MarketplaceHandler) GetPlan(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  plan, err := mh.catalogService.GetPlan(c.Request.Context(), policyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, plan)
}

func (mh *MarketplaceHandler) GetPlanCriteria(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  criteria, err := mh.catalogService.GetPlanCriteria(c.Request.Context(), policyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, criteria)
}

func (mh *MarketplaceHandler) GetPlanTariffs(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  tariffs, err := mh.catalogService.GetPlanTariffs(c.Request.Context(), policyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, tariffs)
}

// Match runs the quote matcher over every active plan.
func (mh *MarketplaceHandler) Match(c *gin.Context) {
  var criteria matching.Criteria
  if err := c.ShouldBindJSON(&criteria); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  results, err := mh.quoteService.Match(c.Request.Context(), criteria)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"matches": results, "count": len(results)})
}

func intQuery(c *gin.Context, key string, fallback int) int {
  value, err := strconv.Atoi(c.Query(key))
  if err != nil {
    return fallback
  }
  return value
}

func uintParam(c *gin.Context, key string) (uint, bool) {
  value, err := strconv.ParseUint(c.Param(key), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return 0, false
  }
  return uint(value), true
}
