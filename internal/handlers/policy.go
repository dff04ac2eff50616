package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/requestdata"
  "github.com/coverbridge/coverbridge-backend/internal/services"
)

type PolicyHandler struct {
  policyService services.PolicyService
}

func NewPolicyHandler(policyService services.PolicyService) *PolicyHandler {
  return &PolicyHandler{policyService: policyService}
}

type purchaseRequest struct {
  PolicyID  uint  `json:"policy_id" binding:"required"`
  VersionID *uint `json:"version_id"`
}

// Purchase files an application for the authenticated user. The application
// starts in pending_payment and waits for an admin to activate it.
func (ph *PolicyHandler) Purchase(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  var req purchaseRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  userPolicy, err := ph.policyService.Purchase(c.Request.Context(), rd.UserID, req.PolicyID, req.VersionID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, userPolicy)
}

func (ph *PolicyHandler) Mine(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  policies, err := ph.policyService.Mine(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, policies)
}

func (ph *PolicyHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  userPolicyID, ok := uintParam(c, "user_policy_id")
  if !ok {
    return
  }
  userPolicy, err := ph.policyService.Get(c.Request.Context(), userPolicyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  // Non-admins can only read their own policies.
  if !rd.IsAdmin && userPolicy.UserID != rd.UserID {
    RespondError(c, http.StatusNotFound, "not_found", services.ErrNotFound)
    return
  }
  RespondOK(c, userPolicy)
}
