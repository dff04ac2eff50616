package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/repos"
  "github.com/coverbridge/coverbridge-backend/internal/requestdata"
  "github.com/coverbridge/coverbridge-backend/internal/services"
)

type ClaimHandler struct {
  claimService services.ClaimService
}

func NewClaimHandler(claimService services.ClaimService) *ClaimHandler {
  return &ClaimHandler{claimService: claimService}
}

func (ch *ClaimHandler) File(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  var input services.ClaimInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  claim, err := ch.claimService.File(c.Request.Context(), rd.UserID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, claim)
}

func (ch *ClaimHandler) Mine(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  claims, err := ch.claimService.Mine(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, claims)
}

func (ch *ClaimHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  claimID, ok := uintParam(c, "claim_id")
  if !ok {
    return
  }
  claim, err := ch.claimService.Get(c.Request.Context(), claimID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  if !rd.IsAdmin && (claim.UserPolicy == nil || claim.UserPolicy.UserID != rd.UserID) {
    RespondError(c, http.StatusNotFound, "not_found", services.ErrNotFound)
    return
  }
  RespondOK(c, claim)
}

// List is the admin-side claims table with status and user filters.
func (ch *ClaimHandler) List(c *gin.Context) {
  filter := repos.ClaimFilter{
    Status:   c.Query("status"),
    Page:     intQuery(c, "page", 1),
    PageSize: intQuery(c, "page_size", 10),
  }
  if userID := intQuery(c, "user_id", 0); userID > 0 {
    filter.UserID = uint(userID)
  }
  claims, total, err := ch.claimService.List(c.Request.Context(), filter)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewPaginatedResponse(claims, total, filter.Page, filter.PageSize))
}

func (ch *ClaimHandler) Approve(c *gin.Context) {
  claimID, ok := uintParam(c, "claim_id")
  if !ok {
    return
  }
  claim, err := ch.claimService.Approve(c.Request.Context(), claimID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, claim)
}

type rejectClaimRequest struct {
  Reason string `json:"reason"`
}

func (ch *ClaimHandler) Reject(c *gin.Context) {
  claimID, ok := uintParam(c, "claim_id")
  if !ok {
    return
  }
  var req rejectClaimRequest
  if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  claim, err := ch.claimService.Reject(c.Request.Context(), claimID, req.Reason)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, claim)
}

func (ch *ClaimHandler) MarkInReview(c *gin.Context) {
  claimID, ok := uintParam(c, "claim_id")
  if !ok {
    return
  }
  claim, err := ch.claimService.MarkInReview(c.Request.Context(), claimID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, claim)
}
