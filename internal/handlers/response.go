package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/matching"
  "github.com/coverbridge/coverbridge-backend/internal/services"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

// PaginatedResponse is the list envelope for the admin tables.
type PaginatedResponse struct {
  Items      any   `json:"items"`
  Total      int64 `json:"total"`
  Page       int   `json:"page"`
  PageSize   int   `json:"page_size"`
  TotalPages int64 `json:"total_pages"`
}

func NewPaginatedResponse(items any, total int64, page, pageSize int) PaginatedResponse {
  if page < 1 {
    page = 1
  }
  if pageSize < 1 {
    pageSize = 10
  }
  return PaginatedResponse{
    Items:      items,
    Total:      total,
    Page:       page,
    PageSize:   pageSize,
    TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
  }
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses so
// every handler reports consistently.
func RespondServiceError(c *gin.Context, err error) {
  var dependent *services.DependentRecordsError
  switch {
  case errors.Is(err, services.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, services.ErrEmailRegistered):
    RespondError(c, http.StatusBadRequest, "email_registered", err)
  case errors.Is(err, services.ErrInvalidCredentials):
    RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
  case errors.Is(err, services.ErrNotAdmin):
    RespondError(c, http.StatusForbidden, "admin_required", err)
  case errors.Is(err, services.ErrInvalidToken):
    RespondError(c, http.StatusUnauthorized, "invalid_token", err)
  case errors.Is(err, services.ErrUserInactive):
    RespondError(c, http.StatusForbidden, "account_inactive", err)
  case errors.Is(err, services.ErrNotPendingPayment):
    RespondError(c, http.StatusBadRequest, "not_pending_payment", err)
  case errors.Is(err, services.ErrClaimClosed):
    RespondError(c, http.StatusBadRequest, "claim_closed", err)
  case errors.Is(err, matching.ErrFamilySizeRequired):
    RespondError(c, http.StatusBadRequest, "family_size_required", err)
  case errors.As(err, &dependent):
    RespondError(c, http.StatusBadRequest, "dependent_records", err)
  default:
    RespondError(c, http.StatusInternalServerError, "internal_error", err)
  }
}
