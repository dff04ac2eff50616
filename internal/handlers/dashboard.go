package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/services"
)

type DashboardHandler struct {
  dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
  return &DashboardHandler{dashboardService: dashboardService}
}

// Stats accepts optional start_date/end_date query params (YYYY-MM-DD);
// the window defaults to the current calendar month.
func (dh *DashboardHandler) Stats(c *gin.Context) {
  startDate, ok := dateQuery(c, "start_date")
  if !ok {
    return
  }
  endDate, ok := dateQuery(c, "end_date")
  if !ok {
    return
  }
  stats, err := dh.dashboardService.Stats(c.Request.Context(), startDate, endDate)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, stats)
}

func dateQuery(c *gin.Context, key string) (*time.Time, bool) {
  raw := c.Query(key)
  if raw == "" {
    return nil, true
  }
  parsed, err := time.Parse("2006-01-02", raw)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return nil, false
  }
  return &parsed, true
}
