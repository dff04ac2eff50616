package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/ingest"
  "github.com/coverbridge/coverbridge-backend/internal/services"
)

type UploadHandler struct {
  uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
  return &UploadHandler{uploadService: uploadService}
}

func (uh *UploadHandler) UploadPolicies(c *gin.Context) {
  uh.handle(c, services.UploadPolicies)
}

func (uh *UploadHandler) UploadTariffs(c *gin.Context) {
  uh.handle(c, services.UploadTariffs)
}

func (uh *UploadHandler) UploadCriteria(c *gin.Context) {
  uh.handle(c, services.UploadCriteria)
}

// handle runs a bulk upload. A parseable file always yields a 200 with
// per-row errors inside the result; only unsupported formats and batch
// commit failures surface as HTTP errors.
func (uh *UploadHandler) handle(c *gin.Context, kind services.UploadKind) {
  fileHeader, err := c.FormFile("file")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "missing_file", err)
    return
  }
  file, err := fileHeader.Open()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "unreadable_file", err)
    return
  }
  defer file.Close()

  result, err := uh.uploadService.HandleUpload(c.Request.Context(), kind, fileHeader.Filename, file)
  if err != nil {
    var formatErr *ingest.UnsupportedFormatError
    if errors.As(err, &formatErr) {
      RespondError(c, http.StatusBadRequest, "unsupported_format", err)
      return
    }
    if result != nil {
      // Batch commit failed partway; report what was committed.
      c.JSON(http.StatusInternalServerError, gin.H{
        "error":  APIError{Message: err.Error(), Code: "ingest_failed"},
        "result": result,
      })
      return
    }
    RespondError(c, http.StatusInternalServerError, "ingest_failed", err)
    return
  }
  RespondOK(c, result)
}
