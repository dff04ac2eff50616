package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/requestdata"
  "github.com/coverbridge/coverbridge-backend/internal/services"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type DocumentHandler struct {
  documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
  return &DocumentHandler{documentService: documentService}
}

func (dh *DocumentHandler) ListRequired(c *gin.Context) {
  docs, err := dh.documentService.ListRequired(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, docs)
}

func (dh *DocumentHandler) CreateRequired(c *gin.Context) {
  var doc types.RequiredDocument
  if err := c.ShouldBindJSON(&doc); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := dh.documentService.CreateRequired(c.Request.Context(), &doc); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, doc)
}

func (dh *DocumentHandler) PolicyRequirements(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  reqs, err := dh.documentService.PolicyRequirements(c.Request.Context(), policyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, reqs)
}

func (dh *DocumentHandler) AddPolicyRequirement(c *gin.Context) {
  var req types.PolicyDocumentRequirement
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := dh.documentService.AddPolicyRequirement(c.Request.Context(), &req); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, req)
}

type uploadUserDocumentRequest struct {
  DocID   uint   `json:"doc_id" binding:"required"`
  FileURL string `json:"file_url" binding:"required"`
}

func (dh *DocumentHandler) UploadUserDocument(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  var req uploadUserDocumentRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  doc, err := dh.documentService.UploadUserDocument(c.Request.Context(), rd.UserID, req.DocID, req.FileURL)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, doc)
}

func (dh *DocumentHandler) MyDocuments(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  docs, err := dh.documentService.UserDocuments(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, docs)
}

func (dh *DocumentHandler) DeleteUserDocument(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  userDocID, ok := uintParam(c, "user_doc_id")
  if !ok {
    return
  }
  if err := dh.documentService.DeleteUserDocument(c.Request.Context(), rd.UserID, userDocID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "document deleted"})
}

type verifyDocumentRequest struct {
  Verified *bool `json:"verified" binding:"required"`
}

func (dh *DocumentHandler) VerifyUserDocument(c *gin.Context) {
  userDocID, ok := uintParam(c, "user_doc_id")
  if !ok {
    return
  }
  var req verifyDocumentRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  doc, err := dh.documentService.VerifyUserDocument(c.Request.Context(), userDocID, *req.Verified)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, doc)
}

func (dh *DocumentHandler) LatestPolicyVersion(c *gin.Context) {
  policyID, ok := uintParam(c, "policy_id")
  if !ok {
    return
  }
  version, err := dh.documentService.LatestPolicyVersion(c.Request.Context(), policyID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, version)
}

func (dh *DocumentHandler) PublishPolicyVersion(c *gin.Context) {
  var version types.PolicyDocumentVersion
  if err := c.ShouldBindJSON(&version); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := dh.documentService.PublishPolicyVersion(c.Request.Context(), &version); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, version)
}
