package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/coverbridge/coverbridge-backend/internal/requestdata"
  "github.com/coverbridge/coverbridge-backend/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
  userService services.UserService
}

func NewAuthHandler(authService services.AuthService, userService services.UserService) *AuthHandler {
  return &AuthHandler{authService: authService, userService: userService}
}

func (ah *AuthHandler) Signup(c *gin.Context) {
  var input services.SignupInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, err := ah.authService.Signup(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, user)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var input services.LoginInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  pair, user, err := ah.authService.Login(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"access_token": pair.AccessToken, "token_type": pair.TokenType, "user": user})
}

func (ah *AuthHandler) AdminLogin(c *gin.Context) {
  var input services.LoginInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  pair, user, err := ah.authService.AdminLogin(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"access_token": pair.AccessToken, "token_type": pair.TokenType, "user": user})
}

func (ah *AuthHandler) Me(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthenticated", services.ErrInvalidToken)
    return
  }
  user, err := ah.userService.Get(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, user)
}
