package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacebook/backend/internal/model"
	"github.com/spacebook/backend/internal/service"
)

type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Email and password"
// @Success 201 {object} model.AccountView
// @Failure 400 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Router /default-auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request")
		return
	}

	account, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewAccountView(account))
}

// Authenticate godoc
// @Summary Login with email and password
// @Description Accepts the OAuth2 password form (username carries the email) or JSON.
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} model.TokenResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Router /default-auth/authenticate [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, h.logger, service.ErrInvalidCredentials)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleAuth godoc
// @Summary Login with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param token query string false "Google ID token"
// @Param request body model.GoogleAuthRequest false "Google ID token"
// @Success 200 {object} model.FederatedTokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 501 {object} model.ErrorResponse
// @Router /default-auth/auth/google [post]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var req model.GoogleAuthRequest
		if err := c.ShouldBind(&req); err == nil {
			token = req.Token
		}
	}

	resp, err := h.svc.AuthenticateExternal(c.Request.Context(), token)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleCode godoc
// @Summary Login with a Google authorization code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.GoogleCodeRequest true "Authorization code and redirect URI"
// @Success 200 {object} model.FederatedTokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 501 {object} model.ErrorResponse
// @Router /default-auth/auth/google/code [post]
func (h *AuthHandler) GoogleCode(c *gin.Context) {
	var req model.GoogleCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request")
		return
	}

	resp, err := h.svc.ExchangeCode(c.Request.Context(), req.Code, req.RedirectURI)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MeResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /default-auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		writeError(c, h.logger, service.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, model.MeResponse{
		UserID: claims.UserID,
		Email:  claims.Email,
	})
}
