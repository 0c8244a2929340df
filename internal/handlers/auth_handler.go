package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billpilot_backend/internal/config"
	"billpilot_backend/internal/logger"
	"billpilot_backend/internal/services"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/pkg/apperrors"
)

// refreshCookieName is the session cookie carrying the refresh token
const refreshCookieName = "jwt"

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "A verification email has been sent to " + user.Email,
	})
}

// VerifyEmail handles GET /auth/verify/:emailToken/:userId
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	emailToken := c.Param("emailToken")
	userID := c.Param("userId")

	alreadyVerified, err := h.authService.VerifyEmail(userID, emailToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if alreadyVerified {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "This account has already been verified. Please log in.",
		})
		return
	}

	logger.CtxInfo(c.Request.Context(), "email verified", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "The account has been verified. Please log in.",
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	presented, _ := c.Cookie(refreshCookieName)

	resp, refreshToken, err := h.authService.Login(&req, presented)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, refreshToken)
	logger.CtxInfo(c.Request.Context(), "user logged in", "username", resp.Username)
	c.JSON(http.StatusOK, resp)
}

// RefreshToken handles GET /auth/new_access_token. The refresh token is read
// from the session cookie only; the cookie is replaced on success and
// cleared on rejection.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	presented, err := c.Cookie(refreshCookieName)
	if err != nil || presented == "" {
		apperrors.HandleError(c, apperrors.ErrMissingRefreshCookie)
		return
	}

	resp, refreshToken, err := h.authService.RefreshTokens(presented)
	if err != nil {
		h.clearRefreshCookie(c)
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, resp)
}

// Logout handles GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	presented, err := c.Cookie(refreshCookieName)
	if err != nil || presented == "" {
		c.Status(http.StatusNoContent)
		return
	}

	user, svcErr := h.authService.Logout(presented)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	h.clearRefreshCookie(c)

	if user == nil {
		// Nothing held that token; the cookie is gone either way
		c.Status(http.StatusNoContent)
		return
	}

	logger.CtxInfo(c.Request.Context(), "user logged out", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": user.FirstName + ", you have been logged out successfully",
	})
}

// ResendVerification handles POST /auth/resend_email_token
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.ResendVerification(req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "A verification email has been sent to " + user.Email,
	})
}

// RequestPasswordReset handles POST /auth/reset_password_request
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.RequestPasswordReset(req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "A password reset link has been sent to " + user.Email,
	})
}

// ResetPassword handles POST /auth/reset_password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordConfirm
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.ResetPassword(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "password reset", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your password has been reset. Please log in with your new password.",
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	maxAge := int(time.Duration(config.GetConfig().JWT.RefreshTTLHours) * time.Hour / time.Second)
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, token, maxAge, "/", "", true, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", true, true)
}
