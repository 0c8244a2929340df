package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"billpilot_backend/internal/logger"
	"billpilot_backend/internal/services"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/internal/validator"
	"billpilot_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

// protectedProfileFields cannot be changed through the profile endpoint.
// Identity fields are immutable and credentials have their own flow.
var protectedProfileFields = map[string]bool{
	"email":           true,
	"username":        true,
	"roles":           true,
	"provider":        true,
	"googleId":        true,
	"isEmailVerified": true,
	"active":          true,
}

// GetProfile handles GET /user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// UpdateProfile handles PATCH /user/profile. The raw body is inspected
// before binding so attempts to change identity or credential fields are
// rejected instead of silently dropped.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	for field := range payload {
		if field == "password" || field == "passwordConfirm" {
			apperrors.HandleError(c, apperrors.ErrPasswordUpdateNotAllowed)
			return
		}
		if protectedProfileFields[field] {
			apperrors.HandleError(c, apperrors.ErrProtectedProfileField)
			return
		}
	}

	var req dto.UpdateProfileRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return
	}

	profile, svcErr := h.userService.UpdateProfile(userID, &req)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	logger.CtxInfo(c.Request.Context(), "profile updated", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// DeleteAccount handles DELETE /user/profile
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "account deleted", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Your account has been deleted"})
}

// ListUsers handles GET /user/all (admin only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := h.Pagination(c)

	users, total, err := h.userService.ListUsers(limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// DeactivateUser handles DELETE /user/:id/deactivate (admin only)
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	targetID := c.Param("id")

	if err := h.userService.DeactivateUser(targetID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "user deactivated", "target_id", targetID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User has been deactivated"})
}

// DeleteUser handles DELETE /user/:id (admin only)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	targetID := c.Param("id")

	if err := h.userService.DeleteUser(targetID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "user deleted by admin", "target_id", targetID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User has been deleted"})
}
