package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billpilot_backend/internal/logger"
	"billpilot_backend/internal/services"
	"billpilot_backend/internal/services/dto"
)

type DocumentHandler struct {
	*BaseHandler
	documentService services.DocumentService
}

func NewDocumentHandler(base *BaseHandler, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{BaseHandler: base, documentService: documentService}
}

// Create handles POST /document/create
func (h *DocumentHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	document, err := h.documentService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "document created", "document_id", document.ID, "type", document.DocumentType)
	c.JSON(http.StatusCreated, gin.H{"success": true, "document": document})
}

// Get handles GET /document/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	document, err := h.documentService.GetByID(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document": document})
}

// List handles GET /document/all
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	limit, offset := h.Pagination(c)

	documents, total, err := h.documentService.List(userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"documents": documents,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// Update handles PATCH /document/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDocumentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	document, err := h.documentService.Update(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document": document})
}

// Delete handles DELETE /document/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "document deleted", "document_id", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document has been deleted"})
}
