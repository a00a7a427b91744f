package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zonebms/zone_backend/internal/core/domain"
	portssvc "github.com/zonebms/zone_backend/internal/core/ports/services"
	"github.com/zonebms/zone_backend/internal/dto"
	"github.com/zonebms/zone_backend/internal/middleware"
)

// documentHandler handles HTTP requests for one document kind.
type documentHandler struct {
	kind      domain.DocumentKind
	documents portssvc.DocumentSvcFacade
	lifecycle portssvc.LifecycleSvcFacade
}

func newDocumentHandler(kind domain.DocumentKind, documents portssvc.DocumentSvcFacade, lifecycle portssvc.LifecycleSvcFacade) *documentHandler {
	return &documentHandler{kind: kind, documents: documents, lifecycle: lifecycle}
}

// registerDocumentRoutes registers one route group per document kind:
// /sales-orders, /purchase-orders, /sales-invoices, /purchase-invoices,
// /quotations. All five share the same handler parameterized by kind.
func registerDocumentRoutes(rg *gin.RouterGroup, documents portssvc.DocumentSvcFacade, lifecycle portssvc.LifecycleSvcFacade) {
	for _, kind := range domain.AllKinds() {
		h := newDocumentHandler(kind, documents, lifecycle)

		group := rg.Group("/" + routePath(kind))
		{
			group.POST("", h.createDocument)
			group.GET("", h.listDocuments)
			group.GET("/:id", h.getDocument)
			group.PUT("/:id/status", h.updateStatus)
			group.DELETE("/:id", h.deleteDocument)
		}
	}
}

// routePath derives the URL segment for a kind, e.g. sales_order -> sales-orders.
func routePath(kind domain.DocumentKind) string {
	return strings.ReplaceAll(string(kind), "_", "-") + "s"
}

// createDocument godoc
// @Summary Create a document
// @Description Creates a new document of this kind in its initial status
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for document create", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documents.CreateDocument(c.Request.Context(), h.kind, req, creatorID)
	if err != nil {
		logger.Warn("Failed to create document", slog.String("kind", string(h.kind)), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get a document
// @Description Fetches one document by id, applying read-time status corrections
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
func (h *documentHandler) getDocument(c *gin.Context) {
	doc, err := h.documents.GetDocumentByID(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List documents
// @Description Lists documents of this kind, newest first, optionally filtered by status
// @Tags documents
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Maximum results"
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for document list", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	docs, err := h.documents.ListDocuments(c.Request.Context(), h.kind, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentResponse(docs))
}

// updateStatus godoc
// @Summary Update document status
// @Description Moves the document to a new status, running the transition's side effects
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   status body dto.UpdateStatusRequest true "Target status and optional payment or delivery details"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Illegal transition or insufficient stock"
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
func (h *documentHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for status update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required: " + err.Error()})
		return
	}

	extras := dto.TransitionExtras{
		PaidAmount:   req.PaidAmount,
		DeliveryDate: req.DeliveryDate,
	}
	result, err := h.lifecycle.Transition(c.Request.Context(), h.kind, c.Param("id"), domain.Status(req.Status), extras)
	if err != nil {
		logger.Warn("Transition rejected",
			slog.String("kind", string(h.kind)),
			slog.String("document_id", c.Param("id")),
			slog.String("target", req.Status),
			slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransitionResponse{
		Message:  "Status updated from " + string(result.OldStatus) + " to " + string(result.NewStatus),
		Document: dto.ToDocumentResponse(result.Document),
	})
}

// deleteDocument godoc
// @Summary Delete a document
// @Description Removes a document; stock and ledger effects of past transitions remain
// @Tags documents
// @Param   id path string true "Document ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
func (h *documentHandler) deleteDocument(c *gin.Context) {
	if err := h.documents.DeleteDocument(c.Request.Context(), h.kind, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
