package handlers

import (
	"github.com/gin-gonic/gin"

	"matunda/internal/core/apperror"
	"matunda/internal/core/id"
	"matunda/internal/domain/batch"
	"matunda/internal/infrastructure/http/v1/dto"
)

// BatchHandler handles stock batch lifecycle endpoints.
type BatchHandler struct {
	*BaseHandler
	service *batch.Service
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(base *BaseHandler, service *batch.Service) *BatchHandler {
	return &BatchHandler{BaseHandler: base, service: service}
}

// Open handles POST /batches.
func (h *BatchHandler) Open(c *gin.Context) {
	var req dto.OpenBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	batchID, err := h.service.Open(c.Request.Context(), req.ToIntake())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, batchID)
}

// Close handles POST /batches/:id/close.
func (h *BatchHandler) Close(c *gin.Context) {
	batchID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.CloseBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	closed, err := h.service.Close(c.Request.Context(), batchID, req.ToOutflow())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.CloseBatchResponse{
		Batch:            closed,
		EstimatedRevenue: closed.EstimatedRevenue(),
	})
}

// Get handles GET /batches/:id.
func (h *BatchHandler) Get(c *gin.Context) {
	batchID, ok := h.parseID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), batchID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, b)
}

// List handles GET /batches.
func (h *BatchHandler) List(c *gin.Context) {
	var query dto.ListBatchesQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToListFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: items, Count: len(items)})
}

// ListOpen handles GET /batches/open.
func (h *BatchHandler) ListOpen(c *gin.Context) {
	items, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: items, Count: len(items)})
}

func (h *BatchHandler) parseID(c *gin.Context) (id.ID, bool) {
	batchID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid batch id").
			WithDetail("id", c.Param("id")))
		return id.Nil(), false
	}
	return batchID, true
}
