package handlers

import (
	"github.com/gin-gonic/gin"

	"matunda/internal/domain/reports"
	"matunda/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles sale matching and report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// MatchedSales handles GET /sales/matched.
func (h *ReportsHandler) MatchedSales(c *gin.Context) {
	var query dto.DateRangeQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	matched, err := h.service.MatchedSales(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: matched, Count: len(matched)})
}

// FruitProfitability handles GET /reports/fruit-profitability.
func (h *ReportsHandler) FruitProfitability(c *gin.Context) {
	var query dto.DateRangeQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.FruitProfitability(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// PeriodSummaries handles GET /reports/period-summaries.
// The bucket query parameter selects weekly or monthly bucketing and
// defaults to monthly.
func (h *ReportsHandler) PeriodSummaries(c *gin.Context) {
	var query dto.DateRangeQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	bucketing := reports.Bucketing(c.DefaultQuery("bucket", string(reports.BucketMonth)))

	report, err := h.service.PeriodSummaries(c.Request.Context(), filter, bucketing)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}
