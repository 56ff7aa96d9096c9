// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"matunda/internal/core/apperror"
	"matunda/internal/core/id"
	"matunda/internal/core/types"
	"matunda/internal/domain/ledger"
)

// --- List Response ---

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// --- Date Range ---

// DateRangeQuery contains the from/to query parameters shared by the
// listing and reporting endpoints. Dates are YYYY-MM-DD.
type DateRangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ToFilter parses the query into a ledger filter.
func (q DateRangeQuery) ToFilter() (ledger.Filter, error) {
	var filter ledger.Filter

	if q.From != "" {
		d, err := types.ParseDate(q.From)
		if err != nil {
			return filter, apperror.NewValidation("invalid 'from' date").
				WithDetail("from", q.From)
		}
		filter.FromDate = d
	}
	if q.To != "" {
		d, err := types.ParseDate(q.To)
		if err != nil {
			return filter, apperror.NewValidation("invalid 'to' date").
				WithDetail("to", q.To)
		}
		filter.ToDate = d
	}
	if !filter.FromDate.IsZero() && !filter.ToDate.IsZero() && filter.ToDate.Before(filter.FromDate) {
		return filter, apperror.NewValidation("'to' date cannot be before 'from' date").
			WithDetail("from", q.From).
			WithDetail("to", q.To)
	}

	return filter, nil
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
