package dto

import (
	"matunda/internal/core/types"
	"matunda/internal/domain/batch"
)

// OpenBatchRequest for opening a new stock batch.
type OpenBatchRequest struct {
	StockName    string         `json:"stockName" binding:"required"`
	FruitType    string         `json:"fruitType" binding:"required"`
	DateIn       types.Date     `json:"dateIn"`
	QuantityIn   types.Quantity `json:"quantityIn"`
	AmountPerKg  types.Money    `json:"amountPerKg"`
	OtherCharges types.Money    `json:"otherCharges"`
}

// ToIntake converts the request to domain intake data.
func (r OpenBatchRequest) ToIntake() batch.Intake {
	return batch.Intake{
		StockName:    r.StockName,
		FruitType:    r.FruitType,
		DateIn:       r.DateIn,
		QuantityIn:   r.QuantityIn,
		AmountPerKg:  r.AmountPerKg,
		OtherCharges: r.OtherCharges,
	}
}

// CloseBatchRequest for recording batch outflow.
type CloseBatchRequest struct {
	DateOut     types.Date     `json:"dateOut"`
	QuantityOut types.Quantity `json:"quantityOut"`

	GradientUsed        string      `json:"gradientUsed"`
	GradientAmountUsed  types.Money `json:"gradientAmountUsed"`
	GradientCostPerUnit types.Money `json:"gradientCostPerUnit"`
}

// ToOutflow converts the request to domain outflow data.
func (r CloseBatchRequest) ToOutflow() batch.Outflow {
	return batch.Outflow{
		DateOut:             r.DateOut,
		QuantityOut:         r.QuantityOut,
		GradientUsed:        r.GradientUsed,
		GradientAmountUsed:  r.GradientAmountUsed,
		GradientCostPerUnit: r.GradientCostPerUnit,
	}
}

// CloseBatchResponse returns the closed batch with its derived economics.
type CloseBatchResponse struct {
	Batch            *batch.StockBatch `json:"batch"`
	EstimatedRevenue types.Money       `json:"estimatedRevenue"`
}

// ListBatchesQuery contains batch listing filters.
type ListBatchesQuery struct {
	DateRangeQuery
	FruitType string `form:"fruitType"`
	OpenOnly  bool   `form:"openOnly"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// ToListFilter parses the query into a batch list filter.
func (q ListBatchesQuery) ToListFilter() (batch.ListFilter, error) {
	rangeFilter, err := q.ToFilter()
	if err != nil {
		return batch.ListFilter{}, err
	}
	return batch.ListFilter{
		FruitType: q.FruitType,
		OpenOnly:  q.OpenOnly,
		FromDate:  rangeFilter.FromDate,
		ToDate:    rangeFilter.ToDate,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}, nil
}
