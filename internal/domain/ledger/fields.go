package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"matunda/internal/core/types"
)

// Field aliases used by the various sale producers. The seller entry form,
// the seller-fruits import and the legacy mobile client all spell these
// differently; this table is the single place where the spellings are
// reconciled. Order matters: the first present alias wins.
var fieldAliases = map[string][]string{
	"fruitType": {"fruitType", "fruit_type", "fruit_name", "fruit"},
	"quantity":  {"quantity", "qty", "quantitySold", "quantity_sold"},
	"amount":    {"amount", "revenue"},
	"unitPrice": {"unitPrice", "unit_price"},
	"date":      {"date", "sale_date"},
	"stockName": {"stockName", "stock_name"},
	"customer":  {"customerName", "customer_name"},
	"seller":    {"sellerIdentity", "seller_id"},
}

// lookupField returns the first aliased value present in the record.
func lookupField(rec map[string]any, canonical string) (any, bool) {
	for _, alias := range fieldAliases[canonical] {
		if v, ok := rec[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// stringField resolves a field to a trimmed string, empty if absent.
func stringField(rec map[string]any, canonical string) string {
	v, ok := lookupField(rec, canonical)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// numericField resolves a field to a decimal. Missing or non-numeric
// values yield zero and a warning rather than an error.
func numericField(rec map[string]any, canonical string) (decimal.Decimal, *Warning) {
	v, ok := lookupField(rec, canonical)
	if !ok {
		w := NewWarning("missing numeric field, defaulted to 0").
			WithDetail("field", canonical)
		return decimal.Zero, &w
	}

	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case decimal.Decimal:
		return n, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err == nil {
			return d, nil
		}
		w := NewWarning("non-numeric field value, defaulted to 0").
			WithDetail("field", canonical).
			WithDetail("value", n)
		return decimal.Zero, &w
	default:
		w := NewWarning("unsupported field type, defaulted to 0").
			WithDetail("field", canonical)
		return decimal.Zero, &w
	}
}

// NormalizeSale resolves a loosely-typed producer record into a typed
// SaleRecord. It never fails: malformed values become zero values with an
// accompanying warning, and the caller decides what to do with them.
func NormalizeSale(rec map[string]any) (SaleRecord, []Warning) {
	var warnings []Warning

	sale := SaleRecord{
		FruitType:    stringField(rec, "fruitType"),
		CustomerName: stringField(rec, "customer"),
		SellerID:     stringField(rec, "seller"),
		StockNameRef: stringField(rec, "stockName"),
	}

	qty, w := numericField(rec, "quantity")
	if w != nil {
		warnings = append(warnings, *w)
	}
	sale.Quantity = types.NewQuantityFromFloat64(qty.InexactFloat64())

	amount, w := numericField(rec, "amount")
	if w != nil {
		warnings = append(warnings, *w)
	}
	sale.Amount = amount

	if _, ok := lookupField(rec, "unitPrice"); ok {
		price, w := numericField(rec, "unitPrice")
		if w != nil {
			warnings = append(warnings, *w)
		}
		sale.UnitPrice = price
	}

	if raw := stringField(rec, "date"); raw != "" {
		d, err := types.ParseDate(raw)
		if err != nil {
			warnings = append(warnings, NewWarning("unparsable sale date").
				WithDetail("value", raw))
		} else {
			sale.Date = d
		}
	}

	// The recorded amount is authoritative for revenue; a mismatch with
	// quantity x unitPrice is only reported.
	if !sale.UnitPrice.IsZero() && !sale.Quantity.IsZero() {
		expected := sale.UnitPrice.Mul(sale.Quantity.Decimal())
		if !expected.Equal(sale.Amount) {
			warnings = append(warnings, NewWarning("sale amount differs from quantity x unit price").
				WithDetail("amount", sale.Amount.String()).
				WithDetail("computed", expected.String()))
		}
	}

	return sale, warnings
}

// NormalizeSales normalizes a slice of producer records.
func NormalizeSales(recs []map[string]any) ([]SaleRecord, []Warning) {
	sales := make([]SaleRecord, 0, len(recs))
	var warnings []Warning
	for _, rec := range recs {
		sale, ws := NormalizeSale(rec)
		sales = append(sales, sale)
		warnings = append(warnings, ws...)
	}
	return sales, warnings
}
