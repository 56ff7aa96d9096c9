package reports

import (
	"sort"
	"strings"

	"matunda/internal/core/types"
	"matunda/internal/domain/batch"
	"matunda/internal/domain/ledger"
)

// hundred is the percentage multiplier for margin computation.
var hundred = types.MustMoney("100")

// ComputeFruitProfitability aggregates sales against purchases per fruit
// type. Grouping is case-insensitive ("Mango" and "mango" are one fruit);
// the first spelling seen is kept for display. When the purchase ledger is
// empty, batch intake records stand in for purchases so the report stays
// usable for operations that track stock but not a separate purchase book.
func ComputeFruitProfitability(sales []ledger.SaleRecord, purchases []ledger.Purchase, batches []batch.StockBatch) ProfitabilityReport {
	var report ProfitabilityReport
	groups := make(map[string]*FruitProfitability)
	var order []string

	group := func(fruitType string) *FruitProfitability {
		key := strings.ToLower(strings.TrimSpace(fruitType))
		if g, ok := groups[key]; ok {
			return g
		}
		g := &FruitProfitability{FruitType: strings.TrimSpace(fruitType)}
		groups[key] = g
		order = append(order, key)
		return g
	}

	for i, sale := range sales {
		if strings.TrimSpace(sale.FruitType) == "" {
			report.Warnings = append(report.Warnings,
				ledger.NewWarning("sale has no fruit type, excluded from profitability").
					WithDetail("index", i))
			continue
		}
		g := group(sale.FruitType)
		g.SoldQuantity = g.SoldQuantity.Add(sale.Quantity)
		g.SoldAmount = g.SoldAmount.Add(sale.Amount)
		g.SalesCount++
	}

	if len(purchases) > 0 {
		for i, p := range purchases {
			if strings.TrimSpace(p.FruitType) == "" {
				report.Warnings = append(report.Warnings,
					ledger.NewWarning("purchase has no fruit type, excluded from profitability").
						WithDetail("index", i))
				continue
			}
			g := group(p.FruitType)
			g.PurchasedQuantity = g.PurchasedQuantity.Add(p.Quantity)
			g.PurchasedAmount = g.PurchasedAmount.Add(p.Amount)
			g.PurchaseCount++
		}
	} else {
		report.UsedBatchFallback = true
		for _, b := range batches {
			if strings.TrimSpace(b.FruitType) == "" {
				continue
			}
			g := group(b.FruitType)
			g.PurchasedQuantity = g.PurchasedQuantity.Add(b.QuantityIn)
			g.PurchasedAmount = g.PurchasedAmount.Add(b.TotalAmount)
			g.PurchaseCount++
		}
	}

	report.Items = make([]FruitProfitability, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.TotalProfit = g.SoldAmount.Sub(g.PurchasedAmount)
		if g.SoldAmount.IsZero() {
			g.ProfitMargin = types.Zero()
		} else {
			g.ProfitMargin = g.TotalProfit.Div(g.SoldAmount).Mul(hundred)
		}
		report.Items = append(report.Items, *g)
	}

	// Most profitable first; name breaks ties so the order is stable.
	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if !a.TotalProfit.Equal(b.TotalProfit) {
			return a.TotalProfit.GreaterThan(b.TotalProfit)
		}
		return strings.ToLower(a.FruitType) < strings.ToLower(b.FruitType)
	})

	return report
}
