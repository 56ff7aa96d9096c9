// Package matching resolves which stock batch most plausibly supplied a
// sale when the sale carries no explicit batch reference. The resolution
// is a heuristic, not an exact join: most sale entry paths have no foreign
// key to a batch, so the engine picks the batch most likely to have been
// on the shelf on the sale date.
package matching

import (
	"matunda/internal/core/types"
	"matunda/internal/domain/batch"
	"matunda/internal/domain/ledger"
)

// UnknownStock is the resolved name when no candidate batch exists.
const UnknownStock = "unknown"

// Confidence expresses how much trust to place in a resolution.
type Confidence string

const (
	// ConfidenceExplicit means the sale carried a batch reference.
	ConfidenceExplicit Confidence = "explicit"
	// ConfidenceDated means the batch was selected by date proximity.
	ConfidenceDated Confidence = "dated"
	// ConfidenceFallback means the last candidate was taken as a guess
	// (missing sale date, or every candidate postdates the sale).
	ConfidenceFallback Confidence = "fallback"
	// ConfidenceNone means no candidate batch exists at all.
	ConfidenceNone Confidence = "none"
)

// MatchedSale is a sale enriched with the batch that supplied it.
type MatchedSale struct {
	ledger.SaleRecord

	ResolvedStockName string            `json:"resolvedStockName"`
	ResolvedBatch     *batch.StockBatch `json:"-"`
	Confidence        Confidence        `json:"confidence"`
}

// Resolve attaches a batch reference to a sale. It is pure and
// deterministic: identical inputs always produce the identical match, and
// the batch snapshot is never mutated.
//
// Resolution order:
//  1. an explicit stockNameRef on the sale bypasses matching entirely;
//  2. candidates are the batches whose fruitType equals the sale's
//     (case-sensitive exact match);
//  3. no candidates: resolved name is "unknown";
//  4. no usable sale date: last candidate in input order, low confidence;
//  5. prefer the candidate with the latest dateOut <= sale date (the most
//     recently closed batch as of the sale);
//  6. else the candidate with the latest dateIn <= sale date;
//  7. else the last candidate in input order, low confidence.
func Resolve(sale ledger.SaleRecord, batches []batch.StockBatch) MatchedSale {
	if sale.StockNameRef != "" {
		m := MatchedSale{
			SaleRecord:        sale,
			ResolvedStockName: sale.StockNameRef,
			Confidence:        ConfidenceExplicit,
		}
		for i := range batches {
			if batches[i].StockName == sale.StockNameRef {
				m.ResolvedBatch = &batches[i]
				break
			}
		}
		return m
	}

	var candidates []*batch.StockBatch
	for i := range batches {
		if batches[i].FruitType == sale.FruitType {
			candidates = append(candidates, &batches[i])
		}
	}

	if len(candidates) == 0 {
		return MatchedSale{
			SaleRecord:        sale,
			ResolvedStockName: UnknownStock,
			Confidence:        ConfidenceNone,
		}
	}

	if sale.Date.IsZero() {
		last := candidates[len(candidates)-1]
		return MatchedSale{
			SaleRecord:        sale,
			ResolvedStockName: last.StockName,
			ResolvedBatch:     last,
			Confidence:        ConfidenceFallback,
		}
	}

	if best := latestClosedBefore(candidates, sale.Date); best != nil {
		return MatchedSale{
			SaleRecord:        sale,
			ResolvedStockName: best.StockName,
			ResolvedBatch:     best,
			Confidence:        ConfidenceDated,
		}
	}

	if best := latestOpenedBefore(candidates, sale.Date); best != nil {
		return MatchedSale{
			SaleRecord:        sale,
			ResolvedStockName: best.StockName,
			ResolvedBatch:     best,
			Confidence:        ConfidenceDated,
		}
	}

	last := candidates[len(candidates)-1]
	return MatchedSale{
		SaleRecord:        sale,
		ResolvedStockName: last.StockName,
		ResolvedBatch:     last,
		Confidence:        ConfidenceFallback,
	}
}

// ResolveAll enriches a slice of sales against one batch snapshot.
func ResolveAll(sales []ledger.SaleRecord, batches []batch.StockBatch) []MatchedSale {
	matched := make([]MatchedSale, 0, len(sales))
	for _, sale := range sales {
		matched = append(matched, Resolve(sale, batches))
	}
	return matched
}

// latestClosedBefore picks the candidate with the greatest dateOut that is
// on or before the sale date. Earlier input position wins ties so the
// result is stable.
func latestClosedBefore(candidates []*batch.StockBatch, saleDate types.Date) *batch.StockBatch {
	var best *batch.StockBatch
	for _, c := range candidates {
		if c.DateOut == nil || c.DateOut.After(saleDate) {
			continue
		}
		if best == nil || c.DateOut.After(*best.DateOut) {
			best = c
		}
	}
	return best
}

// latestOpenedBefore picks the candidate with the greatest dateIn on or
// before the sale date.
func latestOpenedBefore(candidates []*batch.StockBatch, saleDate types.Date) *batch.StockBatch {
	var best *batch.StockBatch
	for _, c := range candidates {
		if c.DateIn.After(saleDate) {
			continue
		}
		if best == nil || c.DateIn.After(best.DateIn) {
			best = c
		}
	}
	return best
}
