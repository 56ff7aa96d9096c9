package reports

import (
	"sort"

	"matunda/internal/core/types"
)

// BuildPeriodSummaries buckets every financial category by calendar period
// and computes a profit/loss line per bucket. Records with a missing date
// are counted in Unbucketed rather than dropped. The function is a pure
// fold over its inputs: calling it twice on the same snapshot yields the
// same report.
func BuildPeriodSummaries(in PeriodInputs, bucketing Bucketing) PeriodReport {
	report := PeriodReport{Bucketing: bucketing}
	buckets := make(map[string]*PeriodSummary)

	bucket := func(d types.Date) *PeriodSummary {
		var key string
		switch bucketing {
		case BucketWeek:
			key = d.WeekStart().String()
		default:
			key = d.MonthKey()
		}
		if b, ok := buckets[key]; ok {
			return b
		}
		b := &PeriodSummary{PeriodKey: key}
		buckets[key] = b
		return b
	}

	for _, s := range in.Sales {
		if s.Date.IsZero() {
			report.Unbucketed.Sales++
			continue
		}
		b := bucket(s.Date)
		b.SalesTotal = b.SalesTotal.Add(s.Amount)
	}
	for _, p := range in.Purchases {
		if p.Date.IsZero() {
			report.Unbucketed.Purchases++
			continue
		}
		b := bucket(p.Date)
		b.PurchasesTotal = b.PurchasesTotal.Add(p.Amount)
	}
	for _, e := range in.Expenses {
		if e.Date.IsZero() {
			report.Unbucketed.Expenses++
			continue
		}
		b := bucket(e.Date)
		b.ExpensesTotal = b.ExpensesTotal.Add(e.Amount)
	}
	for _, s := range in.Salaries {
		if s.Date.IsZero() {
			report.Unbucketed.Salaries++
			continue
		}
		b := bucket(s.Date)
		b.SalariesTotal = b.SalariesTotal.Add(s.Amount)
	}
	for _, c := range in.CarExpenses {
		if c.Date.IsZero() {
			report.Unbucketed.CarExpenses++
			continue
		}
		b := bucket(c.Date)
		b.CarExpensesTotal = b.CarExpensesTotal.Add(c.Amount)
	}

	report.Periods = make([]PeriodSummary, 0, len(buckets))
	for _, b := range buckets {
		b.ProfitLoss = b.SalesTotal.
			Sub(b.PurchasesTotal).
			Sub(b.ExpensesTotal).
			Sub(b.SalariesTotal).
			Sub(b.CarExpensesTotal)
		report.Periods = append(report.Periods, *b)
	}

	// Both key formats sort lexicographically in chronological order, so a
	// plain string comparison gives most-recent-first.
	sort.Slice(report.Periods, func(i, j int) bool {
		return report.Periods[i].PeriodKey > report.Periods[j].PeriodKey
	})

	return report
}
