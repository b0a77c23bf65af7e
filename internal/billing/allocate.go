package billing

import (
	"fmt"
	"sort"

	"github.com/rentledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

var oneCent = decimal.New(1, -2)

// Allocate splits a budget over the spending categories by their weights
// and returns one line per category.
//
// Weights are treated as proportions of their own sum, so they do not need
// to add up to 100. Every raw share is rounded down to the cent and the
// leftover cents are handed out one at a time to the categories with the
// largest truncated fraction (largest-remainder method, stable on ties).
// The returned amounts always sum to exactly the budget; each line carries
// the percentage that was actually realized, or 0 for a zero budget.
func Allocate(budget decimal.Decimal, categories []models.SpendingCategory) (models.AllocationLines, error) {
	lines := make(models.AllocationLines, 0, len(categories))
	if len(categories) == 0 {
		return lines, nil
	}

	budget = budget.Round(2)

	totalWeight := decimal.Zero
	for _, category := range categories {
		if category.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: %s has a negative weight", ErrWeightsInvalid, category.Name)
		}

		totalWeight = totalWeight.Add(category.Weight)
	}

	if totalWeight.IsZero() {
		if budget.IsPositive() {
			return nil, fmt.Errorf("%w: all weights are zero", ErrWeightsInvalid)
		}

		for _, category := range categories {
			lines = append(lines, models.AllocationLine{
				CategoryID: category.ID,
				Category:   category.Name,
				Amount:     decimal.Zero,
				Percent:    decimal.Zero,
			})
		}

		return lines, nil
	}

	// Floor every share to the cent and remember the cut-off fraction
	fractions := make([]decimal.Decimal, len(categories))
	allocated := decimal.Zero
	for i, category := range categories {
		raw := budget.Mul(category.Weight).Div(totalWeight)
		floored := raw.RoundDown(2)

		fractions[i] = raw.Sub(floored)
		allocated = allocated.Add(floored)

		lines = append(lines, models.AllocationLine{
			CategoryID: category.ID,
			Category:   category.Name,
			Amount:     floored,
		})
	}

	// Hand out the cents lost to flooring, largest fraction first
	order := make([]int, len(categories))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fractions[order[a]].GreaterThan(fractions[order[b]])
	})

	remainder := budget.Sub(allocated)
	for i := 0; remainder.IsPositive(); i++ {
		idx := order[i%len(order)]
		lines[idx].Amount = lines[idx].Amount.Add(oneCent)
		remainder = remainder.Sub(oneCent)
	}

	// Realized percentages come from the amounts, not the configured weights
	sum := decimal.Zero
	for i := range lines {
		sum = sum.Add(lines[i].Amount)

		if budget.IsZero() {
			lines[i].Percent = decimal.Zero
			continue
		}

		lines[i].Percent = lines[i].Amount.Div(budget).Mul(decimal.NewFromInt(100)).Round(2)
	}

	// Unreachable unless the weight data is corrupt. If it ever fires it
	// must fail the whole call, a partially reconciled breakdown must not
	// be persisted.
	if !sum.Equal(budget) {
		return nil, fmt.Errorf("%w: allocated %s for a budget of %s", ErrReconciliation, sum, budget)
	}

	return lines, nil
}
