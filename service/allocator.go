package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
)

type allocation struct {
	payNow   []domain.CartItem        // everything paid immediately, essentials first
	reasons  []string                 // parallel to payNow
	finance  []domain.CartItem        // BNPL candidates, descending by price
	warnings []string
}

// allocate partitions the cart into a pay-now set and finance candidates.
// Essentials are always paid now. Discretionary items are tried largest
// first: deferring a big-ticket item frees the most cash per item, so the
// greedy pass defers exactly the items that would push the projected balance
// below zero. The greedy split is a heuristic, not a proven optimum.
func (s *OptimizerService) allocate(
	cart domain.Cart,
	profile domain.FinancialProfile,
	today time.Time,
	paycheckDate time.Time,
) allocation {

	var alloc allocation
	var discretionary []domain.CartItem
	for _, item := range cart {
		if s.policy.Classify(item.Category) == domain.Essential {
			alloc.payNow = append(alloc.payNow, item)
			alloc.reasons = append(alloc.reasons, fmt.Sprintf(
				"%s items are essential and are always paid immediately.", item.Category))
		} else {
			discretionary = append(discretionary, item)
		}
	}

	// Mayor precio primero; empates conservan el orden del carrito.
	sort.SliceStable(discretionary, func(i, j int) bool {
		return discretionary[i].Price.GreaterThan(discretionary[j].Price)
	})

	for _, item := range discretionary {
		tentative := append(alloc.payNow[:len(alloc.payNow):len(alloc.payNow)], item)
		if s.fitsThroughPaycheck(tentative, profile, today, paycheckDate) {
			alloc.payNow = tentative
			alloc.reasons = append(alloc.reasons,
				"Projected funds cover this comfortably; paying now avoids future obligations.")
			continue
		}

		if s.policy.IsBNPLEligible(item) {
			alloc.finance = append(alloc.finance, item)
			continue
		}

		// Below the financing floor (or above the ceiling): the item cannot
		// be deferred, so it stays in pay-now and the shortfall becomes a
		// feasibility warning instead of blocking the run.
		alloc.payNow = tentative
		if item.Price.GreaterThan(s.policy.BNPLMaxPrice()) {
			reason := fmt.Sprintf(
				"Exceeds the $%s financing ceiling and must be paid now.",
				s.policy.BNPLMaxPrice().StringFixed(2))
			alloc.reasons = append(alloc.reasons, reason)
			alloc.warnings = append(alloc.warnings, fmt.Sprintf(
				"%s ($%s) exceeds the financing ceiling; paying it now leaves a projected shortfall",
				item.Name, item.Price.StringFixed(2)))
		} else {
			alloc.reasons = append(alloc.reasons,
				"Below the financing floor and must be paid now.")
			alloc.warnings = append(alloc.warnings, fmt.Sprintf(
				"%s ($%s) is too cheap to finance; paying it now leaves a projected shortfall",
				item.Name, item.Price.StringFixed(2)))
		}
	}
	return alloc
}

// fitsThroughPaycheck projects the balance after paying the given items
// against all obligations through the next paycheck and reports whether it
// stays non-negative at every point.
func (s *OptimizerService) fitsThroughPaycheck(
	items []domain.CartItem,
	profile domain.FinancialProfile,
	today time.Time,
	paycheckDate time.Time,
) bool {
	trajectory := s.payNowTrajectory(items, profile, today, paycheckDate)
	lowest, ok := MinBalance(trajectory)
	if !ok {
		return !profile.CurrentBalance.IsNegative()
	}
	return !lowest.Balance.IsNegative()
}

// payNowTrajectory applies the purchase as an immediate debit alongside the
// profile's obligations, through the next paycheck.
func (s *OptimizerService) payNowTrajectory(
	items []domain.CartItem,
	profile domain.FinancialProfile,
	today time.Time,
	paycheckDate time.Time,
) []domain.TrajectoryEntry {
	spent := decimal.Zero
	for _, item := range items {
		spent = spent.Add(item.Price)
	}

	obligations := make([]domain.Obligation, 0, len(profile.Obligations)+1)
	obligations = append(obligations, domain.Obligation{
		Description: "Cart purchase (pay now)",
		Amount:      spent.Neg(),
		DueDate:     today,
	})
	obligations = append(obligations, profile.Obligations...)

	return Project(profile.CurrentBalance, obligations, paycheckDate)
}
