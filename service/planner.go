package service

import (
	"time"

	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
)

// planInstallments sizes a financed item's plan: the smallest installment
// count whose payment fits inside a quarter of the per-pay-period surplus.
// When nothing fits the plan falls back to the longest count and is flagged
// tight instead of failing; the engine always returns a plan.
//
// Rounding keeps exact currency arithmetic: each installment is the price
// divided by the count, floored to cents, and the remainder rides on the
// first installment so the schedule sums to the price with no drift.
func planInstallments(
	item domain.CartItem,
	surplus decimal.Decimal,
	paycheckDate time.Time,
	payPeriodDays int,
) domain.InstallmentPlan {

	limit := surplus.Mul(surplusFraction)

	count := installmentOptions[len(installmentOptions)-1]
	tight := true
	for _, option := range installmentOptions {
		per := item.Price.Div(decimal.NewFromInt(int64(option)))
		if per.LessThanOrEqual(limit) {
			count = option
			tight = false
			break
		}
	}

	n := decimal.NewFromInt(int64(count))
	base := item.Price.Div(n).Truncate(2)
	remainder := item.Price.Sub(base.Mul(n))

	dueDates := make([]time.Time, count)
	for i := range dueDates {
		dueDates[i] = paycheckDate.AddDate(0, 0, i*payPeriodDays)
	}

	return domain.InstallmentPlan{
		NumInstallments:   count,
		InstallmentAmount: base,
		FirstInstallment:  base.Add(remainder),
		DueDates:          dueDates,
		Tight:             tight,
	}
}
