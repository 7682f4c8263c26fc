package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is a scheduled cash event: negative amounts are bills and other
// debits, positive amounts are paycheck credits.
type Obligation struct {
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
}

type FinancialProfile struct {
	ID             string
	Name           string
	CurrentBalance decimal.Decimal
	Obligations    []Obligation
	PayPeriodDays  int
}

// NextPaycheck returns the earliest credit obligation due on or after the
// given day.
func (p FinancialProfile) NextPaycheck(today time.Time) (Obligation, bool) {
	var next Obligation
	found := false
	for _, ob := range p.Obligations {
		if !ob.Amount.IsPositive() || ob.DueDate.Before(today) {
			continue
		}
		if !found || ob.DueDate.Before(next.DueDate) {
			next = ob
			found = true
		}
	}
	return next, found
}
