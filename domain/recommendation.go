package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Strategy string

const (
	StrategyPayNow  Strategy = "PAY_NOW"
	StrategyFinance Strategy = "FINANCE"
)

// InstallmentPlan splits an item's price into equal installments due one pay
// period apart. The first installment carries any rounding remainder so the
// installments always sum to the exact price.
type InstallmentPlan struct {
	NumInstallments   int
	InstallmentAmount decimal.Decimal
	FirstInstallment  decimal.Decimal
	DueDates          []time.Time
	Tight             bool `json:",omitempty"` // no candidate count fit the surplus limit
}

// Amounts returns the full payment schedule, first installment included.
func (p InstallmentPlan) Amounts() []decimal.Decimal {
	amounts := make([]decimal.Decimal, p.NumInstallments)
	for i := range amounts {
		amounts[i] = p.InstallmentAmount
	}
	if p.NumInstallments > 0 {
		amounts[0] = p.FirstInstallment
	}
	return amounts
}

type PaymentDecision struct {
	Item     CartItem
	Strategy Strategy
	Reason   string
	Plan     *InstallmentPlan `json:",omitempty"`
}

// TrajectoryEntry is one applied cash event in a projected balance timeline.
type TrajectoryEntry struct {
	Date        time.Time
	Description string
	Delta       decimal.Decimal
	Balance     decimal.Decimal
}

type Recommendation struct {
	ID            string
	Decisions     []PaymentDecision
	TotalPayNow   decimal.Decimal
	TotalFinanced decimal.Decimal
	Trajectory    []TrajectoryEntry
	Feasible      bool
	Summary       string
	Warnings      []string `json:",omitempty"`
}

// AvailableFunds is a snapshot of spendable cash over a look-ahead window.
type AvailableFunds struct {
	CurrentBalance       decimal.Decimal
	UpcomingBills        []Obligation
	TotalBills           decimal.Decimal
	PaycheckExpected     decimal.Decimal
	PaycheckDate         *time.Time `json:",omitempty"`
	ProjectedBalance     decimal.Decimal
	AvailableForSpending decimal.Decimal
	SafeInstallment      decimal.Decimal
}
