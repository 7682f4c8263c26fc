package service

import "github.com/shopspring/decimal"

const (
	MaxCartItems     = 100 // máximo de items por carrito
	MaxObligations   = 200
	MaxPayPeriodDays = 92 // pago trimestral como máximo
	DefaultLookahead = 30 // días, para el análisis de fondos disponibles
	MaxLookaheadDays = 365
)

// Installment counts considered by the planner, smallest first.
var installmentOptions = []int{2, 3, 4, 6}

var (
	// Fraction of the per-pay-period surplus a single installment may use.
	surplusFraction = decimal.RequireFromString("0.25")

	// Fraction of the current balance held back as a safety buffer in the
	// available-funds analysis.
	spendingBuffer = decimal.RequireFromString("0.10")

	// Fraction of spendable funds considered a safe installment size.
	safeInstallmentShare = decimal.RequireFromString("0.25")

	lowBalanceThreshold = decimal.RequireFromString("100.00")
)
