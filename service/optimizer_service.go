package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
	"cart-optimizer/repository"
)

const cacheTTL = 15 * time.Minute

// OptimizerService is the finance brain: one Optimize call partitions a cart
// into pay-now and financed items, sizes installment plans and verifies the
// projected balance stays non-negative through every known obligation. It is
// a pure computation over its inputs; the cache and history repository are
// conveniences, never required for correctness.
type OptimizerService struct {
	policy *CategoryPolicy
	repo   repository.RecommendationRepository
	cache  repository.CacheRepository
	ai     *AIService

	now func() time.Time
}

func NewOptimizerService(
	policy *CategoryPolicy,
	repo repository.RecommendationRepository,
	cache repository.CacheRepository,
) *OptimizerService {
	return &OptimizerService{
		policy: policy,
		repo:   repo,
		cache:  cache,
		ai:     NewAIService(),
		now:    time.Now,
	}
}

// Optimize computes a payment recommendation for one cart against one
// financial profile. An infeasible budget is not an error: the result comes
// back with Feasible=false and the binding constraint named in the summary.
func (s *OptimizerService) Optimize(
	cart domain.Cart,
	profile domain.FinancialProfile,
) (domain.Recommendation, error) {

	if err := validateCart(cart); err != nil {
		return domain.Recommendation{}, err
	}

	today := dateOnly(s.now())

	// Las obligaciones vencidas no entran en la proyección.
	upcoming := make([]domain.Obligation, 0, len(profile.Obligations))
	for _, ob := range profile.Obligations {
		if !ob.DueDate.Before(today) {
			upcoming = append(upcoming, ob)
		}
	}
	profile.Obligations = upcoming

	if err := validateProfile(profile); err != nil {
		return domain.Recommendation{}, err
	}
	paycheck, ok := profile.NextPaycheck(today)
	if !ok {
		return domain.Recommendation{}, NewValidationError(
			"perfil sin obligaciones hasta el próximo pago de nómina")
	}

	digest := requestDigest(cart, profile, today)
	if cached, ok := s.cache.Get(digest); ok {
		var rec domain.Recommendation
		if err := json.Unmarshal([]byte(cached), &rec); err != nil {
			log.Printf("Warning: failed to decode cached recommendation: %v", err)
		} else {
			return rec, nil
		}
	}

	alloc := s.allocate(cart, profile, today, paycheck.DueDate)

	// Surplus headroom after the final pay-now set, one pay period. A
	// negative headroom means no installment truly fits; the planner then
	// emits tight maximum-length plans.
	surplus := decimal.Zero
	if lowest, ok := MinBalance(s.payNowTrajectory(alloc.payNow, profile, today, paycheck.DueDate)); ok && lowest.Balance.IsPositive() {
		surplus = lowest.Balance
	}

	decisions := make([]domain.PaymentDecision, 0, len(cart))
	totalPayNow := decimal.Zero
	for i, item := range alloc.payNow {
		totalPayNow = totalPayNow.Add(item.Price)
		decisions = append(decisions, domain.PaymentDecision{
			Item:     item,
			Strategy: domain.StrategyPayNow,
			Reason:   alloc.reasons[i],
		})
	}

	warnings := alloc.warnings
	totalFinanced := decimal.Zero
	for _, item := range alloc.finance {
		plan := planInstallments(item, surplus, paycheck.DueDate, profile.PayPeriodDays)
		totalFinanced = totalFinanced.Add(item.Price)
		if plan.Tight {
			warnings = append(warnings, fmt.Sprintf(
				"Installment plan for %s is tight: $%s per payment against limited surplus",
				item.Name, plan.InstallmentAmount.StringFixed(2)))
		}
		decisions = append(decisions, domain.PaymentDecision{
			Item:     item,
			Strategy: domain.StrategyFinance,
			Reason: fmt.Sprintf(
				"Paying $%s now would push the projected balance below zero; "+
					"%d installments of $%s keep cash free for upcoming bills.",
				item.Price.StringFixed(2), plan.NumInstallments,
				plan.InstallmentAmount.StringFixed(2)),
			Plan: &plan,
		})
	}

	trajectory := composeTrajectory(profile, totalPayNow, decisions, today, paycheck.DueDate)

	feasible := true
	var binding domain.TrajectoryEntry
	if lowest, ok := MinBalance(trajectory); ok {
		if lowest.Balance.IsNegative() {
			feasible = false
			binding = lowest
		} else if lowest.Balance.LessThan(lowBalanceThreshold) {
			warnings = append(warnings, fmt.Sprintf(
				"Caution: the projected balance dips to $%s on %s",
				lowest.Balance.StringFixed(2), lowest.Date.Format("Jan 2")))
		}
	} else {
		feasible = !profile.CurrentBalance.IsNegative()
	}

	rec := domain.Recommendation{
		ID:            uuid.NewSHA1(uuid.NameSpaceOID, []byte(digest)).String(),
		Decisions:     decisions,
		TotalPayNow:   totalPayNow,
		TotalFinanced: totalFinanced,
		Trajectory:    trajectory,
		Feasible:      feasible,
		Warnings:      warnings,
	}
	rec.Summary = buildSummary(cart, rec, binding, today)
	rec.Summary = s.ai.GenerateCartSummary(profile, rec, rec.Summary)

	if encoded, err := json.Marshal(rec); err == nil {
		if err := s.cache.Set(digest, string(encoded), cacheTTL); err != nil {
			log.Printf("Warning: failed to cache recommendation: %v", err)
		}
	}
	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(profile.ID, rec); err != nil {
		log.Printf("Warning: failed to save recommendation: %v", err)
	}

	return rec, nil
}

// composeTrajectory re-projects the full horizon: the pay-now debit today,
// every profile obligation and every installment debit, through the later of
// the next paycheck and the last installment due date.
func composeTrajectory(
	profile domain.FinancialProfile,
	totalPayNow decimal.Decimal,
	decisions []domain.PaymentDecision,
	today time.Time,
	paycheckDate time.Time,
) []domain.TrajectoryEntry {

	obligations := make([]domain.Obligation, 0, len(profile.Obligations)+1)
	if totalPayNow.IsPositive() {
		obligations = append(obligations, domain.Obligation{
			Description: "Cart purchase (pay now)",
			Amount:      totalPayNow.Neg(),
			DueDate:     today,
		})
	}
	obligations = append(obligations, profile.Obligations...)

	horizonEnd := paycheckDate
	for _, d := range decisions {
		if d.Plan == nil {
			continue
		}
		amounts := d.Plan.Amounts()
		for i, due := range d.Plan.DueDates {
			obligations = append(obligations, domain.Obligation{
				Description: fmt.Sprintf("Installment %d/%d — %s",
					i+1, d.Plan.NumInstallments, d.Item.Name),
				Amount:  amounts[i].Neg(),
				DueDate: due,
			})
			if due.After(horizonEnd) {
				horizonEnd = due
			}
		}
	}

	return Project(profile.CurrentBalance, obligations, horizonEnd)
}

func buildSummary(
	cart domain.Cart,
	rec domain.Recommendation,
	binding domain.TrajectoryEntry,
	today time.Time,
) string {
	if len(cart) == 0 {
		return "Cart is empty; nothing to pay today."
	}

	var b strings.Builder
	financed := 0
	for _, d := range rec.Decisions {
		if d.Strategy == domain.StrategyFinance {
			financed++
		}
	}

	if financed == 0 {
		fmt.Fprintf(&b, "You can pay $%s for all %d items today.",
			rec.TotalPayNow.StringFixed(2), len(cart))
	} else {
		fmt.Fprintf(&b, "Pay $%s today for %d items and finance $%s across %d items.",
			rec.TotalPayNow.StringFixed(2), len(cart)-financed,
			rec.TotalFinanced.StringFixed(2), financed)
		for _, d := range rec.Decisions {
			if d.Strategy != domain.StrategyFinance || d.Plan == nil {
				continue
			}
			fmt.Fprintf(&b, " %s: %d payments of $%s starting %s.",
				d.Item.Name, d.Plan.NumInstallments,
				d.Plan.InstallmentAmount.StringFixed(2),
				d.Plan.DueDates[0].Format("Jan 2"))
		}
	}

	if !rec.Feasible {
		days := int(binding.Date.Sub(today).Hours() / 24)
		fmt.Fprintf(&b, " Warning: projected balance falls to -$%s on %s when %s is due (in %d days).",
			binding.Balance.Abs().StringFixed(2), binding.Date.Format("Jan 2"),
			binding.Description, days)
	}
	return b.String()
}

// AvailableFunds summarizes spendable cash over a look-ahead window: bills
// and the expected paycheck inside the window, the projected balance after
// both, and a safe installment size after a 10% cash buffer.
func (s *OptimizerService) AvailableFunds(
	profile domain.FinancialProfile,
	daysAhead int,
) (domain.AvailableFunds, error) {

	if daysAhead <= 0 {
		daysAhead = DefaultLookahead
	}
	if daysAhead > MaxLookaheadDays {
		return domain.AvailableFunds{}, NewValidationError("ventana de análisis inválida")
	}

	today := dateOnly(s.now())
	cutoff := today.AddDate(0, 0, daysAhead)

	funds := domain.AvailableFunds{
		CurrentBalance: profile.CurrentBalance,
		TotalBills:     decimal.Zero,
	}
	paycheckExpected := decimal.Zero

	for _, ob := range profile.Obligations {
		if ob.DueDate.Before(today) || ob.DueDate.After(cutoff) {
			continue
		}
		if ob.Amount.IsNegative() {
			funds.UpcomingBills = append(funds.UpcomingBills, ob)
			funds.TotalBills = funds.TotalBills.Add(ob.Amount.Abs())
		} else if ob.Amount.IsPositive() && funds.PaycheckDate == nil {
			due := ob.DueDate
			funds.PaycheckDate = &due
			paycheckExpected = ob.Amount
		}
	}

	funds.PaycheckExpected = paycheckExpected
	funds.ProjectedBalance = profile.CurrentBalance.Sub(funds.TotalBills).Add(paycheckExpected)

	buffer := profile.CurrentBalance.Mul(spendingBuffer)
	available := profile.CurrentBalance.Sub(funds.TotalBills).Sub(buffer)
	if available.IsNegative() {
		available = decimal.Zero
	}
	funds.AvailableForSpending = available.Round(2)
	funds.SafeInstallment = available.Mul(safeInstallmentShare).Round(2)

	return funds, nil
}

func validateCart(cart domain.Cart) error {
	if len(cart) > MaxCartItems {
		return NewValidationError(fmt.Sprintf("el carrito excede el máximo de %d items", MaxCartItems))
	}
	for _, item := range cart {
		if item.Name == "" {
			return NewValidationError("item sin nombre")
		}
		if item.Price.IsNegative() {
			return NewValidationError(fmt.Sprintf("precio inválido para %s", item.Name))
		}
	}
	return nil
}

func validateProfile(profile domain.FinancialProfile) error {
	if profile.PayPeriodDays <= 0 || profile.PayPeriodDays > MaxPayPeriodDays {
		return NewValidationError("período de pago inválido")
	}
	if len(profile.Obligations) > MaxObligations {
		return NewValidationError(fmt.Sprintf("las obligaciones exceden el máximo de %d", MaxObligations))
	}
	return nil
}

// requestDigest keys the cache: identical cart, profile and day always map
// to the same recommendation.
func requestDigest(cart domain.Cart, profile domain.FinancialProfile, today time.Time) string {
	payload, _ := json.Marshal(struct {
		Cart    domain.Cart
		Profile domain.FinancialProfile
		Day     string
	}{cart, profile, today.Format("2006-01-02")})
	sum := sha256.Sum256(payload)
	return "rec:" + hex.EncodeToString(sum[:])
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
