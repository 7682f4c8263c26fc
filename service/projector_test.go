package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

func TestProject_AppliesObligationsInDateOrder(t *testing.T) {

	obligations := []domain.Obligation{
		{Description: "Paycheck", Amount: decimal.RequireFromString("980.00"), DueDate: day(t, "2026-03-09")},
		{Description: "Rent", Amount: decimal.RequireFromString("-600.00"), DueDate: day(t, "2026-03-05")},
	}

	trajectory := Project(decimal.RequireFromString("420.00"), obligations, day(t, "2026-03-20"))

	if len(trajectory) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(trajectory))
	}
	if trajectory[0].Description != "Rent" {
		t.Errorf("expected Rent first, got %s", trajectory[0].Description)
	}
	if got := trajectory[0].Balance.StringFixed(2); got != "-180.00" {
		t.Errorf("expected balance -180.00 after rent, got %s", got)
	}
	if got := trajectory[1].Balance.StringFixed(2); got != "800.00" {
		t.Errorf("expected balance 800.00 after paycheck, got %s", got)
	}
}

func TestProject_SameDateKeepsInputOrder(t *testing.T) {

	obligations := []domain.Obligation{
		{Description: "First", Amount: decimal.RequireFromString("-10.00"), DueDate: day(t, "2026-03-05")},
		{Description: "Second", Amount: decimal.RequireFromString("-20.00"), DueDate: day(t, "2026-03-05")},
	}

	trajectory := Project(decimal.RequireFromString("100.00"), obligations, day(t, "2026-03-05"))

	if trajectory[0].Description != "First" || trajectory[1].Description != "Second" {
		t.Errorf("stable order violated: %s then %s",
			trajectory[0].Description, trajectory[1].Description)
	}
}

func TestProject_ExcludesObligationsBeyondHorizon(t *testing.T) {

	obligations := []domain.Obligation{
		{Description: "Rent", Amount: decimal.RequireFromString("-600.00"), DueDate: day(t, "2026-03-05")},
		{Description: "Car payment", Amount: decimal.RequireFromString("-310.00"), DueDate: day(t, "2026-04-01")},
	}

	trajectory := Project(decimal.RequireFromString("1000.00"), obligations, day(t, "2026-03-10"))

	if len(trajectory) != 1 {
		t.Fatalf("expected 1 entry inside horizon, got %d", len(trajectory))
	}
}

func TestMinBalance_ReturnsLowestPointAndDate(t *testing.T) {

	obligations := []domain.Obligation{
		{Description: "Rent", Amount: decimal.RequireFromString("-600.00"), DueDate: day(t, "2026-03-05")},
		{Description: "Paycheck", Amount: decimal.RequireFromString("980.00"), DueDate: day(t, "2026-03-09")},
		{Description: "Phone bill", Amount: decimal.RequireFromString("-55.00"), DueDate: day(t, "2026-03-12")},
	}

	trajectory := Project(decimal.RequireFromString("420.00"), obligations, day(t, "2026-03-20"))

	lowest, ok := MinBalance(trajectory)
	if !ok {
		t.Fatal("expected a minimum for a non-empty trajectory")
	}
	if got := lowest.Balance.StringFixed(2); got != "-180.00" {
		t.Errorf("expected min -180.00, got %s", got)
	}
	if !lowest.Date.Equal(day(t, "2026-03-05")) {
		t.Errorf("expected min on 2026-03-05, got %s", lowest.Date)
	}
}

func TestMinBalance_EmptyTrajectory(t *testing.T) {
	if _, ok := MinBalance(nil); ok {
		t.Error("expected ok=false for empty trajectory")
	}
}
