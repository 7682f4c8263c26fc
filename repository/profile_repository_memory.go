package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
)

// ProfileRepositoryMemory is an in-memory ProfileRepository. Profiles come
// from a JSON file or from the built-in demo set; there is no persistence.
type ProfileRepositoryMemory struct {
	profiles map[string]domain.FinancialProfile
}

// NewProfileRepositoryMemory returns a repository seeded with demo profiles
// whose obligation dates are relative to the current day.
func NewProfileRepositoryMemory() *ProfileRepositoryMemory {
	repo := &ProfileRepositoryMemory{
		profiles: make(map[string]domain.FinancialProfile),
	}
	for _, p := range demoProfiles(time.Now()) {
		repo.profiles[p.ID] = p
	}
	return repo
}

// NewProfileRepositoryMemoryFromFile loads profiles from a JSON file holding
// an array of FinancialProfile objects.
func NewProfileRepositoryMemoryFromFile(path string) (*ProfileRepositoryMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile db: %w", err)
	}

	var profiles []domain.FinancialProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing profile db: %w", err)
	}

	repo := &ProfileRepositoryMemory{
		profiles: make(map[string]domain.FinancialProfile, len(profiles)),
	}
	for _, p := range profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("profile %q has no id", p.Name)
		}
		repo.profiles[p.ID] = p
	}
	return repo, nil
}

func (r *ProfileRepositoryMemory) GetProfile(id string) (domain.FinancialProfile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

func (r *ProfileRepositoryMemory) ListProfiles() []domain.FinancialProfile {
	list := make([]domain.FinancialProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func demoProfiles(now time.Time) []domain.FinancialProfile {
	day := func(offset int) time.Time {
		d := now.AddDate(0, 0, offset)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	usd := decimal.RequireFromString

	return []domain.FinancialProfile{
		{
			ID:             "user_001",
			Name:           "Sarah Chen",
			CurrentBalance: usd("3500.00"),
			PayPeriodDays:  14,
			Obligations: []domain.Obligation{
				{Description: "Rent", Amount: usd("-1200.00"), DueDate: day(5)},
				{Description: "Utilities", Amount: usd("-140.00"), DueDate: day(9)},
				{Description: "Paycheck", Amount: usd("2400.00"), DueDate: day(12)},
			},
		},
		{
			ID:             "user_002",
			Name:           "Marcus Webb",
			CurrentBalance: usd("1250.00"),
			PayPeriodDays:  14,
			Obligations: []domain.Obligation{
				{Description: "Car payment", Amount: usd("-310.00"), DueDate: day(4)},
				{Description: "Streaming subscriptions", Amount: usd("-42.00"), DueDate: day(6)},
				{Description: "Paycheck", Amount: usd("1600.00"), DueDate: day(10)},
			},
		},
		{
			// Tight budget: rent lands before the paycheck.
			ID:             "user_003",
			Name:           "Emily Rodriguez",
			CurrentBalance: usd("420.00"),
			PayPeriodDays:  14,
			Obligations: []domain.Obligation{
				{Description: "Rent", Amount: usd("-600.00"), DueDate: day(3)},
				{Description: "Phone bill", Amount: usd("-55.00"), DueDate: day(8)},
				{Description: "Paycheck", Amount: usd("980.00"), DueDate: day(7)},
			},
		},
	}
}
