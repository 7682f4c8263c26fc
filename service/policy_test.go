package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
)

func TestClassify_EssentialCategories(t *testing.T) {

	policy := DefaultCategoryPolicy()

	for _, category := range []string{"Groceries", "Baby & Kids", "Health & Beauty", "Medicine"} {
		if policy.Classify(category) != domain.Essential {
			t.Errorf("expected %s to be ESSENTIAL", category)
		}
	}

	if policy.Classify("Electronics") != domain.Discretionary {
		t.Error("expected Electronics to be DISCRETIONARY")
	}
}

func TestClassify_UnknownCategoryDefaultsToDiscretionary(t *testing.T) {

	policy := DefaultCategoryPolicy()

	if policy.Classify("Garden Gnomes") != domain.Discretionary {
		t.Error("unknown categories must default to DISCRETIONARY")
	}
}

func TestIsBNPLEligible_ThresholdIsInclusive(t *testing.T) {

	policy := DefaultCategoryPolicy()

	exactlyAtFloor := domain.CartItem{
		Name:     "Desk Lamp",
		Price:    decimal.RequireFromString("35.00"),
		Category: "Household",
	}
	if !policy.IsBNPLEligible(exactlyAtFloor) {
		t.Error("item priced exactly at the floor must be eligible")
	}

	justBelow := domain.CartItem{
		Name:     "Phone Case",
		Price:    decimal.RequireFromString("34.99"),
		Category: "Electronics",
	}
	if policy.IsBNPLEligible(justBelow) {
		t.Error("item below the floor must not be eligible")
	}

	essential := domain.CartItem{
		Name:     "Groceries Bundle",
		Price:    decimal.RequireFromString("250.00"),
		Category: "Groceries",
	}
	if policy.IsBNPLEligible(essential) {
		t.Error("essential items are never eligible")
	}

	aboveCeiling := domain.CartItem{
		Name:     "Home Theater",
		Price:    decimal.RequireFromString("2000.01"),
		Category: "Electronics",
	}
	if policy.IsBNPLEligible(aboveCeiling) {
		t.Error("item above the ceiling must not be eligible")
	}
}

func TestLoadCategoryPolicy_ValidFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "policy.json")
	content := `{
		"EssentialCategories": ["Groceries"],
		"DiscretionaryCategories": ["Electronics"],
		"BNPLMinPrice": "50.00"
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	policy, err := LoadCategoryPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := domain.CartItem{Name: "Speaker", Price: decimal.RequireFromString("50.00"), Category: "Electronics"}
	if !policy.IsBNPLEligible(item) {
		t.Error("expected eligibility at the configured floor")
	}
}

func TestLoadCategoryPolicy_RejectsEmptyCategoryMap(t *testing.T) {

	path := filepath.Join(t.TempDir(), "policy.json")
	if err := os.WriteFile(path, []byte(`{"BNPLMinPrice": "35.00"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCategoryPolicy(path); err == nil {
		t.Error("expected error for empty category map")
	}
}

func TestLoadCategoryPolicy_RejectsMissingMinPrice(t *testing.T) {

	path := filepath.Join(t.TempDir(), "policy.json")
	content := `{"EssentialCategories": ["Groceries"], "DiscretionaryCategories": ["Electronics"]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCategoryPolicy(path); err == nil {
		t.Error("expected error for missing bnpl_min_price")
	}
}
