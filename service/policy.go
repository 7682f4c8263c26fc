package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
)

// CategoryPolicy is the process-wide classification of item categories plus
// the price band inside which a discretionary item may be financed. Loaded
// once at startup and never mutated, so concurrent reads need no locking.
type CategoryPolicy struct {
	classifications map[string]domain.Classification
	bnplMinPrice    decimal.Decimal
	bnplMaxPrice    decimal.Decimal
}

// Categorías esenciales por defecto (se pagan siempre de inmediato).
var defaultEssentialCategories = []string{
	"Groceries", "Baby & Kids", "Health & Beauty", "Medicine",
}

var defaultDiscretionaryCategories = []string{
	"Electronics", "Household", "Clothing", "Sports", "General",
}

// DefaultCategoryPolicy returns the compiled-in policy: a $35 financing floor
// and a $2000 ceiling.
func DefaultCategoryPolicy() *CategoryPolicy {
	classifications := make(map[string]domain.Classification)
	for _, c := range defaultEssentialCategories {
		classifications[c] = domain.Essential
	}
	for _, c := range defaultDiscretionaryCategories {
		classifications[c] = domain.Discretionary
	}
	return &CategoryPolicy{
		classifications: classifications,
		bnplMinPrice:    decimal.RequireFromString("35.00"),
		bnplMaxPrice:    decimal.RequireFromString("2000.00"),
	}
}

type policyFile struct {
	EssentialCategories     []string
	DiscretionaryCategories []string
	BNPLMinPrice            decimal.Decimal
	BNPLMaxPrice            decimal.Decimal
}

// LoadCategoryPolicy reads a policy from a JSON file. Any problem here is a
// configuration error: fatal at process start, not recoverable per call.
func LoadCategoryPolicy(path string) (*CategoryPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	var file policyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}

	classifications := make(map[string]domain.Classification)
	for _, c := range file.EssentialCategories {
		classifications[c] = domain.Essential
	}
	for _, c := range file.DiscretionaryCategories {
		classifications[c] = domain.Discretionary
	}

	maxPrice := file.BNPLMaxPrice
	if maxPrice.IsZero() {
		maxPrice = decimal.RequireFromString("2000.00")
	}

	policy := &CategoryPolicy{
		classifications: classifications,
		bnplMinPrice:    file.BNPLMinPrice,
		bnplMaxPrice:    maxPrice,
	}
	if err := policy.validate(); err != nil {
		return nil, err
	}
	return policy, nil
}

func (p *CategoryPolicy) validate() error {
	if len(p.classifications) == 0 {
		return errors.New("mapa de categorías vacío")
	}
	if !p.bnplMinPrice.IsPositive() {
		return errors.New("bnpl_min_price inválido")
	}
	if p.bnplMaxPrice.LessThan(p.bnplMinPrice) {
		return errors.New("bnpl_max_price menor que bnpl_min_price")
	}
	return nil
}

// Classify maps a category to essential or discretionary. Unknown categories
// default to discretionary; this is a warning, never an error.
func (p *CategoryPolicy) Classify(category string) domain.Classification {
	class, ok := p.classifications[category]
	if !ok {
		log.Printf("Warning: unknown category %q, defaulting to DISCRETIONARY", category)
		return domain.Discretionary
	}
	return class
}

// IsBNPLEligible reports whether an item may be financed: discretionary and
// priced inside the policy band. Both bounds are inclusive.
func (p *CategoryPolicy) IsBNPLEligible(item domain.CartItem) bool {
	if p.Classify(item.Category) != domain.Discretionary {
		return false
	}
	return item.Price.GreaterThanOrEqual(p.bnplMinPrice) &&
		item.Price.LessThanOrEqual(p.bnplMaxPrice)
}

// BNPLMaxPrice exposes the ceiling for warning messages.
func (p *CategoryPolicy) BNPLMaxPrice() decimal.Decimal {
	return p.bnplMaxPrice
}
