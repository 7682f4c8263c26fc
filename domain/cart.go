package domain

import "github.com/shopspring/decimal"

// Classification of a category under the payment policy.
type Classification int

const (
	Essential Classification = iota
	Discretionary
)

func (c Classification) String() string {
	if c == Essential {
		return "ESSENTIAL"
	}
	return "DISCRETIONARY"
}

type CartItem struct {
	Name     string
	Price    decimal.Decimal
	Category string
}

// Cart is an ordered sequence of items. Duplicate names are allowed and
// treated as independent items.
type Cart []CartItem

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Price)
	}
	return total
}
