package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
)

// LiquidationItem is a single expense line of a liquidation: one travel leg
// with its per-category amounts. Items are owned by exactly one liquidation
// and are replaced as a whole set on every edit.
type LiquidationItem struct {
	ItemID          string          `json:"itemID"` // Primary Key (UUID)
	LiquidationID   string          `json:"liquidationID"`
	ExpenseDate     time.Time       `json:"expenseDate"`
	FromDestination string          `json:"fromDestination"`
	ToDestination   string          `json:"toDestination"`
	Jeep            decimal.Decimal `json:"jeep"`
	Bus             decimal.Decimal `json:"bus"`
	FxVan           decimal.Decimal `json:"fxVan"`
	Gas             decimal.Decimal `json:"gas"`
	Toll            decimal.Decimal `json:"toll"`
	Meals           decimal.Decimal `json:"meals"`
	Lodging         decimal.Decimal `json:"lodging"`
	Others          decimal.Decimal `json:"others"`
	Remarks         string          `json:"remarks"`
	AuditFields
}

// categoryAmounts returns the eight expense categories in a fixed order.
func (i *LiquidationItem) categoryAmounts() []decimal.Decimal {
	return []decimal.Decimal{i.Jeep, i.Bus, i.FxVan, i.Gas, i.Toll, i.Meals, i.Lodging, i.Others}
}

var categoryNames = []string{"jeep", "bus", "fx_van", "gas", "toll", "meals", "lodging", "others"}

// Total is the sum of the eight category amounts. It is always derived,
// never stored independently of the fields.
func (i *LiquidationItem) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range i.categoryAmounts() {
		total = total.Add(amt)
	}
	return total
}

// HasExpense reports whether any category carries a positive amount.
func (i *LiquidationItem) HasExpense() bool {
	return i.Total().IsPositive()
}

// Validate rejects negative category amounts. Negative values are a
// validation error, not silently clamped.
func (i *LiquidationItem) Validate() error {
	for idx, amt := range i.categoryAmounts() {
		if amt.IsNegative() {
			return fmt.Errorf("%w: %s amount must not be negative", apperrors.ErrValidation, categoryNames[idx])
		}
	}
	return nil
}
