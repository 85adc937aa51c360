// Package reconcile holds the pure money arithmetic for liquidations.
// Everything here is deterministic decimal math at the currency's minor unit
// (PHP, 2 decimal places); no I/O and no domain knowledge.
package reconcile

import "github.com/shopspring/decimal"

// MinorUnitPlaces is the number of decimal places of the ledger currency.
const MinorUnitPlaces = 2

// Reconciliation is the computed money relationship between a cash advance
// and the summed expense items of its liquidation.
type Reconciliation struct {
	Total           decimal.Decimal
	ReturnToCompany decimal.Decimal
	Reimbursement   decimal.Decimal
}

// Sum adds item totals at minor-unit precision.
func Sum(itemTotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, t := range itemTotals {
		total = total.Add(t)
	}
	return total.Round(MinorUnitPlaces)
}

// Totals computes the expense total and the signed split against the advance.
// Exactly one of ReturnToCompany / Reimbursement is nonzero unless the
// amounts match exactly, in which case both are zero.
func Totals(cashAdvanceAmount decimal.Decimal, itemTotals []decimal.Decimal) Reconciliation {
	total := Sum(itemTotals)
	diff := cashAdvanceAmount.Round(MinorUnitPlaces).Sub(total)

	rec := Reconciliation{
		Total:           total,
		ReturnToCompany: decimal.Zero.Round(MinorUnitPlaces),
		Reimbursement:   decimal.Zero.Round(MinorUnitPlaces),
	}
	switch {
	case diff.IsPositive():
		rec.ReturnToCompany = diff
	case diff.IsNegative():
		rec.Reimbursement = diff.Neg()
	}
	return rec
}
