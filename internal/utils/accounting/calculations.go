package accounting

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals summarizes the money flow of a set of transactions.
type Totals struct {
	Credit decimal.Decimal
	Debit  decimal.Decimal
	Count  int
}

// Net is credits minus debits.
func (t Totals) Net() decimal.Decimal {
	return t.Credit.Sub(t.Debit)
}

// CalculateSignedAmount returns the amount as it affects the user's balance:
// positive for Credit (money in), negative for Debit (money out).
func CalculateSignedAmount(txn domain.Transaction) decimal.Decimal {
	if txn.TransactionType == domain.Debit {
		return txn.Amount.Neg()
	}
	return txn.Amount
}

// Summarize adds up credits and debits separately.
func Summarize(txns []domain.Transaction) Totals {
	totals := Totals{Credit: decimal.Zero, Debit: decimal.Zero}
	for _, txn := range txns {
		switch txn.TransactionType {
		case domain.Credit:
			totals.Credit = totals.Credit.Add(txn.Amount)
		case domain.Debit:
			totals.Debit = totals.Debit.Add(txn.Amount)
		}
		totals.Count++
	}
	return totals
}
