package wallet

import (
	"fmt"

	"github.com/playnetic/wallet-service/internal/repos/transactions"
	"github.com/shopspring/decimal"
)

// Kind tags the two wallet operations. Each kind carries the pure
// balance function applied once, under the player lock, by Process.
type Kind string

const (
	KindDebit  Kind = "DEBIT"
	KindCredit Kind = "CREDIT"
)

// apply computes the new balance. A debit larger than the current
// balance fails before anything is written; a credit has no upper bound.
func (k Kind) apply(current, amount decimal.Decimal) (decimal.Decimal, error) {
	switch k {
	case KindDebit:
		if current.LessThan(amount) {
			return decimal.Decimal{}, ErrInsufficientFunds
		}

		return current.Sub(amount), nil
	case KindCredit:
		return current.Add(amount), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unknown operation kind: %q", k)
	}
}

func (k Kind) transactionType() transactions.Type {
	if k == KindDebit {
		return transactions.TypeDebit
	}

	return transactions.TypeCredit
}
