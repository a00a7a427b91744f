package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/zonebms/zone_backend/internal/core/domain"
)

// SignedDelta applies the correct sign to a posting amount for one leg.
// This keeps the balance-movement convention in one place:
// a leg on the account's normal side grows the balance, the opposite side
// shrinks it.
//
// DEBIT leg to a DEBIT-normal account (Cash, AR, Expense) -> Positive (+)
// CREDIT leg to a DEBIT-normal account -> Negative (-)
// CREDIT leg to a CREDIT-normal account (AP, Revenue) -> Positive (+)
// DEBIT leg to a CREDIT-normal account -> Negative (-)
func SignedDelta(side, normalBalance domain.BalanceSide, amount decimal.Decimal) decimal.Decimal {
	if side != normalBalance {
		return amount.Neg()
	}
	return amount
}
