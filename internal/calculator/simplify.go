// Package calculator implements the pure balance and debt-simplification
// engine. Every function here is a computation over snapshots passed in by
// the caller: nothing is mutated, nothing is looked up, no I/O happens.
package calculator

import (
	"math"

	"github.com/nkhare/divvy/internal/models"
)

// Epsilon is the tolerance for monetary equality. Amounts are IEEE doubles
// in major units, so every comparison against zero or between two amounts
// must absorb floating-point noise.
const Epsilon = 0.01

// memberBalance pairs a member with their running net balance.
type memberBalance struct {
	user    models.User
	balance float64
}

// SimplifyDebts reduces a group's many-to-many debts to a short list of
// transfers.
//
// Algorithm:
//   - Net balance per member: a settlement credits the payer and debits the
//     sole recipient by the full amount; a regular expense credits the payer
//     with amount minus their own share and debits every other participant
//     by their share.
//   - Members with balance below -Epsilon are debtors, above +Epsilon
//     creditors, both kept in input member order.
//   - Greedy matching: transfer min(|debtor|, creditor) between the first
//     remaining debtor and creditor, dropping a party once its balance is
//     within Epsilon of zero.
//
// The result is a deterministic approximation, not the globally minimal
// transaction count (that problem is NP-hard); it never emits more than
// debtors+creditors-1 transfers and every amount is > Epsilon.
func SimplifyDebts(members []models.User, expenses []models.Expense) []models.SimplifiedDebt {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}

	for _, e := range expenses {
		if e.IsSettlement {
			// A malformed settlement without a recipient contributes nothing.
			if len(e.Participants) == 0 {
				continue
			}
			balances[e.PaidBy.ID] += e.Amount
			balances[e.Participants[0].User.ID] -= e.Amount
			continue
		}
		for _, p := range e.Participants {
			if p.User.ID == e.PaidBy.ID {
				balances[p.User.ID] += e.Amount - p.Share
			} else {
				balances[p.User.ID] -= p.Share
			}
		}
	}

	var debtors, creditors []memberBalance
	for _, m := range members {
		switch b := balances[m.ID]; {
		case b < -Epsilon:
			debtors = append(debtors, memberBalance{user: m, balance: b})
		case b > Epsilon:
			creditors = append(creditors, memberBalance{user: m, balance: b})
		}
	}

	var debts []models.SimplifiedDebt
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor := &debtors[0]
		creditor := &creditors[0]

		transfer := math.Min(-debtor.balance, creditor.balance)
		debts = append(debts, models.SimplifiedDebt{
			Debtor:   debtor.user,
			Creditor: creditor.user,
			Amount:   transfer,
		})

		debtor.balance += transfer
		creditor.balance -= transfer

		if math.Abs(debtor.balance) < Epsilon {
			debtors = debtors[1:]
		}
		if math.Abs(creditor.balance) < Epsilon {
			creditors = creditors[1:]
		}
	}

	return debts
}
