package calculator

import "github.com/nkhare/divvy/internal/models"

// NetBalance computes the signed net balance between two users across every
// group they share plus their direct (non-group) transactions.
//
// Positive means other owes current; negative means current owes other.
//
// The group contribution runs the debt simplifier over each mutual group's
// full member list and then reads off the entry between exactly these two
// users, so debt mediated through other members is already netted out. The
// direct contribution scans non-group expenses involving only these two
// users.
func NetBalance(current, other models.User, groups []models.Group, expenses []models.Expense) float64 {
	var balance float64

	for _, g := range groups {
		if !g.HasMember(current.ID) || !g.HasMember(other.ID) {
			continue
		}
		balance += GroupBalance(current, other, g, expenses)
	}

	return balance + IndividualBalance(current, other, expenses)
}

// GroupBalance computes the signed balance between two users within a single
// group by simplifying the group's debts and reading off the entry between
// them. Positive means other owes current. Returns 0 when either user is not
// a member or no transfer between them survives simplification.
func GroupBalance(current, other models.User, group models.Group, expenses []models.Expense) float64 {
	var groupExpenses []models.Expense
	for _, e := range expenses {
		if e.GroupID == group.ID {
			groupExpenses = append(groupExpenses, e)
		}
	}

	var balance float64
	for _, d := range SimplifyDebts(group.Members, groupExpenses) {
		switch {
		case d.Debtor.ID == other.ID && d.Creditor.ID == current.ID:
			balance += d.Amount
		case d.Debtor.ID == current.ID && d.Creditor.ID == other.ID:
			balance -= d.Amount
		}
	}
	return balance
}

// IndividualBalance computes the signed balance from direct (non-group)
// transactions between two users only. Positive means other owes current.
//
// A settlement moves the payer toward zero: the payer gains the amount, the
// recipient loses it. A regular expense credits the payer with the amount
// minus their own share and debits the non-payer by their share.
func IndividualBalance(current, other models.User, expenses []models.Expense) float64 {
	var balance float64

	for _, e := range expenses {
		if e.GroupID != "" {
			continue
		}
		if e.IsSettlement {
			// Malformed settlements without a recipient contribute nothing.
			if len(e.Participants) == 0 {
				continue
			}
			recipient := e.Participants[0].User
			switch {
			case e.PaidBy.ID == current.ID && recipient.ID == other.ID:
				balance += e.Amount
			case e.PaidBy.ID == other.ID && recipient.ID == current.ID:
				balance -= e.Amount
			}
			continue
		}
		if !isDirectBetween(e, current.ID, other.ID) {
			continue
		}
		if e.PaidBy.ID == current.ID {
			balance += e.Amount - e.ShareOf(current.ID)
		} else {
			balance -= e.ShareOf(current.ID)
		}
	}

	return balance
}

// isDirectBetween reports whether a regular expense involves exactly the two
// given users: every participant is one of them, the payer is one of them,
// and both actually appear (as payer or participant). This admits the
// "owed full amount" mode where the payer is not listed as a participant.
func isDirectBetween(e models.Expense, aID, bID string) bool {
	if len(e.Participants) == 0 {
		return false
	}
	if e.PaidBy.ID != aID && e.PaidBy.ID != bID {
		return false
	}
	involved := map[string]bool{e.PaidBy.ID: true}
	for _, p := range e.Participants {
		if p.User.ID != aID && p.User.ID != bID {
			return false
		}
		involved[p.User.ID] = true
	}
	return involved[aID] && involved[bID]
}

// OverallBalances computes the net balance between current and every other
// user, keyed by the other user's ID. Users with no shared activity map to 0.
func OverallBalances(current models.User, users []models.User, groups []models.Group, expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64, len(users))
	for _, u := range users {
		if u.ID == current.ID {
			continue
		}
		balances[u.ID] = NetBalance(current, u, groups, expenses)
	}
	return balances
}

// IndividualBalances is OverallBalances restricted to direct (non-group)
// transactions.
func IndividualBalances(current models.User, users []models.User, expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64, len(users))
	for _, u := range users {
		if u.ID == current.ID {
			continue
		}
		balances[u.ID] = IndividualBalance(current, u, expenses)
	}
	return balances
}
