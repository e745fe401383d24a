package models

import "time"

// Participant is one user's share of an expense.
type Participant struct {
	// User is the participating user.
	User User `json:"user"`

	// Share is the amount this participant owes toward the expense.
	Share float64 `json:"share"`
}

// Expense represents either a cost split among participants or, when
// IsSettlement is set, a payment that reduces an existing debt.
//
// Invariants:
//   - Amount > 0.
//   - Participants is non-empty and each user appears at most once.
//   - For a regular expense the shares need not sum to Amount: the payer may
//     not be a participant at all ("owed full amount" mode). The balance math
//     treats the payer's net contribution as Amount minus their own share (if
//     any) and every other participant's as minus their share.
//   - A settlement has exactly one participant whose Share equals Amount: it
//     records PaidBy transferring Amount to that participant.
//
// Expenses are created once and then only mutated through full-replace
// updates, each of which appends one AuditEntry to History. They are never
// deleted.
type Expense struct {
	// ID is the unique identifier for the expense (e.g. "exp-1718123456789").
	ID string `json:"id"`

	// GroupID is the group this expense belongs to. Empty for a direct
	// (non-group) expense between individuals.
	GroupID string `json:"groupId,omitempty"`

	// Description is the human-readable label, set by the author.
	Description string `json:"description"`

	// Amount is the total paid, in major currency units.
	Amount float64 `json:"amount"`

	// PaidBy is the user who paid the full amount.
	PaidBy User `json:"paidBy"`

	// Participants are the users sharing the expense, with their shares.
	Participants []Participant `json:"participants"`

	// Date is when the expense was incurred.
	Date time.Time `json:"date"`

	// IsSettlement marks this expense as a debt-clearing payment rather
	// than a cost split.
	IsSettlement bool `json:"isSettlement,omitempty"`

	// History is the append-only edit log, oldest entry first.
	History []AuditEntry `json:"history,omitempty"`
}

// ShareOf returns the share recorded for the given user, or 0 when the user
// is not a participant.
func (e Expense) ShareOf(userID string) float64 {
	for _, p := range e.Participants {
		if p.User.ID == userID {
			return p.Share
		}
	}
	return 0
}

// ExpenseDraft is the resolved input for creating an expense or fully
// replacing an existing one. It carries everything an Expense does except
// the identity and history, which the store owns.
type ExpenseDraft struct {
	GroupID      string        `json:"groupId,omitempty"`
	Description  string        `json:"description"`
	Amount       float64       `json:"amount"`
	PaidBy       User          `json:"paidBy"`
	Participants []Participant `json:"participants"`
	Date         time.Time     `json:"date"`
	IsSettlement bool          `json:"isSettlement,omitempty"`
}
