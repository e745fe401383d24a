// Package audit produces human-readable change summaries for expense edits.
// The output of GenerateDetails becomes a new history entry on the expense;
// entries are append-only and never rewritten.
package audit

import (
	"fmt"
	"math"
	"strings"

	"github.com/nkhare/divvy/internal/models"
)

// epsilon matches the calculator's monetary tolerance.
const epsilon = 0.01

// Result is the generated summary for one edit.
type Result struct {
	// Action is the one-line summary, e.g. "updated the amount and the split".
	Action string

	// Details lists concrete before/after values, one line each, with blank
	// lines between sections. Empty when no change was detected.
	Details string
}

// noChangeAction is used when an update replaced an expense with an
// identical one.
const noChangeAction = "made an update to this expense"

// GenerateDetails compares an expense against its replacement draft and
// describes what changed.
//
// Fields are compared in a fixed order: description, amount, payer,
// participant set, and finally the individual shares (only when the
// participant set itself is unchanged). Share comparison detects a
// transition between an equal split and custom amounts by checking every
// share against amount divided by the participant count.
func GenerateDetails(original models.Expense, updated models.ExpenseDraft) Result {
	var clauses []string
	var sections []string

	if original.Description != updated.Description {
		clauses = append(clauses, "the description")
		sections = append(sections, fmt.Sprintf("Description: %q → %q", original.Description, updated.Description))
	}

	if math.Abs(original.Amount-updated.Amount) > epsilon {
		clauses = append(clauses, "the amount")
		sections = append(sections, fmt.Sprintf("Amount: $%.2f → $%.2f", original.Amount, updated.Amount))
	}

	if original.PaidBy.ID != updated.PaidBy.ID {
		clauses = append(clauses, "who paid")
		sections = append(sections, fmt.Sprintf("Paid by: %s → %s", original.PaidBy.Name, updated.PaidBy.Name))
	}

	added, removed := participantDiff(original.Participants, updated.Participants)
	if len(added) > 0 || len(removed) > 0 {
		clauses = append(clauses, "the participants")
		var lines []string
		if len(added) > 0 {
			lines = append(lines, "Added: "+strings.Join(added, ", "))
		}
		if len(removed) > 0 {
			lines = append(lines, "Removed: "+strings.Join(removed, ", "))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	} else if lines := shareChanges(original, updated); len(lines) > 0 {
		clauses = append(clauses, "the split")
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(clauses) == 0 {
		return Result{Action: noChangeAction}
	}
	return Result{
		Action:  "updated " + joinClauses(clauses),
		Details: strings.Join(sections, "\n\n"),
	}
}

// participantDiff returns the names of participants added and removed,
// matched by user ID, in the order they appear in their respective lists.
func participantDiff(original, updated []models.Participant) (added, removed []string) {
	originalIDs := make(map[string]bool, len(original))
	for _, p := range original {
		originalIDs[p.User.ID] = true
	}
	updatedIDs := make(map[string]bool, len(updated))
	for _, p := range updated {
		updatedIDs[p.User.ID] = true
	}

	for _, p := range updated {
		if !originalIDs[p.User.ID] {
			added = append(added, p.User.Name)
		}
	}
	for _, p := range original {
		if !updatedIDs[p.User.ID] {
			removed = append(removed, p.User.Name)
		}
	}
	return added, removed
}

// shareChanges describes per-participant share changes for an unchanged
// participant set. A transition between equal and custom splitting gets its
// own leading line.
func shareChanges(original models.Expense, updated models.ExpenseDraft) []string {
	updatedShares := make(map[string]float64, len(updated.Participants))
	for _, p := range updated.Participants {
		updatedShares[p.User.ID] = p.Share
	}

	var lines []string
	changed := false
	for _, p := range original.Participants {
		if math.Abs(p.Share-updatedShares[p.User.ID]) > epsilon {
			changed = true
			lines = append(lines, fmt.Sprintf("%s's share: $%.2f → $%.2f", p.User.Name, p.Share, updatedShares[p.User.ID]))
		}
	}
	if !changed {
		return nil
	}

	wasEqual := isEqualSplit(original.Amount, original.Participants)
	isEqual := isEqualSplit(updated.Amount, updated.Participants)
	if wasEqual != isEqual {
		transition := "Split: equal → custom amounts"
		if isEqual {
			transition = "Split: custom amounts → equal"
		}
		lines = append([]string{transition}, lines...)
	}
	return lines
}

// isEqualSplit reports whether every share is within epsilon of an even
// division of the amount.
func isEqualSplit(amount float64, participants []models.Participant) bool {
	if len(participants) == 0 {
		return false
	}
	even := amount / float64(len(participants))
	for _, p := range participants {
		if math.Abs(p.Share-even) > epsilon {
			return false
		}
	}
	return true
}

// joinClauses joins change clauses with English list grammar: "X",
// "X and Y", or "X, Y, and Z".
func joinClauses(clauses []string) string {
	switch len(clauses) {
	case 1:
		return clauses[0]
	case 2:
		return clauses[0] + " and " + clauses[1]
	default:
		return strings.Join(clauses[:len(clauses)-1], ", ") + ", and " + clauses[len(clauses)-1]
	}
}
