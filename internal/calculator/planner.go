package calculator

import (
	"math"

	"github.com/nkhare/divvy/internal/models"
)

// Direction indicates who pays in a settlement plan.
type Direction string

const (
	// DirectionCurrentPays means the current user owes the net amount.
	DirectionCurrentPays Direction = "current_user_pays"
	// DirectionOtherPays means the other user owes the net amount.
	DirectionOtherPays Direction = "other_user_pays"
	// DirectionSettled means the two users are even within Epsilon.
	DirectionSettled Direction = "settled"
)

// GroupDebt is a debt the current user owes the other user within one group.
type GroupDebt struct {
	GroupID   string  `json:"groupId"`
	GroupName string  `json:"groupName"`
	Amount    float64 `json:"amount"`
}

// PlannedSettlement is one constituent of a settlement plan: a single group
// debt, or the direct (non-group) debt when GroupID is empty.
type PlannedSettlement struct {
	GroupID   string    `json:"groupId,omitempty"`
	GroupName string    `json:"groupName,omitempty"`
	Amount    float64   `json:"amount"`
	Direction Direction `json:"direction"`
}

// SettlementPlan is the net position between two users with the breakdown
// used to record one settlement expense per constituent debt.
type SettlementPlan struct {
	// NetAmount is the absolute difference between what each side owes.
	NetAmount float64 `json:"netAmount"`

	// Direction says who pays the net amount, or that the pair is settled.
	Direction Direction `json:"direction"`

	// OwedTo is the total the current user owes the other user.
	OwedTo float64 `json:"owedTo"`

	// OwedFrom is the total the other user owes the current user.
	OwedFrom float64 `json:"owedFrom"`

	// Settlements enumerates every constituent debt: one entry per mutual
	// group with a surviving debt plus one for the direct debt, each tagged
	// with its own direction.
	Settlements []PlannedSettlement `json:"settlements"`
}

// NetSettlement combines every mutual group's simplified debt with the direct
// debt between two users into a single net position. The per-constituent
// breakdown lets a caller clear several group debts and a direct debt in one
// confirmation while keeping a per-group audit trail.
func NetSettlement(current, other models.User, groups []models.Group, expenses []models.Expense) SettlementPlan {
	plan := SettlementPlan{Direction: DirectionSettled}

	for _, g := range groups {
		if !g.HasMember(current.ID) || !g.HasMember(other.ID) {
			continue
		}
		balance := GroupBalance(current, other, g, expenses)
		switch {
		case balance < -Epsilon:
			plan.OwedTo += -balance
			plan.Settlements = append(plan.Settlements, PlannedSettlement{
				GroupID:   g.ID,
				GroupName: g.Name,
				Amount:    -balance,
				Direction: DirectionCurrentPays,
			})
		case balance > Epsilon:
			plan.OwedFrom += balance
			plan.Settlements = append(plan.Settlements, PlannedSettlement{
				GroupID:   g.ID,
				GroupName: g.Name,
				Amount:    balance,
				Direction: DirectionOtherPays,
			})
		}
	}

	individual := IndividualBalance(current, other, expenses)
	switch {
	case individual < -Epsilon:
		plan.OwedTo += -individual
		plan.Settlements = append(plan.Settlements, PlannedSettlement{
			Amount:    -individual,
			Direction: DirectionCurrentPays,
		})
	case individual > Epsilon:
		plan.OwedFrom += individual
		plan.Settlements = append(plan.Settlements, PlannedSettlement{
			Amount:    individual,
			Direction: DirectionOtherPays,
		})
	}

	plan.NetAmount = math.Abs(plan.OwedTo - plan.OwedFrom)
	switch {
	case plan.OwedTo-plan.OwedFrom > Epsilon:
		plan.Direction = DirectionCurrentPays
	case plan.OwedFrom-plan.OwedTo > Epsilon:
		plan.Direction = DirectionOtherPays
	}

	return plan
}

// GroupDebts lists, per mutual group, the debt the current user owes the
// other user. Groups where the current user is owed, or where the pair is
// even, are omitted.
func GroupDebts(current, other models.User, groups []models.Group, expenses []models.Expense) []GroupDebt {
	var debts []GroupDebt
	for _, g := range groups {
		if !g.HasMember(current.ID) || !g.HasMember(other.ID) {
			continue
		}
		if balance := GroupBalance(current, other, g, expenses); balance < -Epsilon {
			debts = append(debts, GroupDebt{GroupID: g.ID, GroupName: g.Name, Amount: -balance})
		}
	}
	return debts
}
