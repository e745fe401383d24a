package calculator

import (
	"math"
	"testing"

	"github.com/nkhare/divvy/internal/models"
)

func TestNetSettlementSettledWhenEven(t *testing.T) {
	plan := NetSettlement(you, alice, nil, nil)
	if plan.Direction != DirectionSettled {
		t.Errorf("direction = %s, want %s", plan.Direction, DirectionSettled)
	}
	if plan.NetAmount != 0 || len(plan.Settlements) != 0 {
		t.Errorf("plan = %+v, want empty settled plan", plan)
	}
}

func TestNetSettlementAcrossGroupsAndDirect(t *testing.T) {
	trip := models.Group{ID: "group-trip", Name: "Trip", Members: []models.User{alice, you}}
	rent := models.Group{ID: "group-rent", Name: "Rent", Members: []models.User{alice, bob, you}}
	groups := []models.Group{trip, rent}

	expenses := []models.Expense{
		// Trip: you owe Alice 50.
		{ID: "exp-1", GroupID: trip.ID, Amount: 100, PaidBy: alice,
			Participants: equalSplit(100, alice, you)},
		// Rent: Alice owes you 20 (you paid 60 three ways).
		{ID: "exp-2", GroupID: rent.ID, Amount: 60, PaidBy: you,
			Participants: equalSplit(60, alice, bob, you)},
		// Direct: you owe Alice 15.
		{ID: "exp-3", Amount: 30, PaidBy: alice, Participants: equalSplit(30, alice, you)},
	}

	plan := NetSettlement(you, alice, groups, expenses)

	if math.Abs(plan.OwedTo-65) > Epsilon {
		t.Errorf("owedTo = %v, want 65", plan.OwedTo)
	}
	if math.Abs(plan.OwedFrom-20) > Epsilon {
		t.Errorf("owedFrom = %v, want 20", plan.OwedFrom)
	}
	if math.Abs(plan.NetAmount-45) > Epsilon {
		t.Errorf("netAmount = %v, want 45", plan.NetAmount)
	}
	if plan.Direction != DirectionCurrentPays {
		t.Errorf("direction = %s, want %s", plan.Direction, DirectionCurrentPays)
	}

	if len(plan.Settlements) != 3 {
		t.Fatalf("got %d constituent settlements, want 3", len(plan.Settlements))
	}
	byGroup := make(map[string]PlannedSettlement)
	for _, s := range plan.Settlements {
		byGroup[s.GroupID] = s
	}
	if s := byGroup[trip.ID]; s.Direction != DirectionCurrentPays || math.Abs(s.Amount-50) > Epsilon {
		t.Errorf("trip settlement = %+v, want 50 paid by current user", s)
	}
	if s := byGroup[rent.ID]; s.Direction != DirectionOtherPays || math.Abs(s.Amount-20) > Epsilon {
		t.Errorf("rent settlement = %+v, want 20 paid by other user", s)
	}
	if s := byGroup[""]; s.Direction != DirectionCurrentPays || math.Abs(s.Amount-15) > Epsilon {
		t.Errorf("direct settlement = %+v, want 15 paid by current user", s)
	}
}

func TestNetSettlementMirrored(t *testing.T) {
	trip := models.Group{ID: "group-trip", Name: "Trip", Members: []models.User{alice, you}}
	expenses := []models.Expense{
		{ID: "exp-1", GroupID: trip.ID, Amount: 100, PaidBy: alice,
			Participants: equalSplit(100, alice, you)},
	}

	mine := NetSettlement(you, alice, []models.Group{trip}, expenses)
	theirs := NetSettlement(alice, you, []models.Group{trip}, expenses)

	if math.Abs(mine.NetAmount-theirs.NetAmount) > Epsilon {
		t.Errorf("net amounts differ: %v vs %v", mine.NetAmount, theirs.NetAmount)
	}
	if mine.Direction != DirectionCurrentPays || theirs.Direction != DirectionOtherPays {
		t.Errorf("directions = %s / %s, want mirrored", mine.Direction, theirs.Direction)
	}
	if math.Abs(mine.OwedTo-theirs.OwedFrom) > Epsilon || math.Abs(mine.OwedFrom-theirs.OwedTo) > Epsilon {
		t.Errorf("breakdowns not mirrored: %+v vs %+v", mine, theirs)
	}
}

func TestGroupDebts(t *testing.T) {
	trip := models.Group{ID: "group-trip", Name: "Trip", Members: []models.User{alice, you}}
	rent := models.Group{ID: "group-rent", Name: "Rent", Members: []models.User{alice, you}}
	groups := []models.Group{trip, rent}

	expenses := []models.Expense{
		{ID: "exp-1", GroupID: trip.ID, Amount: 100, PaidBy: alice,
			Participants: equalSplit(100, alice, you)},
		// Rent: alice owes you, so it must not appear in your debts.
		{ID: "exp-2", GroupID: rent.ID, Amount: 40, PaidBy: you,
			Participants: equalSplit(40, alice, you)},
	}

	debts := GroupDebts(you, alice, groups, expenses)
	if len(debts) != 1 {
		t.Fatalf("got %d group debts, want 1", len(debts))
	}
	if debts[0].GroupID != trip.ID || math.Abs(debts[0].Amount-50) > Epsilon {
		t.Errorf("debt = %+v, want 50 in group %s", debts[0], trip.ID)
	}
	if debts[0].GroupName != "Trip" {
		t.Errorf("group name = %q, want Trip", debts[0].GroupName)
	}
}
