package calculator

import (
	"math"
	"testing"

	"github.com/nkhare/divvy/internal/models"
)

func TestNetBalanceDirectExpense(t *testing.T) {
	// Alice pays $12 for herself and You, split equally.
	dinner := models.Expense{
		ID: "exp-dinner", Amount: 12, PaidBy: alice,
		Participants: equalSplit(12, alice, you),
	}

	got := NetBalance(you, alice, nil, []models.Expense{dinner})
	if math.Abs(got-(-6)) > Epsilon {
		t.Errorf("NetBalance(you, alice) = %v, want -6", got)
	}
}

func TestNetBalanceSettlementClearsDebt(t *testing.T) {
	dinner := models.Expense{
		ID: "exp-dinner", Amount: 12, PaidBy: alice,
		Participants: equalSplit(12, alice, you),
	}
	payment := settlement(you, alice, 6, "")

	got := NetBalance(you, alice, nil, []models.Expense{dinner, payment})
	if math.Abs(got) > Epsilon {
		t.Errorf("NetBalance(you, alice) after settling = %v, want 0", got)
	}
}

func TestNetBalanceTwoPartyClosure(t *testing.T) {
	expenses := []models.Expense{
		{ID: "exp-1", Amount: 40, PaidBy: alice, Participants: equalSplit(40, alice, you)},
		{ID: "exp-2", Amount: 25, PaidBy: you, Participants: []models.Participant{
			{User: alice, Share: 25},
		}},
		settlement(you, alice, 10, ""),
	}

	ab := NetBalance(you, alice, nil, expenses)
	ba := NetBalance(alice, you, nil, expenses)
	if math.Abs(ab+ba) > Epsilon {
		t.Errorf("NetBalance(you, alice) = %v and NetBalance(alice, you) = %v, want negations", ab, ba)
	}
}

func TestNetBalancePayerNotParticipant(t *testing.T) {
	// "Owed full amount" mode: You paid $20 entirely for Alice.
	loan := models.Expense{
		ID: "exp-loan", Amount: 20, PaidBy: you,
		Participants: []models.Participant{{User: alice, Share: 20}},
	}

	got := NetBalance(you, alice, nil, []models.Expense{loan})
	if math.Abs(got-20) > Epsilon {
		t.Errorf("NetBalance(you, alice) = %v, want 20", got)
	}
}

func TestNetBalanceIgnoresThirdPartyDirectExpenses(t *testing.T) {
	expenses := []models.Expense{
		// Alice and Bob only; You are not involved.
		{ID: "exp-1", Amount: 30, PaidBy: alice, Participants: equalSplit(30, alice, bob)},
		// Three-way direct expense is not a two-party transaction.
		{ID: "exp-2", Amount: 30, PaidBy: alice, Participants: equalSplit(30, alice, bob, you)},
	}

	if got := NetBalance(you, alice, nil, expenses); math.Abs(got) > Epsilon {
		t.Errorf("NetBalance(you, alice) = %v, want 0", got)
	}
}

func TestNetBalanceGroupMediation(t *testing.T) {
	group := models.Group{
		ID: "group-trip", Name: "Trip",
		Members: []models.User{alice, bob, you},
	}
	// Alice pays 900 split three ways: Bob and You each owe Alice 300.
	// Simplification nets multi-party debt before the pairwise lookup.
	expenses := []models.Expense{
		{ID: "exp-1", GroupID: group.ID, Amount: 900, PaidBy: alice,
			Participants: equalSplit(900, alice, bob, you)},
	}

	if got := NetBalance(you, alice, []models.Group{group}, expenses); math.Abs(got-(-300)) > Epsilon {
		t.Errorf("NetBalance(you, alice) = %v, want -300", got)
	}
	if got := NetBalance(alice, bob, []models.Group{group}, expenses); math.Abs(got-300) > Epsilon {
		t.Errorf("NetBalance(alice, bob) = %v, want 300", got)
	}
	// Bob and You both owe Alice; nothing flows between them.
	if got := NetBalance(you, bob, []models.Group{group}, expenses); math.Abs(got) > Epsilon {
		t.Errorf("NetBalance(you, bob) = %v, want 0", got)
	}
}

func TestNetBalanceNoSharedActivity(t *testing.T) {
	group := models.Group{ID: "group-solo", Name: "Solo", Members: []models.User{alice, bob}}
	if got := NetBalance(you, alice, []models.Group{group}, nil); got != 0 {
		t.Errorf("NetBalance with no mutual groups and no transactions = %v, want 0", got)
	}
}

func TestNetBalanceGroupPlusDirect(t *testing.T) {
	group := models.Group{ID: "group-trip", Name: "Trip", Members: []models.User{alice, you}}
	expenses := []models.Expense{
		{ID: "exp-1", GroupID: group.ID, Amount: 100, PaidBy: alice,
			Participants: equalSplit(100, alice, you)},
		{ID: "exp-2", Amount: 20, PaidBy: you, Participants: equalSplit(20, alice, you)},
	}

	// Group: you owe 50. Direct: alice owes 10. Net: you owe 40.
	if got := NetBalance(you, alice, []models.Group{group}, expenses); math.Abs(got-(-40)) > Epsilon {
		t.Errorf("NetBalance(you, alice) = %v, want -40", got)
	}
}

func TestOverallAndIndividualBalances(t *testing.T) {
	group := models.Group{ID: "group-trip", Name: "Trip", Members: []models.User{alice, bob, you}}
	users := []models.User{alice, bob, you}
	expenses := []models.Expense{
		{ID: "exp-1", GroupID: group.ID, Amount: 90, PaidBy: alice,
			Participants: equalSplit(90, alice, bob, you)},
		{ID: "exp-2", Amount: 10, PaidBy: bob, Participants: equalSplit(10, bob, you)},
	}

	overall := OverallBalances(you, users, []models.Group{group}, expenses)
	if _, ok := overall[you.ID]; ok {
		t.Errorf("overall balances include the perspective user")
	}
	if got := overall[alice.ID]; math.Abs(got-(-30)) > Epsilon {
		t.Errorf("overall[alice] = %v, want -30", got)
	}
	if got := overall[bob.ID]; math.Abs(got-(-5)) > Epsilon {
		t.Errorf("overall[bob] = %v, want -5", got)
	}

	individual := IndividualBalances(you, users, expenses)
	if got := individual[alice.ID]; math.Abs(got) > Epsilon {
		t.Errorf("individual[alice] = %v, want 0", got)
	}
	if got := individual[bob.ID]; math.Abs(got-(-5)) > Epsilon {
		t.Errorf("individual[bob] = %v, want -5", got)
	}
}
