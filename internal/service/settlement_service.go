package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nkhare/divvy/internal/calculator"
	"github.com/nkhare/divvy/internal/models"
	"github.com/nkhare/divvy/internal/storage"
)

var settlementsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "divvy_settlements_recorded_total",
	Help: "Total number of settlement payments recorded.",
})

// SettlementEntry is one constituent of a settlement being recorded: the
// amount paid against a particular group, or against the pair's direct
// balance when GroupID is empty.
type SettlementEntry struct {
	GroupID string  `json:"groupId,omitempty"`
	Amount  float64 `json:"amount"`
}

// BalanceSummary pairs a user's overall balances with the purely individual
// component, both keyed by the other user's id.
type BalanceSummary struct {
	Overall    map[string]float64 `json:"overall"`
	Individual map[string]float64 `json:"individual"`
}

// SettlementService computes pairwise balances, produces settlement plans,
// and records settlement payments as settlement expenses.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// NetBalance returns the signed balance between two users across all their
// shared groups and direct expenses. Positive means the other user owes the
// current user.
func (s *SettlementService) NetBalance(ctx context.Context, currentID, otherID string) (float64, error) {
	current, other, groups, expenses, err := s.loadPair(ctx, currentID, otherID)
	if err != nil {
		return 0, err
	}
	return calculator.NetBalance(*current, *other, groups, expenses), nil
}

// Balances returns the current user's balance against every other known
// user, both overall and on the direct (non-group) component alone.
func (s *SettlementService) Balances(ctx context.Context, currentID string) (*BalanceSummary, error) {
	current, err := s.store.GetUser(ctx, currentID)
	if err != nil {
		return nil, err
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return &BalanceSummary{
		Overall:    calculator.OverallBalances(*current, users, groups, expenses),
		Individual: calculator.IndividualBalances(*current, users, expenses),
	}, nil
}

// Plan builds the settlement plan between two users: the net amount, its
// direction, and the per-group constituents a payment would be applied to.
func (s *SettlementService) Plan(ctx context.Context, currentID, otherID string) (*calculator.SettlementPlan, error) {
	current, other, groups, expenses, err := s.loadPair(ctx, currentID, otherID)
	if err != nil {
		return nil, err
	}
	plan := calculator.NetSettlement(*current, *other, groups, expenses)
	return &plan, nil
}

// GroupDebts returns the groups in which the current user owes the other,
// with the amount owed per group.
func (s *SettlementService) GroupDebts(ctx context.Context, currentID, otherID string) ([]calculator.GroupDebt, error) {
	current, other, groups, expenses, err := s.loadPair(ctx, currentID, otherID)
	if err != nil {
		return nil, err
	}
	return calculator.GroupDebts(*current, *other, groups, expenses), nil
}

// Record writes one settlement expense per entry, crediting the payer against
// the payee in each named group (or on their direct balance for the empty
// group id). Entries at or below the rounding epsilon are skipped.
func (s *SettlementService) Record(ctx context.Context, payerID, payeeID string, entries []SettlementEntry) ([]models.Expense, error) {
	if payerID == payeeID {
		return nil, models.ErrValidation("payer and payee must differ")
	}
	payer, err := s.store.GetUser(ctx, payerID)
	if err != nil {
		return nil, err
	}
	payee, err := s.store.GetUser(ctx, payeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var recorded []models.Expense
	for _, entry := range entries {
		if entry.Amount <= calculator.Epsilon {
			continue
		}
		if entry.GroupID != "" {
			group, err := s.store.GetGroup(ctx, entry.GroupID)
			if err != nil {
				return nil, models.ErrValidation("unknown group: %s", entry.GroupID)
			}
			if !group.HasMember(payer.ID) || !group.HasMember(payee.ID) {
				return nil, models.ErrValidation("both users must be members of group %s", group.ID)
			}
		}

		expense := &models.Expense{
			ID:           newSettlementID(),
			GroupID:      entry.GroupID,
			Description:  "Payment to " + payee.Name,
			Amount:       entry.Amount,
			PaidBy:       *payer,
			Participants: []models.Participant{{User: *payee, Share: entry.Amount}},
			Date:         now,
			IsSettlement: true,
			History: []models.AuditEntry{
				{
					Actor:     *payer,
					Action:    fmt.Sprintf("paid %s $%.2f", payee.Name, entry.Amount),
					Timestamp: now,
				},
			},
		}
		if err := s.store.CreateExpense(ctx, expense); err != nil {
			slog.Error("Record settlement failed", "group_id", entry.GroupID, "error", err)
			return nil, err
		}
		settlementsRecorded.Inc()
		recorded = append(recorded, *expense)
	}

	slog.Info("Settlements recorded",
		"payer_id", payerID,
		"payee_id", payeeID,
		"count", len(recorded),
	)
	return recorded, nil
}

func (s *SettlementService) loadPair(ctx context.Context, currentID, otherID string) (*models.User, *models.User, []models.Group, []models.Expense, error) {
	current, err := s.store.GetUser(ctx, currentID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	other, err := s.store.GetUser(ctx, otherID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return current, other, groups, expenses, nil
}
