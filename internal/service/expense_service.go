package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nkhare/divvy/internal/audit"
	"github.com/nkhare/divvy/internal/models"
	"github.com/nkhare/divvy/internal/storage"
)

// createdAction is the history entry seeded on every new expense.
const createdAction = "created this expense"

// ParticipantInput is one unresolved participant reference.
type ParticipantInput struct {
	UserID string  `json:"userId"`
	Share  float64 `json:"share"`
}

// ExpenseInput is the unresolved form of an expense submission or edit.
// The service resolves ids to full records before dispatching the pure
// calculation and audit code, which only ever sees plain data.
type ExpenseInput struct {
	GroupID      string             `json:"groupId,omitempty"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidByID     string             `json:"paidById"`
	Participants []ParticipantInput `json:"participants"`
	Date         time.Time          `json:"date,omitempty"`
}

// ExpenseService manages expense submission, full-replace edits, and the
// per-expense audit history.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpense validates and records a new expense, seeding its history with
// the creation entry.
func (s *ExpenseService) AddExpense(ctx context.Context, actorID string, in ExpenseInput) (*models.Expense, error) {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	draft, err := s.resolveDraft(ctx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := &models.Expense{
		ID:           newExpenseID(),
		GroupID:      draft.GroupID,
		Description:  draft.Description,
		Amount:       draft.Amount,
		PaidBy:       draft.PaidBy,
		Participants: draft.Participants,
		Date:         draft.Date,
		History: []models.AuditEntry{
			{Actor: *actor, Action: createdAction, Timestamp: now},
		},
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"participants_count", len(expense.Participants),
	)
	return expense, nil
}

// UpdateExpense fully replaces an expense's content and appends exactly one
// history entry describing the edit. Prior entries are never touched.
func (s *ExpenseService) UpdateExpense(ctx context.Context, actorID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if existing.IsSettlement {
		return nil, models.ErrValidation("settlements cannot be edited")
	}
	draft, err := s.resolveDraft(ctx, in)
	if err != nil {
		return nil, err
	}

	change := audit.GenerateDetails(*existing, *draft)
	entry := models.AuditEntry{
		Actor:     *actor,
		Action:    change.Action,
		Details:   change.Details,
		Timestamp: time.Now(),
	}

	updated := &models.Expense{
		ID:           existing.ID,
		GroupID:      draft.GroupID,
		Description:  draft.Description,
		Amount:       draft.Amount,
		PaidBy:       draft.PaidBy,
		Participants: draft.Participants,
		Date:         draft.Date,
		History:      append(existing.History, entry),
	}
	if err := s.store.UpdateExpense(ctx, updated); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expenseID, "action", change.Action)
	return updated, nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListExpenses retrieves all expenses, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// History returns an expense's audit trail, oldest entry first.
func (s *ExpenseService) History(ctx context.Context, expenseID string) ([]models.AuditEntry, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return expense.History, nil
}

// resolveDraft validates an input and resolves its user and group references
// into a fully populated draft. Validation happens here, at the boundary;
// the calculation packages assume the invariants hold.
func (s *ExpenseService) resolveDraft(ctx context.Context, in ExpenseInput) (*models.ExpenseDraft, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.ErrValidation("description must not be empty")
	}
	if in.Amount <= 0 {
		return nil, models.ErrValidation("amount must be positive")
	}
	if len(in.Participants) == 0 {
		return nil, models.ErrValidation("at least one participant is required")
	}

	var group *models.Group
	if in.GroupID != "" {
		g, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, models.ErrValidation("unknown group: %s", in.GroupID)
		}
		group = g
	}

	payer, err := s.store.GetUser(ctx, in.PaidByID)
	if err != nil {
		return nil, models.ErrValidation("unknown payer: %s", in.PaidByID)
	}
	if group != nil && !group.HasMember(payer.ID) {
		return nil, models.ErrValidation("payer %s is not a member of group %s", payer.ID, group.ID)
	}

	seen := make(map[string]bool, len(in.Participants))
	participants := make([]models.Participant, 0, len(in.Participants))
	for _, p := range in.Participants {
		if seen[p.UserID] {
			return nil, models.ErrValidation("duplicate participant: %s", p.UserID)
		}
		seen[p.UserID] = true
		if p.Share < 0 {
			return nil, models.ErrValidation("share must not be negative")
		}
		user, err := s.store.GetUser(ctx, p.UserID)
		if err != nil {
			return nil, models.ErrValidation("unknown participant: %s", p.UserID)
		}
		if group != nil && !group.HasMember(user.ID) {
			return nil, models.ErrValidation("participant %s is not a member of group %s", user.ID, group.ID)
		}
		participants = append(participants, models.Participant{User: *user, Share: p.Share})
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &models.ExpenseDraft{
		GroupID:      in.GroupID,
		Description:  strings.TrimSpace(in.Description),
		Amount:       in.Amount,
		PaidBy:       *payer,
		Participants: participants,
		Date:         date,
	}, nil
}
