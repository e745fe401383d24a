// Package memory provides an in-memory implementation of the storage.Store
// interface, used for development and as the test backend.
package memory

import (
	"context"
	"sync"

	"github.com/nkhare/divvy/internal/models"
	"github.com/nkhare/divvy/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with maps guarded by a RWMutex.
// Records are deep-copied on the way in and out so callers can never alias
// stored state.
type MemoryStore struct {
	mu       sync.RWMutex
	users    []models.User
	groups   []models.Group
	expenses []models.Expense
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{}
}

// CreateUser persists a new user.
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == user.ID {
			return models.ErrConflict("user already exists: %s", user.ID)
		}
	}
	s.users = append(s.users, *user)
	return nil
}

// GetUser retrieves a user by ID.
func (s *MemoryStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == userID {
			user := u
			return &user, nil
		}
	}
	return nil, models.ErrNotFound("user not found: %s", userID)
}

// ListUsers retrieves all users in creation order.
func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

// UpdateUser replaces a user's profile fields.
func (s *MemoryStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}
	return models.ErrNotFound("user not found: %s", user.ID)
}

// CreateGroup persists a new group.
func (s *MemoryStore) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.ID == group.ID {
			return models.ErrConflict("group already exists: %s", group.ID)
		}
	}
	s.groups = append(s.groups, copyGroup(*group))
	return nil
}

// GetGroup retrieves a group by ID.
func (s *MemoryStore) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.ID == groupID {
			group := copyGroup(g)
			return &group, nil
		}
	}
	return nil, models.ErrNotFound("group not found: %s", groupID)
}

// ListGroups retrieves all groups in creation order.
func (s *MemoryStore) ListGroups(_ context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]models.Group, len(s.groups))
	for i, g := range s.groups {
		groups[i] = copyGroup(g)
	}
	return groups, nil
}

// CreateExpense persists a new expense.
func (s *MemoryStore) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.ID == expense.ID {
			return models.ErrConflict("expense already exists: %s", expense.ID)
		}
	}
	s.expenses = append(s.expenses, copyExpense(*expense))
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *MemoryStore) GetExpense(_ context.Context, expenseID string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.expenses {
		if e.ID == expenseID {
			expense := copyExpense(e)
			return &expense, nil
		}
	}
	return nil, models.ErrNotFound("expense not found: %s", expenseID)
}

// ListExpenses retrieves all expenses, oldest first.
func (s *MemoryStore) ListExpenses(_ context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expenses := make([]models.Expense, len(s.expenses))
	for i, e := range s.expenses {
		expenses[i] = copyExpense(e)
	}
	return expenses, nil
}

// ListExpensesByGroup retrieves all expenses for one group, oldest first.
func (s *MemoryStore) ListExpensesByGroup(_ context.Context, groupID string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var expenses []models.Expense
	for _, e := range s.expenses {
		if e.GroupID == groupID {
			expenses = append(expenses, copyExpense(e))
		}
	}
	return expenses, nil
}

// UpdateExpense fully replaces an existing expense.
func (s *MemoryStore) UpdateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == expense.ID {
			s.expenses[i] = copyExpense(*expense)
			return nil
		}
	}
	return models.ErrNotFound("expense not found: %s", expense.ID)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func copyGroup(g models.Group) models.Group {
	members := make([]models.User, len(g.Members))
	copy(members, g.Members)
	g.Members = members
	return g
}

func copyExpense(e models.Expense) models.Expense {
	participants := make([]models.Participant, len(e.Participants))
	copy(participants, e.Participants)
	e.Participants = participants
	history := make([]models.AuditEntry, len(e.History))
	copy(history, e.History)
	e.History = history
	return e
}
