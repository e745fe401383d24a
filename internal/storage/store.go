// Package storage provides abstractions for persisting the ledger's
// canonical collections.
package storage

import (
	"context"

	"github.com/nkhare/divvy/internal/models"
)

// Store defines the persistence interface for users, groups, and expenses.
// This abstraction allows swapping backends (SQLite, in-memory, PostgreSQL)
// without changing the service layer.
//
// List operations return full snapshots in insertion order; the calculation
// packages consume these snapshots and never reach back into the store.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser replaces a user's profile fields.
	UpdateUser(ctx context.Context, user *models.User) error

	// CreateGroup persists a new group with its member list.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, members in creation order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// CreateExpense persists a new expense with participants and history.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses retrieves all expenses, oldest first.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// ListExpensesByGroup retrieves all expenses for one group, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// UpdateExpense fully replaces an existing expense, including its
	// participant list and history.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// Close releases any resources held by the store.
	Close() error
}
