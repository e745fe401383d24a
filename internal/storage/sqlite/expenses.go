package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nkhare/divvy/internal/models"
)

// CreateExpense persists a new expense with its participants and history.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, date, is_settlement, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, nullable(expense.GroupID), expense.Description, expense.Amount,
		expense.PaidBy.ID, expense.Date.Format(time.RFC3339Nano), expense.IsSettlement, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertChildren(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense fully replaces an expense, its participants, and its history.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET group_id = ?, description = ?, amount = ?, paid_by = ?, date = ?, is_settlement = ?
		 WHERE id = ?`,
		nullable(expense.GroupID), expense.Description, expense.Amount,
		expense.PaidBy.ID, expense.Date.Format(time.RFC3339Nano), expense.IsSettlement, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound("expense not found: %s", expense.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM audit_entries WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if err := insertChildren(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertChildren writes an expense's participant and history rows.
func insertChildren(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i, p := range expense.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id, share, position) VALUES (?, ?, ?, ?)",
			expense.ID, p.User.ID, p.Share, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	for i, entry := range expense.History {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO audit_entries (expense_id, position, actor_id, action, details, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			expense.ID, i, entry.Actor.ID, entry.Action, nullable(entry.Details),
			entry.Timestamp.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense by ID, including participants and history.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.scanExpenseRow(ctx, s.db.QueryRowContext(ctx,
		`SELECT e.id, e.group_id, e.description, e.amount, e.date, e.is_settlement,
		        u.id, u.name, u.avatar_url, u.payment_message
		 FROM expenses e JOIN users u ON u.id = e.paid_by
		 WHERE e.id = ?`,
		expenseID,
	))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if err := s.loadChildren(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses retrieves all expenses, oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT e.id, e.group_id, e.description, e.amount, e.date, e.is_settlement,
		        u.id, u.name, u.avatar_url, u.payment_message
		 FROM expenses e JOIN users u ON u.id = e.paid_by
		 ORDER BY e.created_at, e.id`)
}

// ListExpensesByGroup retrieves all expenses for one group, oldest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT e.id, e.group_id, e.description, e.amount, e.date, e.is_settlement,
		        u.id, u.name, u.avatar_url, u.payment_message
		 FROM expenses e JOIN users u ON u.id = e.paid_by
		 WHERE e.group_id = ?
		 ORDER BY e.created_at, e.id`, groupID)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		expense, err := s.scanExpenseRow(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadChildren(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLiteStore) scanExpenseRow(_ context.Context, row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID, avatarURL, paymentMessage sql.NullString
	var date string

	err := row.Scan(&expense.ID, &groupID, &expense.Description, &expense.Amount, &date, &expense.IsSettlement,
		&expense.PaidBy.ID, &expense.PaidBy.Name, &avatarURL, &paymentMessage)
	if err != nil {
		return nil, err
	}

	expense.GroupID = groupID.String
	expense.PaidBy.AvatarURL = avatarURL.String
	expense.PaidBy.PaymentMessage = paymentMessage.String
	if expense.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
		return nil, fmt.Errorf("failed to parse expense date: %w", err)
	}
	return expense, nil
}

// loadChildren populates an expense's participants and history.
func (s *SQLiteStore) loadChildren(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.avatar_url, u.payment_message, ep.share
		 FROM expense_participants ep
		 JOIN users u ON u.id = ep.user_id
		 WHERE ep.expense_id = ?
		 ORDER BY ep.position`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	expense.Participants = nil
	for rows.Next() {
		var p models.Participant
		var avatarURL, paymentMessage sql.NullString
		if err := rows.Scan(&p.User.ID, &p.User.Name, &avatarURL, &paymentMessage, &p.Share); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.User.AvatarURL = avatarURL.String
		p.User.PaymentMessage = paymentMessage.String
		expense.Participants = append(expense.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	historyRows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.avatar_url, u.payment_message, ae.action, ae.details, ae.timestamp
		 FROM audit_entries ae
		 JOIN users u ON u.id = ae.actor_id
		 WHERE ae.expense_id = ?
		 ORDER BY ae.position`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}
	defer historyRows.Close()

	expense.History = nil
	for historyRows.Next() {
		var entry models.AuditEntry
		var avatarURL, paymentMessage, details sql.NullString
		var ts string
		if err := historyRows.Scan(&entry.Actor.ID, &entry.Actor.Name, &avatarURL, &paymentMessage,
			&entry.Action, &details, &ts); err != nil {
			return fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.Actor.AvatarURL = avatarURL.String
		entry.Actor.PaymentMessage = paymentMessage.String
		entry.Details = details.String
		if entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return fmt.Errorf("failed to parse audit timestamp: %w", err)
		}
		expense.History = append(expense.History, entry)
	}
	if err := historyRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate history: %w", err)
	}
	return nil
}
