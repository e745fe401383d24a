package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nkhare/divvy/internal/models"
)

// CreateUser persists a new user.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, avatar_url, payment_message, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, nullable(user.AvatarURL), nullable(user.PaymentMessage), time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	var avatarURL, paymentMessage sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, avatar_url, payment_message FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Name, &avatarURL, &paymentMessage)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound("user not found: %s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.AvatarURL = avatarURL.String
	user.PaymentMessage = paymentMessage.String
	return user, nil
}

// ListUsers retrieves all users in creation order.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, avatar_url, payment_message FROM users ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var avatarURL, paymentMessage sql.NullString
		if err := rows.Scan(&user.ID, &user.Name, &avatarURL, &paymentMessage); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.AvatarURL = avatarURL.String
		user.PaymentMessage = paymentMessage.String
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces a user's profile fields.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, avatar_url = ?, payment_message = ? WHERE id = ?",
		user.Name, nullable(user.AvatarURL), nullable(user.PaymentMessage), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound("user not found: %s", user.ID)
	}
	return nil
}

// nullable maps an empty string to NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
