package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nkhare/divvy/internal/calculator"
	"github.com/nkhare/divvy/internal/models"
	"github.com/nkhare/divvy/internal/storage"
)

// GroupService manages groups and group-level debt views.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group. The creator is always the first member;
// duplicate member ids collapse. Membership is fixed after creation.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID, name string, memberIDs []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrValidation("group name must not be empty")
	}

	creator, err := s.store.GetUser(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	members := []models.User{*creator}
	seen := map[string]bool{creator.ID: true}
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		member, err := s.store.GetUser(ctx, id)
		if err != nil {
			return nil, models.ErrValidation("unknown member: %s", id)
		}
		members = append(members, *member)
		seen[id] = true
	}

	group := &models.Group{
		ID:      newGroupID(),
		Name:    name,
		Members: members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members_count", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.store.ListGroups(ctx)
}

// SimplifiedDebts computes a reduced transfer list that clears a group's
// internal debts.
func (s *GroupService) SimplifiedDebts(ctx context.Context, groupID string) ([]models.SimplifiedDebt, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	debts := calculator.SimplifyDebts(group.Members, expenses)
	slog.Debug("Simplified group debts",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"debts_count", len(debts),
	)
	return debts, nil
}
