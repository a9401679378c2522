package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.GroupID == "" {
		group.GroupID = uuid.New().String()
	}

	query := `
		INSERT INTO groups (group_id, title, slug, description)
		VALUES (:group_id, :title, :slug, :description)
	`

	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		if isUniqueViolation(err, "groups_slug_key") {
			return fmt.Errorf("group with slug %s: %w", group.Slug, models.ErrDuplicate)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, groupID string) (*models.Group, error) {
	return r.getOne(ctx, `SELECT * FROM groups WHERE group_id = $1`, groupID)
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return r.getOne(ctx, `SELECT * FROM groups WHERE slug = $1`, slug)
}

func (r *groupRepository) getOne(ctx context.Context, query, key string) (*models.Group, error) {
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group %s: %w", key, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*models.Group, error) {
	groups := []*models.Group{}
	if err := r.db.SelectContext(ctx, &groups, `SELECT * FROM groups ORDER BY title`); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// Delete removes the group; its posts stay with an empty group.
func (r *groupRepository) Delete(ctx context.Context, groupID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}

	return nil
}
