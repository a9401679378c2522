package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the follow unless the pair already exists; the unique
// constraint decides, so concurrent duplicates collapse into one row.
// It reports whether a row was inserted.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) (bool, error) {
	if follow.UserID == follow.AuthorID {
		return false, models.ErrSelfFollow
	}

	if follow.FollowID == "" {
		follow.FollowID = uuid.New().String()
	}

	query := `
		INSERT INTO follows (follow_id, user_id, author_id)
		VALUES (:follow_id, :user_id, :author_id)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`

	result, err := r.db.NamedExecContext(ctx, query, follow)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check inserted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID string) (bool, error) {
	query := `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, authorID); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return exists, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE author_id = $1`, authorID); err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}
