package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, text, created_at, author_id, post_id)
		VALUES (:comment_id, :text, :created_at, :author_id, :post_id)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `
		SELECT c.comment_id, c.text, c.created_at, c.author_id, c.post_id,
			u.username AS author_username
		FROM comments c
		JOIN users u ON u.user_id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
	`

	comments := []*models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}
