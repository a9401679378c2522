package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

const selectPosts = `
	SELECT p.post_id, p.text, p.created_at, p.group_id, p.author_id, p.image,
		u.username AS author_username,
		g.title AS group_title,
		g.slug AS group_slug,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id) AS comment_count
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	LEFT JOIN groups g ON g.group_id = p.group_id
`

// PostFilter narrows a listing. Empty fields do not filter; FollowerID keeps
// posts whose author is followed by that user.
type PostFilter struct {
	GroupID    string
	AuthorID   string
	FollowerID string
}

func (f PostFilter) where() (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if f.GroupID != "" {
		args = append(args, f.GroupID)
		conditions = append(conditions, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if f.FollowerID != "" {
		args = append(args, f.FollowerID)
		conditions = append(conditions, fmt.Sprintf(
			"p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (post_id, text, created_at, group_id, author_id, image)
		VALUES (:post_id, :text, :created_at, :group_id, :author_id, :image)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	if _, err := r.DB.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := selectPosts + ` WHERE p.post_id = $1`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// Update writes the editable fields only: the author and the publication
// date never change after creation.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			text = :text,
			group_id = :group_id,
			image = :image
		WHERE post_id = :post_id
	`

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, models.ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	return nil
}

// List returns one window of the filtered posts, newest first.
func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	where, args := filter.where()
	args = append(args, limit, offset)

	query := selectPosts + where + fmt.Sprintf(
		" ORDER BY p.created_at DESC, p.post_id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	posts := []*models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, filter PostFilter) (int, error) {
	where, args := filter.where()

	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts p`+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}
