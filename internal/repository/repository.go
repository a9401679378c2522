package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, groupID string) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Delete(ctx context.Context, groupID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
}

type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) (bool, error)
	Delete(ctx context.Context, userID, authorID string) (bool, error)
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}

type Repository struct {
	User    UserRepository
	Group   GroupRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  FollowRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Group:   NewGroupRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
	}
}
