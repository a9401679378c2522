package service

import (
	"context"
	"fmt"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type CommentService interface {
	AddComment(ctx context.Context, author *models.User, postID string, form *forms.CommentForm) (*models.Comment, error)
	ListForPost(ctx context.Context, postID string) ([]*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, author *models.User, postID string, form *forms.CommentForm) (*models.Comment, error) {
	if err := checkID(postID); err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, err)
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     form.Text,
		AuthorID: author.UserID,
		PostID:   postID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.AuthorUsername = author.Username
	return comment, nil
}

func (s *commentService) ListForPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
