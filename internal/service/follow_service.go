package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, user *models.User, username string) (*models.User, error)
	Unfollow(ctx context.Context, user *models.User, username string) (*models.User, error)
	IsFollowing(ctx context.Context, user *models.User, author *models.User) (bool, error)
	Feed(ctx context.Context, user *models.User, rawPage string) (*PostPage, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	pages      *paginator.Paginator
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository,
	postRepo repository.PostRepository, pages *paginator.Paginator) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		postRepo:   postRepo,
		pages:      pages,
	}
}

// Follow makes user follow the author named username. Following an author
// twice changes nothing; following yourself is ErrSelfFollow.
func (s *followService) Follow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.UserID == user.UserID {
		return author, models.ErrSelfFollow
	}

	_, err = s.followRepo.Create(ctx, &models.Follow{UserID: user.UserID, AuthorID: author.UserID})
	if err != nil {
		return nil, err
	}

	return author, nil
}

// Unfollow removes the follow if there is one.
func (s *followService) Unfollow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if _, err := s.followRepo.Delete(ctx, user.UserID, author.UserID); err != nil {
		return nil, err
	}

	return author, nil
}

// IsFollowing reports whether user follows author. Anonymous users and
// authors looking at themselves follow nobody.
func (s *followService) IsFollowing(ctx context.Context, user *models.User, author *models.User) (bool, error) {
	if user == nil || author == nil || user.UserID == author.UserID {
		return false, nil
	}
	return s.followRepo.Exists(ctx, user.UserID, author.UserID)
}

func (s *followService) Feed(ctx context.Context, user *models.User, rawPage string) (*PostPage, error) {
	return listPage(ctx, s.postRepo, s.pages, repository.PostFilter{FollowerID: user.UserID}, rawPage)
}
