package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
)

// Profile is an author page as seen by a viewer.
type Profile struct {
	Author    *models.User
	Posts     *PostPage
	Following bool
	Followers int
	Follows   int
}

type UserService interface {
	Profile(ctx context.Context, username string, viewer *models.User, rawPage string) (*Profile, error)
	DeleteUser(ctx context.Context, username string) error
}

type userService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	follows    FollowService
	pages      *paginator.Paginator
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository,
	followRepo repository.FollowRepository, follows FollowService, pages *paginator.Paginator) UserService {
	return &userService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		follows:    follows,
		pages:      pages,
	}
}

func (s *userService) Profile(ctx context.Context, username string, viewer *models.User, rawPage string) (*Profile, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := listPage(ctx, s.postRepo, s.pages, repository.PostFilter{AuthorID: author.UserID}, rawPage)
	if err != nil {
		return nil, err
	}

	profile := &Profile{Author: author, Posts: posts}

	profile.Following, err = s.follows.IsFollowing(ctx, viewer, author)
	if err != nil {
		return nil, err
	}

	profile.Followers, err = s.followRepo.CountFollowers(ctx, author.UserID)
	if err != nil {
		return nil, err
	}

	profile.Follows, err = s.followRepo.CountFollowing(ctx, author.UserID)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.userRepo.DeleteUser(ctx, user.UserID)
}
