package service

import (
	"context"
	"errors"
	"strings"

	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
)

type GroupService interface {
	List(ctx context.Context) ([]*models.Group, error)
	Posts(ctx context.Context, slug, rawPage string) (*models.Group, *PostPage, error)
	Create(ctx context.Context, title, slug, description string) (*models.Group, error)
	Delete(ctx context.Context, slug string) error
}

type groupService struct {
	groupRepo repository.GroupRepository
	postRepo  repository.PostRepository
	pages     *paginator.Paginator
}

func NewGroupService(groupRepo repository.GroupRepository, postRepo repository.PostRepository,
	pages *paginator.Paginator) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		postRepo:  postRepo,
		pages:     pages,
	}
}

func (s *groupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *groupService) Posts(ctx context.Context, slug, rawPage string) (*models.Group, *PostPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	page, err := listPage(ctx, s.postRepo, s.pages, repository.PostFilter{GroupID: group.GroupID}, rawPage)
	if err != nil {
		return nil, nil, err
	}

	return group, page, nil
}

func (s *groupService) Create(ctx context.Context, title, slug, description string) (*models.Group, error) {
	group := &models.Group{
		Title:       strings.TrimSpace(title),
		Slug:        strings.TrimSpace(slug),
		Description: strings.TrimSpace(description),
	}

	if group.Title == "" || group.Slug == "" {
		return nil, errors.New("group needs a title and a slug")
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) Delete(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, group.GroupID)
}
