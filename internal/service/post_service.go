package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

// PostPage is one page of a post listing.
type PostPage = paginator.Slice[*models.Post]

type PostService interface {
	ListPosts(ctx context.Context, filter repository.PostFilter, rawPage string) (*PostPage, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	CreatePost(ctx context.Context, author *models.User, form *forms.PostForm) (*models.Post, error)
	UpdatePost(ctx context.Context, editor *models.User, postID string, form *forms.PostForm) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	storage   storage.Storage
	pages     *paginator.Paginator
	log       *logrus.Logger
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository,
	storage storage.Storage, pages *paginator.Paginator, log *logrus.Logger) PostService {
	return &postService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		storage:   storage,
		pages:     pages,
		log:       log,
	}
}

func (p *postService) ListPosts(ctx context.Context, filter repository.PostFilter, rawPage string) (*PostPage, error) {
	return listPage(ctx, p.postRepo, p.pages, filter, rawPage)
}

// listPage counts the filtered posts, resolves the requested page and loads
// only that window.
func listPage(ctx context.Context, posts repository.PostRepository, pages *paginator.Paginator,
	filter repository.PostFilter, rawPage string) (*PostPage, error) {
	count, err := posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := pages.Page(count, rawPage)

	items := []*models.Post{}
	if count > 0 {
		items, err = posts.List(ctx, filter, page.Limit(), page.Offset())
		if err != nil {
			return nil, err
		}
	}

	return &PostPage{Page: page, Items: items}, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	if err := checkID(postID); err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, err)
	}
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) CreatePost(ctx context.Context, author *models.User, form *forms.PostForm) (*models.Post, error) {
	if err := p.checkGroup(ctx, form); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     form.Text,
		GroupID:  form.GroupID(),
		AuthorID: author.UserID,
	}

	if form.Image != nil {
		objectName, err := p.uploadImage(ctx, form.Image)
		if err != nil {
			return nil, err
		}
		post.Image = objectName
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		p.removeImage(ctx, post.Image)
		return nil, err
	}

	post.AuthorUsername = author.Username
	return post, nil
}

// UpdatePost applies the form to the post. Only the author may edit; anyone
// else gets ErrForbidden and the stored post is left as it was.
func (p *postService) UpdatePost(ctx context.Context, editor *models.User, postID string, form *forms.PostForm) (*models.Post, error) {
	post, err := p.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if editor == nil || post.AuthorID != editor.UserID {
		return post, fmt.Errorf("post %s: %w", postID, models.ErrForbidden)
	}

	if err := p.checkGroup(ctx, form); err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Text = form.Text
	post.GroupID = form.GroupID()

	switch {
	case form.Image != nil:
		objectName, err := p.uploadImage(ctx, form.Image)
		if err != nil {
			return nil, err
		}
		post.Image = objectName
	case form.ClearImage:
		post.Image = ""
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		if post.Image != oldImage {
			p.removeImage(ctx, post.Image)
		}
		return nil, err
	}

	if post.Image != oldImage {
		p.removeImage(ctx, oldImage)
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID string) error {
	post, err := p.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	p.removeImage(ctx, post.Image)
	return nil
}

// checkGroup turns an unknown group into a field error on the form.
func (p *postService) checkGroup(ctx context.Context, form *forms.PostForm) error {
	if form.Group == "" {
		return nil
	}

	_, err := p.groupRepo.GetByID(ctx, form.Group)
	if errors.Is(err, models.ErrNotFound) {
		return forms.Errors{"group": {"Select a valid choice. That choice is not one of the available choices."}}
	}
	return err
}

func (p *postService) uploadImage(ctx context.Context, image *forms.Upload) (string, error) {
	if p.storage == nil {
		return "", errors.New("image storage is not configured")
	}

	objectName, err := p.storage.UploadImage(ctx, image.Filename, image.Extension, image.Reader(), image.Size(), image.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return objectName, nil
}

// removeImage deletes a stored object; failures only leave an orphan behind.
func (p *postService) removeImage(ctx context.Context, objectName string) {
	if objectName == "" || p.storage == nil {
		return
	}
	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		p.log.WithError(err).WithField("object", objectName).Warn("failed to delete image")
	}
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.ErrNotFound
	}
	return nil
}
