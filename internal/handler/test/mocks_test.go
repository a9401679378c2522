package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, form *forms.SignupForm) (*models.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Profile(ctx context.Context, username string, viewer *models.User, rawPage string) (*service.Profile, error) {
	args := m.Called(ctx, username, viewer, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) List(ctx context.Context) ([]*models.Group, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Group), args.Error(1)
}

func (m *MockGroupService) Posts(ctx context.Context, slug, rawPage string) (*models.Group, *service.PostPage, error) {
	args := m.Called(ctx, slug, rawPage)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Group), args.Get(1).(*service.PostPage), args.Error(2)
}

func (m *MockGroupService) Create(ctx context.Context, title, slug, description string) (*models.Group, error) {
	args := m.Called(ctx, title, slug, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, filter repository.PostFilter, rawPage string) (*service.PostPage, error) {
	args := m.Called(ctx, filter, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostPage), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, author *models.User, form *forms.PostForm) (*models.Post, error) {
	args := m.Called(ctx, author, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, editor *models.User, postID string, form *forms.PostForm) (*models.Post, error) {
	args := m.Called(ctx, editor, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, author *models.User, postID string, form *forms.CommentForm) (*models.Comment, error) {
	args := m.Called(ctx, author, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListForPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	args := m.Called(ctx, user, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockFollowService) Unfollow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	args := m.Called(ctx, user, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockFollowService) IsFollowing(ctx context.Context, user *models.User, author *models.User) (bool, error) {
	args := m.Called(ctx, user, author)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowService) Feed(ctx context.Context, user *models.User, rawPage string) (*service.PostPage, error) {
	args := m.Called(ctx, user, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostPage), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck() error {
	args := m.Called()
	return args.Error(0)
}
