package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
)

type followFixture struct {
	follows *MockFollowRepository
	users   *MockUserRepository
	posts   *MockPostRepository
	svc     FollowService
}

func newFollowFixture() *followFixture {
	f := &followFixture{
		follows: new(MockFollowRepository),
		users:   new(MockUserRepository),
		posts:   new(MockPostRepository),
	}
	f.svc = NewFollowService(f.follows, f.users, f.posts, paginator.New(10))
	return f
}

var (
	reader = &models.User{UserID: "reader-id", Username: "reader"}
	writer = &models.User{UserID: "writer-id", Username: "writer"}
)

func TestFollowService_FollowTwiceIsIdempotent(t *testing.T) {
	f := newFollowFixture()
	ctx := context.Background()

	f.users.On("GetUserByUsername", ctx, "writer").Return(writer, nil)
	pair := mock.MatchedBy(func(fl *models.Follow) bool {
		return fl.UserID == "reader-id" && fl.AuthorID == "writer-id"
	})
	f.follows.On("Create", ctx, pair).Return(true, nil).Once()
	f.follows.On("Create", ctx, pair).Return(false, nil).Once()

	author, err := f.svc.Follow(ctx, reader, "writer")
	require.NoError(t, err)
	assert.Equal(t, writer, author)

	_, err = f.svc.Follow(ctx, reader, "writer")
	require.NoError(t, err)

	f.follows.AssertExpectations(t)
}

func TestFollowService_SelfFollowRejected(t *testing.T) {
	f := newFollowFixture()

	f.users.On("GetUserByUsername", mock.Anything, "writer").Return(writer, nil)

	author, err := f.svc.Follow(context.Background(), writer, "writer")
	assert.ErrorIs(t, err, models.ErrSelfFollow)
	assert.Equal(t, writer, author)
	f.follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollowService_UnknownAuthor(t *testing.T) {
	f := newFollowFixture()

	f.users.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, models.ErrNotFound)

	_, err := f.svc.Follow(context.Background(), reader, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.svc.Unfollow(context.Background(), reader, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFollowService_UnfollowWhenAbsent(t *testing.T) {
	f := newFollowFixture()

	f.users.On("GetUserByUsername", mock.Anything, "writer").Return(writer, nil)
	f.follows.On("Delete", mock.Anything, "reader-id", "writer-id").Return(false, nil)

	author, err := f.svc.Unfollow(context.Background(), reader, "writer")
	require.NoError(t, err)
	assert.Equal(t, writer, author)
	f.follows.AssertExpectations(t)
}

func TestFollowService_IsFollowing(t *testing.T) {
	f := newFollowFixture()
	ctx := context.Background()

	f.follows.On("Exists", ctx, "reader-id", "writer-id").Return(true, nil)

	following, err := f.svc.IsFollowing(ctx, reader, writer)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = f.svc.IsFollowing(ctx, nil, writer)
	require.NoError(t, err)
	assert.False(t, following)

	following, err = f.svc.IsFollowing(ctx, writer, writer)
	require.NoError(t, err)
	assert.False(t, following)

	f.follows.AssertNumberOfCalls(t, "Exists", 1)
}

func TestFollowService_Feed(t *testing.T) {
	f := newFollowFixture()
	filter := repository.PostFilter{FollowerID: "reader-id"}

	f.posts.On("Count", mock.Anything, filter).Return(1, nil)
	f.posts.On("List", mock.Anything, filter, 10, 0).Return([]*models.Post{{Text: "from writer"}}, nil)

	page, err := f.svc.Feed(context.Background(), reader, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "from writer", page.Items[0].Text)
	assert.False(t, page.HasNext())
}
