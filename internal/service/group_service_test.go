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

func TestGroupService_Posts(t *testing.T) {
	groups := new(MockGroupRepository)
	posts := new(MockPostRepository)
	svc := NewGroupService(groups, posts, paginator.New(10))

	group := &models.Group{GroupID: groupID, Title: "Test", Slug: "test", Description: "d"}
	filter := repository.PostFilter{GroupID: groupID}
	groups.On("GetBySlug", mock.Anything, "test").Return(group, nil)
	posts.On("Count", mock.Anything, filter).Return(1, nil)
	posts.On("List", mock.Anything, filter, 10, 0).Return([]*models.Post{{Text: "hello", GroupID: &group.GroupID}}, nil)

	got, page, err := svc.Posts(context.Background(), "test", "")
	require.NoError(t, err)
	assert.Equal(t, group, got)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "hello", page.Items[0].Text)
}

func TestGroupService_PostsUnknownSlug(t *testing.T) {
	groups := new(MockGroupRepository)
	posts := new(MockPostRepository)
	svc := NewGroupService(groups, posts, paginator.New(10))

	groups.On("GetBySlug", mock.Anything, "nope").Return(nil, models.ErrNotFound)

	_, _, err := svc.Posts(context.Background(), "nope", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
	posts.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestGroupService_Create(t *testing.T) {
	groups := new(MockGroupRepository)
	svc := NewGroupService(groups, new(MockPostRepository), paginator.New(10))

	groups.On("Create", mock.Anything, mock.MatchedBy(func(g *models.Group) bool {
		return g.Title == "Test" && g.Slug == "test"
	})).Return(nil)

	group, err := svc.Create(context.Background(), " Test ", "test", "d")
	require.NoError(t, err)
	assert.Equal(t, "Test", group.Title)

	_, err = svc.Create(context.Background(), "", "test", "d")
	assert.Error(t, err)
	groups.AssertNumberOfCalls(t, "Create", 1)
}

func TestGroupService_Delete(t *testing.T) {
	groups := new(MockGroupRepository)
	svc := NewGroupService(groups, new(MockPostRepository), paginator.New(10))

	groups.On("GetBySlug", mock.Anything, "test").Return(&models.Group{GroupID: groupID, Slug: "test"}, nil)
	groups.On("Delete", mock.Anything, groupID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "test"))
	groups.AssertExpectations(t)
}
