package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yatube/internal/forms"
	"yatube/internal/models"
)

func TestCommentService_AddComment(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("GetByID", mock.Anything, postID).Return(&models.Post{PostID: postID}, nil)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.Text == "nice" && c.PostID == postID && c.AuthorID == "reader-id"
	})).Return(nil)

	comment, err := svc.AddComment(context.Background(), reader, postID, &forms.CommentForm{Text: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "reader", comment.AuthorUsername)
	comments.AssertExpectations(t)
}

func TestCommentService_AddCommentMissingPost(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("GetByID", mock.Anything, postID).Return(nil, models.ErrNotFound)

	_, err := svc.AddComment(context.Background(), reader, postID, &forms.CommentForm{Text: "nice"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.AddComment(context.Background(), reader, "42", &forms.CommentForm{Text: "nice"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
