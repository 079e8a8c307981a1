package services

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedUsers registers n users and returns them; user 1 is the admin.
func seedUsers(t *testing.T, s *IdentityService, n int) []*models.User {
	t.Helper()
	users := make([]*models.User, n)
	names := []string{"Alice", "Bob", "Carol", "Dave"}
	for i := 0; i < n; i++ {
		u, err := s.Register(names[i], names[i]+"@example.com", "password")
		require.NoError(t, err)
		users[i] = u
	}
	return users
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 1)
	s := NewContentService(db)

	_, err := s.CreatePost("Hello", "sub", "body", "", users[0].ID)
	require.NoError(t, err)

	_, err = s.CreatePost("Hello", "other sub", "other body", "", users[0].ID)
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Where("title = ?", "Hello").Count(&count).Error)
	assert.Equal(t, int64(1), count, "exactly one Hello post should remain")
}

func TestUpdatePostReassignsAuthorKeepsDate(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 2)
	s := NewContentService(db)

	post, err := s.CreatePost("T1", "sub", "body", "", users[0].ID)
	require.NoError(t, err)
	created := post.CreatedAt

	updated, err := s.UpdatePost(post.ID, "T2", "new sub", "new body", "http://img", users[1].ID)
	require.NoError(t, err)

	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, users[1].ID, updated.UserID, "editing re-stamps the author to the editor")
	assert.WithinDuration(t, created, updated.CreatedAt, time.Second, "creation date is immutable")

	got, err := s.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, users[1].ID, got.UserID)
}

func TestUpdatePostNotFound(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 1)
	s := NewContentService(db)

	_, err := s.UpdatePost(42, "T", "s", "b", "", users[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostDuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 1)
	s := NewContentService(db)

	_, err := s.CreatePost("First", "s", "b", "", users[0].ID)
	require.NoError(t, err)
	second, err := s.CreatePost("Second", "s", "b", "", users[0].ID)
	require.NoError(t, err)

	_, err = s.UpdatePost(second.ID, "First", "s", "b", "", users[0].ID)
	assert.ErrorIs(t, err, ErrDuplicateTitle)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 2)
	s := NewContentService(db)

	post, err := s.CreatePost("T1", "s", "b", "", users[0].ID)
	require.NoError(t, err)
	_, err = s.AddComment(post.ID, users[1].ID, "first!")
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(post.ID))

	_, err = s.GetPost(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count, "no comment may reference a deleted post")
}

func TestDeletePostNotFound(t *testing.T) {
	s := NewContentService(newTestDB(t))
	assert.ErrorIs(t, s.DeletePost(42), ErrNotFound)
}

func TestListPostsOrderAndCommentCounts(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 1)
	s := NewContentService(db)

	first, err := s.CreatePost("A", "s", "b", "", users[0].ID)
	require.NoError(t, err)
	second, err := s.CreatePost("B", "s", "b", "", users[0].ID)
	require.NoError(t, err)

	_, err = s.AddComment(second.ID, users[0].ID, "hi")
	require.NoError(t, err)
	_, err = s.AddComment(second.ID, users[0].ID, "again")
	require.NoError(t, err)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, first.ID, posts[0].ID, "posts are ordered by id ascending")
	assert.Equal(t, second.ID, posts[1].ID)
	assert.Equal(t, 0, posts[0].CommentCount)
	assert.Equal(t, 2, posts[1].CommentCount)
	assert.Equal(t, "Alice", posts[0].User.Name, "author is preloaded")
}

func TestAddCommentToMissingPost(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 1)
	s := NewContentService(db)

	_, err := s.AddComment(42, users[0].ID, "hello?")
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count, "no comment row may be written for a missing post")
}

func TestListCommentsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, NewIdentityService(db), 2)
	s := NewContentService(db)

	post, err := s.CreatePost("T1", "s", "b", "", users[0].ID)
	require.NoError(t, err)

	bodies := []string{"one", "two", "three"}
	for _, b := range bodies {
		_, err = s.AddComment(post.ID, users[1].ID, b)
		require.NoError(t, err)
	}

	comments, err := s.ListComments(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	for i, b := range bodies {
		assert.Equal(t, b, comments[i].Body)
		if i > 0 {
			assert.Greater(t, comments[i].ID, comments[i-1].ID)
		}
	}
	assert.Equal(t, "Bob", comments[0].User.Name, "comment author is preloaded")
}
