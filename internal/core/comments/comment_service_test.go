package comments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Tether/internal/core/actor"
	"Tether/internal/core/apperr"
	"Tether/internal/core/posts"
	"Tether/internal/core/txn"
)

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, tx txn.Tx, comment *Comment) error {
	args := m.Called(ctx, tx, comment)
	return args.Error(0)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id int64) (*Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *mockCommentRepo) GetAll(ctx context.Context) ([]*Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Comment), args.Error(1)
}

func (m *mockCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Comment), args.Error(1)
}

func (m *mockCommentRepo) Update(ctx context.Context, tx txn.Tx, comment *Comment) error {
	args := m.Called(ctx, tx, comment)
	return args.Error(0)
}

func (m *mockCommentRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *mockCommentRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepo) DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error) {
	args := m.Called(ctx, tx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepo) DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockGuard struct {
	mock.Mock
}

func (m *mockGuard) RequireUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGuard) RequirePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPostLookup struct {
	mock.Mock
}

func (m *mockPostLookup) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCommentRepo)
	guard := new(mockGuard)
	svc := NewCommentService(repo, guard, new(mockPostLookup), nil)

	guard.On("RequireUser", ctx, int64(2)).Return(nil)
	guard.On("RequirePost", ctx, int64(10)).Return(nil)
	repo.On("Create", ctx, nil, mock.MatchedBy(func(c *Comment) bool {
		return c.UserID == 2 && c.PostID == 10 && c.Text == "nice"
	})).Return(nil)

	comment, err := svc.CreateComment(ctx, actor.Actor{UserID: 2}, CreateCommentRequest{PostID: 10, Text: "nice"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), comment.PostID)
	guard.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCommentService_CreateComment_PostMissing(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCommentRepo)
	guard := new(mockGuard)
	svc := NewCommentService(repo, guard, new(mockPostLookup), nil)

	guard.On("RequireUser", ctx, int64(2)).Return(nil)
	guard.On("RequirePost", ctx, int64(10)).Return(posts.ErrNotFound)

	_, err := svc.CreateComment(ctx, actor.Actor{UserID: 2}, CreateCommentRequest{PostID: 10, Text: "nice"})
	assert.ErrorIs(t, err, posts.ErrNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	svc := NewCommentService(new(mockCommentRepo), new(mockGuard), new(mockPostLookup), nil)

	_, err := svc.CreateComment(context.Background(), actor.Actor{UserID: 2}, CreateCommentRequest{PostID: 0, Text: "x"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.CreateComment(context.Background(), actor.Actor{UserID: 2}, CreateCommentRequest{PostID: 1, Text: ""})
	assert.True(t, apperr.IsValidation(err))
}

func TestCommentService_UpdateComment_OnlyAuthor(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo, new(mockGuard), new(mockPostLookup), nil)

	repo.On("GetByID", ctx, int64(4)).Return(&Comment{ID: 4, UserID: 2, PostID: 10, Text: "old"}, nil)
	repo.On("Update", ctx, nil, mock.Anything).Return(nil)

	_, err := svc.UpdateComment(ctx, actor.Actor{UserID: 3}, 4, UpdateCommentRequest{Text: "new"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	updated, err := svc.UpdateComment(ctx, actor.Actor{UserID: 2}, 4, UpdateCommentRequest{Text: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Text)
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	comment := &Comment{ID: 4, UserID: 2, PostID: 10}

	tests := []struct {
		name    string
		caller  actor.Actor
		wantErr error
	}{
		{name: "author", caller: actor.Actor{UserID: 2}},
		{name: "post owner", caller: actor.Actor{UserID: 1}},
		{name: "admin", caller: actor.Actor{UserID: 99, Admin: true}},
		{name: "stranger", caller: actor.Actor{UserID: 3}, wantErr: ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockCommentRepo)
			lookup := new(mockPostLookup)
			svc := NewCommentService(repo, new(mockGuard), lookup, nil)

			repo.On("GetByID", ctx, int64(4)).Return(comment, nil)
			lookup.On("GetByID", ctx, int64(10)).Return(&posts.Post{ID: 10, UserID: 1}, nil)
			repo.On("Delete", ctx, nil, int64(4)).Return(nil)

			err := svc.DeleteComment(ctx, tt.caller, 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "Delete", ctx, nil, int64(4))
		})
	}
}
