package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Tether/internal/core/actor"
	"Tether/internal/core/apperr"
	"Tether/internal/core/interactions"
	"Tether/internal/core/txn"
)

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, tx txn.Tx, msg *Message) error {
	return m.Called(ctx, tx, msg).Error(0)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id int64) (*Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

func (m *mockMessageRepo) GetAll(ctx context.Context) ([]*Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

func (m *mockMessageRepo) ListConversation(ctx context.Context, a, b int64) ([]*Message, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

func (m *mockMessageRepo) Update(ctx context.Context, tx txn.Tx, msg *Message) error {
	return m.Called(ctx, tx, msg).Error(0)
}

func (m *mockMessageRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *mockMessageRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserGuard struct {
	mock.Mock
}

func (m *mockUserGuard) RequireUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBlockLookup struct {
	mock.Mock
}

func (m *mockBlockLookup) GetBetweenUsers(ctx context.Context, a, b int64) (*interactions.Interaction, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interactions.Interaction), args.Error(1)
}

func TestMessageService_SendMessage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		interaction *interactions.Interaction
		lookupErr   error
		wantErr     error
	}{
		{name: "no interaction", lookupErr: interactions.ErrInteractionNotFound},
		{name: "friends", interaction: &interactions.Interaction{User1ID: 1, User2ID: 2, Status: interactions.StatusFriend}},
		{name: "blocked", interaction: &interactions.Interaction{User1ID: 2, User2ID: 1, Status: interactions.StatusBlocked}, wantErr: ErrBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockMessageRepo)
			guard := new(mockUserGuard)
			blocks := new(mockBlockLookup)
			svc := NewService(repo, guard, blocks, nil)

			guard.On("RequireUser", ctx, mock.Anything).Return(nil)
			if tt.interaction != nil {
				blocks.On("GetBetweenUsers", ctx, int64(1), int64(2)).Return(tt.interaction, nil)
			} else {
				blocks.On("GetBetweenUsers", ctx, int64(1), int64(2)).Return(nil, tt.lookupErr)
			}
			repo.On("Create", ctx, nil, mock.Anything).Return(nil)

			msg, err := svc.SendMessage(ctx, actor.Actor{UserID: 1}, SendMessageRequest{ReceiverID: 2, Text: "hi"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, apperr.IsForbidden(err))
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), msg.SenderID)
			assert.Equal(t, int64(2), msg.ReceiverID)
		})
	}
}

func TestMessageService_SendMessage_LookupFault(t *testing.T) {
	ctx := context.Background()
	guard := new(mockUserGuard)
	blocks := new(mockBlockLookup)
	svc := NewService(new(mockMessageRepo), guard, blocks, nil)

	fault := errors.New("connection reset")
	guard.On("RequireUser", ctx, mock.Anything).Return(nil)
	blocks.On("GetBetweenUsers", ctx, int64(1), int64(2)).Return(nil, fault)

	_, err := svc.SendMessage(ctx, actor.Actor{UserID: 1}, SendMessageRequest{ReceiverID: 2, Text: "hi"})
	assert.ErrorIs(t, err, fault)
}

func TestMessageService_SendMessage_ToSelf(t *testing.T) {
	svc := NewService(new(mockMessageRepo), new(mockUserGuard), new(mockBlockLookup), nil)

	_, err := svc.SendMessage(context.Background(), actor.Actor{UserID: 1}, SendMessageRequest{ReceiverID: 1, Text: "hi"})
	assert.True(t, apperr.IsValidation(err))
}

func TestMessageService_GetMessage(t *testing.T) {
	ctx := context.Background()
	repo := new(mockMessageRepo)
	svc := NewService(repo, new(mockUserGuard), new(mockBlockLookup), nil)

	repo.On("GetByID", ctx, int64(3)).Return(&Message{ID: 3, SenderID: 1, ReceiverID: 2}, nil)

	_, err := svc.GetMessage(ctx, actor.Actor{UserID: 2}, 3)
	require.NoError(t, err)

	_, err = svc.GetMessage(ctx, actor.Actor{UserID: 4}, 3)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestMessageService_EditAndDelete_SenderOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(mockMessageRepo)
	svc := NewService(repo, new(mockUserGuard), new(mockBlockLookup), nil)

	repo.On("GetByID", ctx, int64(3)).Return(&Message{ID: 3, SenderID: 1, ReceiverID: 2, Text: "hi"}, nil)
	repo.On("Update", ctx, nil, mock.Anything).Return(nil)
	repo.On("Delete", ctx, nil, int64(3)).Return(nil)

	_, err := svc.EditMessage(ctx, actor.Actor{UserID: 2}, 3, EditMessageRequest{Text: "edited"})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.ErrorIs(t, svc.DeleteMessage(ctx, actor.Actor{UserID: 2}, 3), ErrNotAuthorized)

	edited, err := svc.EditMessage(ctx, actor.Actor{UserID: 1}, 3, EditMessageRequest{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Text)
	require.NoError(t, svc.DeleteMessage(ctx, actor.Actor{UserID: 1}, 3))
}
