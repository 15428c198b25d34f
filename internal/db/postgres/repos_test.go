package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Tether/internal/core/apperr"
	"Tether/internal/core/cascade"
	"Tether/internal/core/comments"
	"Tether/internal/core/interactions"
	"Tether/internal/core/messages"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

func TestPostRepo_MissingAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	err := repo.Create(context.Background(), nil, &posts.Post{UserID: 999, Text: "orphan"})
	assert.ErrorIs(t, err, posts.ErrAuthorNotFound)
}

func TestCommentRepo_MissingParents(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, NewUserRepository(db), "erin@example.com")
	repo := NewCommentRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, nil, &comments.Comment{UserID: user.ID, PostID: 999, Text: "x"})
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestReactionRepo_UniqueConstraint(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, NewUserRepository(db), "frank@example.com")
	post := &posts.Post{UserID: user.ID, Text: "p"}
	require.NoError(t, NewPostRepository(db).Create(ctx, nil, post))
	repo := NewReactionRepository(db)

	require.NoError(t, repo.Create(ctx, nil, &reactions.Reaction{UserID: user.ID, PostID: post.ID, Kind: reactions.KindLike}))

	err := repo.Create(ctx, nil, &reactions.Reaction{UserID: user.ID, PostID: post.ID, Kind: reactions.KindAngry})
	assert.ErrorIs(t, err, reactions.ErrReactionExists)

	ok, err := repo.ExistsForUserAndPost(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInteractionRepo_SymmetricUniqueness(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userRepo := NewUserRepository(db)
	a := createTestUser(t, userRepo, "a@example.com")
	b := createTestUser(t, userRepo, "b@example.com")
	repo := NewInteractionRepository(db)

	require.NoError(t, repo.Create(ctx, nil, &interactions.Interaction{User1ID: a.ID, User2ID: b.ID, Status: interactions.StatusFriend}))

	err := repo.Create(ctx, nil, &interactions.Interaction{User1ID: b.ID, User2ID: a.ID, Status: interactions.StatusFriend})
	assert.ErrorIs(t, err, interactions.ErrInteractionExists)

	ok, err := repo.ExistsBetweenUsers(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	err = repo.Create(ctx, nil, &interactions.Interaction{User1ID: a.ID, User2ID: a.ID, Status: interactions.StatusFriend})
	assert.True(t, apperr.IsValidation(err))
}

type pgFixture struct {
	users        users.Repository
	posts        posts.Repository
	comments     comments.Repository
	reactions    reactions.Repository
	interactions interactions.Repository
	messages     messages.Repository
	txm          *TxManager
}

type failingPurger struct {
	reactions.Repository
}

func (failingPurger) DeleteByUserID(context.Context, txn.Tx, int64) (int64, error) {
	return 0, errors.New("injected fault")
}

func TestUserCascade_Postgres(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	f := pgFixture{
		users:        NewUserRepository(db),
		posts:        NewPostRepository(db),
		comments:     NewCommentRepository(db),
		reactions:    NewReactionRepository(db),
		interactions: NewInteractionRepository(db),
		messages:     NewMessageRepository(db),
		txm:          NewTxManager(db),
	}

	u1 := createTestUser(t, f.users, "one@example.com")
	u2 := createTestUser(t, f.users, "two@example.com")
	post := &posts.Post{UserID: u1.ID, Text: "P1"}
	require.NoError(t, f.posts.Create(ctx, nil, post))
	require.NoError(t, f.comments.Create(ctx, nil, &comments.Comment{UserID: u2.ID, PostID: post.ID, Text: "C1"}))
	require.NoError(t, f.comments.Create(ctx, nil, &comments.Comment{UserID: u1.ID, PostID: post.ID, Text: "C0"}))
	require.NoError(t, f.reactions.Create(ctx, nil, &reactions.Reaction{UserID: u2.ID, PostID: post.ID, Kind: reactions.KindLike}))
	require.NoError(t, f.interactions.Create(ctx, nil, &interactions.Interaction{User1ID: u1.ID, User2ID: u2.ID, Status: interactions.StatusFriend}))
	require.NoError(t, f.messages.Create(ctx, nil, &messages.Message{SenderID: u1.ID, ReceiverID: u2.ID, Text: "hi"}))

	deps := cascade.UserDeleterDeps{
		Users:        f.users,
		Posts:        f.posts,
		Comments:     f.comments,
		Reactions:    failingPurger{f.reactions},
		Interactions: f.interactions,
		Messages:     f.messages,
	}

	// a fault after the comment purge leaves everything in place
	err := cascade.NewUserDeleter(f.txm, deps, nil).DeleteUser(ctx, u1.ID)
	require.Error(t, err)
	list, err := f.comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	deps.Reactions = f.reactions
	require.NoError(t, cascade.NewUserDeleter(f.txm, deps, nil).DeleteUser(ctx, u1.ID))

	_, err = f.users.GetByID(ctx, u1.ID)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
	_, err = f.posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, posts.ErrNotFound)
	allComments, err := f.comments.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, allComments)
	allReactions, err := f.reactions.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, allReactions)
	_, err = f.interactions.GetBetweenUsers(ctx, u2.ID, u1.ID)
	assert.ErrorIs(t, err, interactions.ErrInteractionNotFound)
	conv, err := f.messages.ListConversation(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, conv)

	_, err = f.users.GetByID(ctx, u2.ID)
	require.NoError(t, err)
}

func TestTxManager_FinishedTx(t *testing.T) {
	db := setupTestDB(t)
	txm := NewTxManager(db)

	tx, err := txm.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.ErrorIs(t, tx.Rollback(), txn.ErrTxDone)
}
