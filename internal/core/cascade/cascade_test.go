package cascade_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
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
	"Tether/internal/db/memory"
)

type fixture struct {
	store        *memory.Store
	users        users.Repository
	posts        posts.Repository
	comments     comments.Repository
	reactions    reactions.Repository
	interactions interactions.Repository
	messages     messages.Repository
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{
		store:        s,
		users:        memory.NewUserRepository(s),
		posts:        memory.NewPostRepository(s),
		comments:     memory.NewCommentRepository(s),
		reactions:    memory.NewReactionRepository(s),
		interactions: memory.NewInteractionRepository(s),
		messages:     memory.NewMessageRepository(s),
	}
}

func (f *fixture) userDeleter(reactionStore cascade.PostChildPurger) *cascade.UserDeleter {
	if reactionStore == nil {
		reactionStore = f.reactions
	}
	return cascade.NewUserDeleter(f.store, cascade.UserDeleterDeps{
		Users:        f.users,
		Posts:        f.posts,
		Comments:     f.comments,
		Reactions:    reactionStore,
		Interactions: f.interactions,
		Messages:     f.messages,
	}, nil)
}

func (f *fixture) postDeleter() *cascade.PostDeleter {
	return cascade.NewPostDeleter(f.store, f.posts, f.comments, f.reactions, nil)
}

// graph is the two-user scenario: user 1 posts, user 2 comments and reacts,
// they are friends, and user 1 messages user 2
type graph struct {
	u1, u2      *users.User
	post        *posts.Post
	comment     *comments.Comment
	reaction    *reactions.Reaction
	interaction *interactions.Interaction
	message     *messages.Message
}

func (f *fixture) seed(t *testing.T, tag string) graph {
	t.Helper()
	ctx := context.Background()
	var g graph

	g.u1 = &users.User{Name: "One", Email: fmt.Sprintf("one-%s@example.com", tag), Role: users.RoleUser}
	g.u2 = &users.User{Name: "Two", Email: fmt.Sprintf("two-%s@example.com", tag), Role: users.RoleUser}
	require.NoError(t, f.users.Create(ctx, nil, g.u1))
	require.NoError(t, f.users.Create(ctx, nil, g.u2))

	g.post = &posts.Post{UserID: g.u1.ID, Text: "P1"}
	require.NoError(t, f.posts.Create(ctx, nil, g.post))

	g.comment = &comments.Comment{UserID: g.u2.ID, PostID: g.post.ID, Text: "C1"}
	require.NoError(t, f.comments.Create(ctx, nil, g.comment))

	g.reaction = &reactions.Reaction{UserID: g.u2.ID, PostID: g.post.ID, Kind: reactions.KindLike}
	require.NoError(t, f.reactions.Create(ctx, nil, g.reaction))

	g.interaction = &interactions.Interaction{User1ID: g.u1.ID, User2ID: g.u2.ID, Status: interactions.StatusFriend}
	require.NoError(t, f.interactions.Create(ctx, nil, g.interaction))

	g.message = &messages.Message{SenderID: g.u1.ID, ReceiverID: g.u2.ID, Text: "hi"}
	require.NoError(t, f.messages.Create(ctx, nil, g.message))

	return g
}

// assertReferencesGone checks that no row in any dependent table points at userID
func (f *fixture) assertReferencesGone(t *testing.T, userID int64) {
	t.Helper()
	ctx := context.Background()

	allPosts, err := f.posts.GetAll(ctx)
	require.NoError(t, err)
	owned := map[int64]bool{}
	for _, p := range allPosts {
		assert.NotEqual(t, userID, p.UserID, "post %d still owned", p.ID)
		owned[p.ID] = true
	}

	allComments, err := f.comments.GetAll(ctx)
	require.NoError(t, err)
	for _, c := range allComments {
		assert.NotEqual(t, userID, c.UserID)
		assert.True(t, owned[c.PostID], "comment %d on deleted post", c.ID)
	}

	allReactions, err := f.reactions.GetAll(ctx)
	require.NoError(t, err)
	for _, r := range allReactions {
		assert.NotEqual(t, userID, r.UserID)
		assert.True(t, owned[r.PostID], "reaction %d on deleted post", r.ID)
	}

	allInteractions, err := f.interactions.GetAll(ctx)
	require.NoError(t, err)
	for _, i := range allInteractions {
		assert.False(t, i.Involves(userID))
	}

	allMessages, err := f.messages.GetAll(ctx)
	require.NoError(t, err)
	for _, m := range allMessages {
		assert.False(t, m.Involves(userID))
	}
}

func TestDeleteUser_TwoUserScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.seed(t, "a")

	require.NoError(t, f.userDeleter(nil).DeleteUser(ctx, g.u1.ID))

	_, err := f.users.GetByID(ctx, g.u1.ID)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
	_, err = f.posts.GetByID(ctx, g.post.ID)
	assert.ErrorIs(t, err, posts.ErrNotFound)
	_, err = f.comments.GetByID(ctx, g.comment.ID)
	assert.ErrorIs(t, err, comments.ErrCommentNotFound)
	_, err = f.reactions.GetByID(ctx, g.reaction.ID)
	assert.ErrorIs(t, err, reactions.ErrReactionNotFound)
	_, err = f.interactions.GetBetweenUsers(ctx, g.u1.ID, g.u2.ID)
	assert.ErrorIs(t, err, interactions.ErrInteractionNotFound)
	_, err = f.messages.GetByID(ctx, g.message.ID)
	assert.ErrorIs(t, err, messages.ErrMessageNotFound)

	survivor, err := f.users.GetByID(ctx, g.u2.ID)
	require.NoError(t, err)
	assert.Equal(t, "Two", survivor.Name)
}

func TestDeleteUser_Completeness(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.seed(t, "a")
	other := f.seed(t, "b")

	// cross-link the two graphs through user 1 of the first
	require.NoError(t, f.comments.Create(ctx, nil, &comments.Comment{UserID: g.u1.ID, PostID: other.post.ID, Text: "x"}))
	require.NoError(t, f.reactions.Create(ctx, nil, &reactions.Reaction{UserID: g.u1.ID, PostID: other.post.ID, Kind: reactions.KindSad}))
	require.NoError(t, f.reactions.Create(ctx, nil, &reactions.Reaction{UserID: other.u1.ID, PostID: g.post.ID, Kind: reactions.KindHeart}))
	require.NoError(t, f.interactions.Create(ctx, nil, &interactions.Interaction{User1ID: other.u2.ID, User2ID: g.u1.ID, Status: interactions.StatusSubscriber}))
	require.NoError(t, f.messages.Create(ctx, nil, &messages.Message{SenderID: other.u1.ID, ReceiverID: g.u1.ID, Text: "yo"}))

	require.NoError(t, f.userDeleter(nil).DeleteUser(ctx, g.u1.ID))
	f.assertReferencesGone(t, g.u1.ID)

	// the other graph keeps everything that did not involve the deleted user
	_, err := f.posts.GetByID(ctx, other.post.ID)
	require.NoError(t, err)
	_, err = f.comments.GetByID(ctx, other.comment.ID)
	require.NoError(t, err)
	_, err = f.reactions.GetByID(ctx, other.reaction.ID)
	require.NoError(t, err)
	_, err = f.messages.GetByID(ctx, other.message.ID)
	require.NoError(t, err)
}

func TestDeleteUser_RepeatedDeleteIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.seed(t, "a")
	d := f.userDeleter(nil)

	require.NoError(t, d.DeleteUser(ctx, g.u1.ID))

	err := d.DeleteUser(ctx, g.u1.ID)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.IsDeleteFailed(err))
}

// faultyReactions fails the first purge step that touches reactions in either cascade
type faultyReactions struct {
	reactions.Repository
	err error
}

func (f faultyReactions) DeleteByUserID(context.Context, txn.Tx, int64) (int64, error) {
	return 0, f.err
}

func (f faultyReactions) DeleteByPostID(context.Context, txn.Tx, int64) (int64, error) {
	return 0, f.err
}

func TestDeleteUser_FaultRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.seed(t, "a")
	// a comment by user 1 so the comment purge has something to remove
	own := &comments.Comment{UserID: g.u1.ID, PostID: g.post.ID, Text: "mine"}
	require.NoError(t, f.comments.Create(ctx, nil, own))

	fault := errors.New("disk on fire")
	err := f.userDeleter(faultyReactions{Repository: f.reactions, err: fault}).DeleteUser(ctx, g.u1.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, fault)
	assert.Contains(t, err.Error(), "reactions_by_user")

	_, err = f.users.GetByID(ctx, g.u1.ID)
	require.NoError(t, err)
	_, err = f.posts.GetByID(ctx, g.post.ID)
	require.NoError(t, err)
	_, err = f.comments.GetByID(ctx, g.comment.ID)
	require.NoError(t, err)
	_, err = f.comments.GetByID(ctx, own.ID)
	require.NoError(t, err)
	_, err = f.reactions.GetByID(ctx, g.reaction.ID)
	require.NoError(t, err)
	_, err = f.interactions.GetByID(ctx, g.interaction.ID)
	require.NoError(t, err)
	_, err = f.messages.GetByID(ctx, g.message.ID)
	require.NoError(t, err)

	// the store is usable again after the rollback
	require.NoError(t, f.userDeleter(nil).DeleteUser(ctx, g.u1.ID))
}

// vanishingUsers removes the user between the existence check and the transaction
type vanishingUsers struct {
	users.Repository
}

func (v vanishingUsers) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := v.Repository.Exists(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	return true, v.Repository.Delete(ctx, nil, id)
}

func TestDeleteUser_VanishedRootIsDeleteFailed(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := &users.User{Name: "Lonely", Email: "lonely@example.com"}
	require.NoError(t, f.users.Create(ctx, nil, u))

	d := cascade.NewUserDeleter(f.store, cascade.UserDeleterDeps{
		Users:        vanishingUsers{f.users},
		Posts:        f.posts,
		Comments:     f.comments,
		Reactions:    f.reactions,
		Interactions: f.interactions,
		Messages:     f.messages,
	}, nil)

	err := d.DeleteUser(ctx, u.ID)
	assert.True(t, apperr.IsDeleteFailed(err))
	assert.False(t, apperr.IsNotFound(err))

	var deleteErr *apperr.DeleteError
	require.ErrorAs(t, err, &deleteErr)
	assert.Equal(t, "user", deleteErr.Entity)
	assert.Equal(t, u.ID, deleteErr.ID)
}

func TestDeleteUser_CancelledBeforeBegin(t *testing.T) {
	f := newFixture()
	g := f.seed(t, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.userDeleter(nil).DeleteUser(ctx, g.u1.ID)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = f.users.GetByID(context.Background(), g.u1.ID)
	require.NoError(t, err)
	_, err = f.messages.GetByID(context.Background(), g.message.ID)
	require.NoError(t, err)
}

func TestDeleteUser_ConcurrentDisjointUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := f.userDeleter(nil)

	graphs := make([]graph, 8)
	for i := range graphs {
		graphs[i] = f.seed(t, fmt.Sprint(i))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(graphs))
	for i, g := range graphs {
		i, g := i, g
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = d.DeleteUser(ctx, g.u1.ID)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "graph %d", i)
		f.assertReferencesGone(t, graphs[i].u1.ID)
	}

	remaining, err := f.users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, len(graphs))
}

func TestDeletePost_Completeness(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.seed(t, "a")
	keep := &posts.Post{UserID: g.u1.ID, Text: "P2"}
	require.NoError(t, f.posts.Create(ctx, nil, keep))
	keptComment := &comments.Comment{UserID: g.u2.ID, PostID: keep.ID, Text: "stays"}
	require.NoError(t, f.comments.Create(ctx, nil, keptComment))

	require.NoError(t, f.postDeleter().DeletePost(ctx, g.post.ID))

	_, err := f.posts.GetByID(ctx, g.post.ID)
	assert.ErrorIs(t, err, posts.ErrNotFound)
	list, err := f.comments.ListByPost(ctx, g.post.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	reacts, err := f.reactions.ListByPost(ctx, g.post.ID)
	require.NoError(t, err)
	assert.Empty(t, reacts)

	_, err = f.comments.GetByID(ctx, keptComment.ID)
	require.NoError(t, err)
	_, err = f.users.GetByID(ctx, g.u1.ID)
	require.NoError(t, err)
}

func TestDeletePost_FaultRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.seed(t, "a")

	fault := errors.New("disk on fire")
	d := cascade.NewPostDeleter(f.store, f.posts, f.comments, faultyReactions{Repository: f.reactions, err: fault}, nil)

	err := d.DeletePost(ctx, g.post.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, fault)
	assert.Contains(t, err.Error(), "reactions")

	// the comment purge ran before the fault and was undone
	_, err = f.posts.GetByID(ctx, g.post.ID)
	require.NoError(t, err)
	_, err = f.comments.GetByID(ctx, g.comment.ID)
	require.NoError(t, err)
	_, err = f.reactions.GetByID(ctx, g.reaction.ID)
	require.NoError(t, err)

	require.NoError(t, f.postDeleter().DeletePost(ctx, g.post.ID))
}

func TestDeletePost_MissingIsNotFound(t *testing.T) {
	err := newFixture().postDeleter().DeletePost(context.Background(), 42)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}
