package guards

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Tether/internal/core/apperr"
	"Tether/internal/core/interactions"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/users"
)

type idSet map[int64]bool

func (s idSet) Exists(_ context.Context, id int64) (bool, error) {
	return s[id], nil
}

type pairKey struct{ a, b int64 }

type reactionSet map[pairKey]bool

func (s reactionSet) ExistsForUserAndPost(_ context.Context, userID, postID int64) (bool, error) {
	return s[pairKey{userID, postID}], nil
}

// interactionSet stores pairs as inserted; symmetry is the checker's job
type interactionSet map[pairKey]bool

func (s interactionSet) ExistsBetweenUsers(_ context.Context, a, b int64) (bool, error) {
	return s[pairKey{a, b}] || s[pairKey{b, a}], nil
}

type failingChecker struct{ err error }

func (f failingChecker) Exists(context.Context, int64) (bool, error) { return false, f.err }

func TestGuard_RequireUserAndPost(t *testing.T) {
	ctx := context.Background()
	g := New(idSet{1: true}, idSet{10: true}, reactionSet{}, interactionSet{})

	require.NoError(t, g.RequireUser(ctx, 1))
	require.NoError(t, g.RequirePost(ctx, 10))

	err := g.RequireUser(ctx, 2)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
	assert.True(t, apperr.IsNotFound(err))

	err = g.RequirePost(ctx, 11)
	assert.ErrorIs(t, err, posts.ErrNotFound)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGuard_EnsureNoReaction(t *testing.T) {
	ctx := context.Background()
	g := New(idSet{}, idSet{}, reactionSet{{2, 10}: true}, interactionSet{})

	require.NoError(t, g.EnsureNoReaction(ctx, 3, 10))
	require.NoError(t, g.EnsureNoReaction(ctx, 2, 11))

	err := g.EnsureNoReaction(ctx, 2, 10)
	assert.ErrorIs(t, err, reactions.ErrReactionExists)
	assert.True(t, apperr.IsConflict(err))
	assert.Contains(t, err.Error(), "user can have only one reaction per post")
}

func TestGuard_EnsureNoInteraction_Symmetric(t *testing.T) {
	ctx := context.Background()
	g := New(idSet{}, idSet{}, reactionSet{}, interactionSet{{1, 2}: true})

	assert.ErrorIs(t, g.EnsureNoInteraction(ctx, 1, 2), interactions.ErrInteractionExists)
	assert.ErrorIs(t, g.EnsureNoInteraction(ctx, 2, 1), interactions.ErrInteractionExists)
	require.NoError(t, g.EnsureNoInteraction(ctx, 1, 3))
}

func TestGuard_PropagatesFaults(t *testing.T) {
	fault := errors.New("db down")
	g := New(failingChecker{fault}, failingChecker{fault}, reactionSet{}, interactionSet{})

	err := g.RequireUser(context.Background(), 1)
	assert.ErrorIs(t, err, fault)
	assert.False(t, apperr.IsNotFound(err))

	err = g.RequirePost(context.Background(), 1)
	assert.ErrorIs(t, err, fault)
}
