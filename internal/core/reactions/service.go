package reactions

import (
	"context"
	"log/slog"

	"Tether/internal/core/actor"
	"Tether/internal/core/validate"
)

// reactionService implements the Service interface for reaction operations
type reactionService struct {
	repo   Repository
	guard  Guard
	logger *slog.Logger
}

// NewService creates a new reaction service instance
func NewService(repo Repository, guard Guard, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &reactionService{
		repo:   repo,
		guard:  guard,
		logger: logger,
	}
}

// React creates the caller's reaction on a post.
// Existence is checked before uniqueness so that a reaction on a missing
// post reports the missing post rather than a conflict.
func (s *reactionService) React(ctx context.Context, caller actor.Actor, req CreateReactionRequest) (*Reaction, error) {
	if err := validate.ID("postId", req.PostID); err != nil {
		return nil, err
	}
	if err := req.Kind.Validate(); err != nil {
		return nil, err
	}

	if err := s.guard.RequireUser(ctx, caller.UserID); err != nil {
		return nil, err
	}
	if err := s.guard.RequirePost(ctx, req.PostID); err != nil {
		return nil, err
	}
	if err := s.guard.EnsureNoReaction(ctx, caller.UserID, req.PostID); err != nil {
		return nil, err
	}

	reaction := &Reaction{
		UserID: caller.UserID,
		PostID: req.PostID,
		Kind:   req.Kind,
	}

	// The store enforces the same uniqueness, covering a concurrent insert
	// that slipped in after the guard ran
	if err := s.repo.Create(ctx, nil, reaction); err != nil {
		return nil, err
	}

	s.logger.Info("reaction created",
		slog.Int64("reaction_id", reaction.ID),
		slog.Int64("user_id", reaction.UserID),
		slog.Int64("post_id", reaction.PostID),
		slog.String("kind", string(reaction.Kind)),
	)
	return reaction, nil
}

func (s *reactionService) GetReaction(ctx context.Context, id int64) (*Reaction, error) {
	if err := validate.ID("id", id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *reactionService) ListPostReactions(ctx context.Context, postID int64) ([]*Reaction, error) {
	if err := s.guard.RequirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}

func (s *reactionService) ChangeReaction(ctx context.Context, caller actor.Actor, id int64, req UpdateReactionRequest) (*Reaction, error) {
	if err := req.Kind.Validate(); err != nil {
		return nil, err
	}

	reaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(reaction.UserID) {
		return nil, ErrNotAuthorized
	}

	reaction.Kind = req.Kind
	if err := s.repo.Update(ctx, nil, reaction); err != nil {
		return nil, err
	}

	return reaction, nil
}

func (s *reactionService) RemoveReaction(ctx context.Context, caller actor.Actor, id int64) error {
	reaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.Owns(reaction.UserID) {
		return ErrNotAuthorized
	}

	return s.repo.Delete(ctx, nil, id)
}
