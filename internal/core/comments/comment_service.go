package comments

import (
	"context"
	"log/slog"

	"Tether/internal/core/actor"
	"Tether/internal/core/validate"
)

type commentService struct {
	repo   Repository
	guard  Guard
	posts  PostLookup
	logger *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(repo Repository, guard Guard, posts PostLookup, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:   repo,
		guard:  guard,
		posts:  posts,
		logger: logger,
	}
}

func (s *commentService) CreateComment(ctx context.Context, caller actor.Actor, req CreateCommentRequest) (*Comment, error) {
	if err := validate.ID("postId", req.PostID); err != nil {
		return nil, err
	}
	if err := validate.Text("text", req.Text, MaxTextLength); err != nil {
		return nil, err
	}

	if err := s.guard.RequireUser(ctx, caller.UserID); err != nil {
		return nil, err
	}
	if err := s.guard.RequirePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &Comment{
		UserID: caller.UserID,
		PostID: req.PostID,
		Text:   req.Text,
	}
	if err := s.repo.Create(ctx, nil, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) GetComment(ctx context.Context, id int64) (*Comment, error) {
	if err := validate.ID("id", id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *commentService) ListPostComments(ctx context.Context, postID int64) ([]*Comment, error) {
	if err := s.guard.RequirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}

func (s *commentService) UpdateComment(ctx context.Context, caller actor.Actor, id int64, req UpdateCommentRequest) (*Comment, error) {
	if err := validate.Text("text", req.Text, MaxTextLength); err != nil {
		return nil, err
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(comment.UserID) {
		return nil, ErrNotAuthorized
	}

	comment.Text = req.Text
	if err := s.repo.Update(ctx, nil, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, caller actor.Actor, id int64) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !caller.CanManage(comment.UserID) {
		post, err := s.posts.GetByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if !caller.Owns(post.UserID) {
			return ErrNotAuthorized
		}
	}

	if err := s.repo.Delete(ctx, nil, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted",
		slog.Int64("comment_id", id),
		slog.Int64("deleted_by", caller.UserID),
	)
	return nil
}
