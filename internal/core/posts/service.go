package posts

import (
	"context"
	"log/slog"

	"Tether/internal/core/actor"
	"Tether/internal/core/validate"
)

type postService struct {
	repo    Repository
	guard   UserGuard
	deleter Deleter
	logger  *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(repo Repository, guard UserGuard, deleter Deleter, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:    repo,
		guard:   guard,
		deleter: deleter,
		logger:  logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, caller actor.Actor, req CreatePostRequest) (*Post, error) {
	if err := validate.Text("text", req.Text, MaxTextLength); err != nil {
		return nil, err
	}

	if err := s.guard.RequireUser(ctx, caller.UserID); err != nil {
		return nil, err
	}

	post := &Post{
		UserID: caller.UserID,
		Text:   req.Text,
	}
	if err := s.repo.Create(ctx, nil, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	if err := validate.ID("id", id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.repo.GetAll(ctx)
}

func (s *postService) ListUserPosts(ctx context.Context, userID int64) ([]*Post, error) {
	if err := s.guard.RequireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *postService) UpdatePost(ctx context.Context, caller actor.Actor, id int64, req UpdatePostRequest) (*Post, error) {
	if err := validate.Text("text", req.Text, MaxTextLength); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(post.UserID) {
		return nil, ErrNotAuthorized
	}

	post.Text = req.Text
	if err := s.repo.Update(ctx, nil, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, caller actor.Actor, id int64) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanManage(post.UserID) {
		return ErrNotAuthorized
	}

	if err := s.deleter.DeletePost(ctx, id); err != nil {
		return err
	}

	s.logger.Info("post deleted",
		slog.Int64("post_id", id),
		slog.Int64("deleted_by", caller.UserID),
	)
	return nil
}
