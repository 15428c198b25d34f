package messages

import (
	"context"
	"fmt"
	"log/slog"

	"Tether/internal/core/actor"
	"Tether/internal/core/apperr"
	"Tether/internal/core/interactions"
	"Tether/internal/core/validate"
)

type messageService struct {
	repo   Repository
	guard  UserGuard
	blocks BlockLookup
	logger *slog.Logger
}

// NewService creates a new message service
func NewService(repo Repository, guard UserGuard, blocks BlockLookup, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &messageService{
		repo:   repo,
		guard:  guard,
		blocks: blocks,
		logger: logger,
	}
}

func (s *messageService) SendMessage(ctx context.Context, caller actor.Actor, req SendMessageRequest) (*Message, error) {
	if err := validate.ID("receiverId", req.ReceiverID); err != nil {
		return nil, err
	}
	if err := validate.DistinctUsers("receiverId", caller.UserID, req.ReceiverID); err != nil {
		return nil, err
	}
	if err := validate.Text("text", req.Text, MaxTextLength); err != nil {
		return nil, err
	}

	if err := s.guard.RequireUser(ctx, caller.UserID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, req.ReceiverID); err != nil {
		return nil, err
	}
	if err := s.checkNotBlocked(ctx, caller.UserID, req.ReceiverID); err != nil {
		return nil, err
	}

	message := &Message{
		SenderID:   caller.UserID,
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
	}
	if err := s.repo.Create(ctx, nil, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *messageService) checkNotBlocked(ctx context.Context, a, b int64) error {
	interaction, err := s.blocks.GetBetweenUsers(ctx, a, b)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check block status: %w", err)
	}
	if interaction.Status == interactions.StatusBlocked {
		return ErrBlocked
	}
	return nil
}

func (s *messageService) GetMessage(ctx context.Context, caller actor.Actor, id int64) (*Message, error) {
	if err := validate.ID("id", id); err != nil {
		return nil, err
	}

	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Admin && !message.Involves(caller.UserID) {
		return nil, ErrNotAuthorized
	}

	return message, nil
}

func (s *messageService) ListConversation(ctx context.Context, caller actor.Actor, withUserID int64) ([]*Message, error) {
	if err := validate.ID("with", withUserID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, withUserID); err != nil {
		return nil, err
	}
	return s.repo.ListConversation(ctx, caller.UserID, withUserID)
}

func (s *messageService) EditMessage(ctx context.Context, caller actor.Actor, id int64, req EditMessageRequest) (*Message, error) {
	if err := validate.Text("text", req.Text, MaxTextLength); err != nil {
		return nil, err
	}

	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(message.SenderID) {
		return nil, ErrNotAuthorized
	}

	message.Text = req.Text
	if err := s.repo.Update(ctx, nil, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, caller actor.Actor, id int64) error {
	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.Owns(message.SenderID) {
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, nil, id); err != nil {
		return err
	}

	s.logger.Debug("message deleted", slog.Int64("message_id", id))
	return nil
}
