package interactions

import (
	"context"
	"log/slog"
	"time"

	"Tether/internal/core/actor"
	"Tether/internal/core/validate"
)

type interactionService struct {
	repo   Repository
	guard  Guard
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new interaction service
func NewService(repo Repository, guard Guard, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &interactionService{
		repo:   repo,
		guard:  guard,
		logger: logger,
		now:    time.Now,
	}
}

func (s *interactionService) CreateInteraction(ctx context.Context, caller actor.Actor, req CreateInteractionRequest) (*Interaction, error) {
	if req.User1ID == 0 {
		req.User1ID = caller.UserID
	}
	if err := validate.ID("user1Id", req.User1ID); err != nil {
		return nil, err
	}
	if err := validate.ID("user2Id", req.User2ID); err != nil {
		return nil, err
	}
	if err := validate.DistinctUsers("user2Id", req.User1ID, req.User2ID); err != nil {
		return nil, err
	}
	if err := req.Status.Validate(); err != nil {
		return nil, err
	}
	// Only administrators may record a relation on behalf of another user
	if !caller.Admin && !caller.Owns(req.User1ID) {
		return nil, ErrNotAuthorized
	}

	if err := s.guard.RequireUser(ctx, req.User1ID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, req.User2ID); err != nil {
		return nil, err
	}
	if err := s.guard.EnsureNoInteraction(ctx, req.User1ID, req.User2ID); err != nil {
		return nil, err
	}

	interaction := &Interaction{
		User1ID: req.User1ID,
		User2ID: req.User2ID,
		Status:  req.Status,
	}
	if err := s.repo.Create(ctx, nil, interaction); err != nil {
		return nil, err
	}

	s.logger.Info("interaction created",
		slog.Int64("interaction_id", interaction.ID),
		slog.Int64("user1_id", interaction.User1ID),
		slog.Int64("user2_id", interaction.User2ID),
		slog.String("status", string(interaction.Status)),
	)
	return interaction, nil
}

func (s *interactionService) GetInteraction(ctx context.Context, id int64) (*Interaction, error) {
	if err := validate.ID("id", id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *interactionService) GetBetween(ctx context.Context, a, b int64) (*Interaction, error) {
	if err := validate.DistinctUsers("with", a, b); err != nil {
		return nil, err
	}
	return s.repo.GetBetweenUsers(ctx, a, b)
}

func (s *interactionService) ListUserInteractions(ctx context.Context, userID int64) ([]*Interaction, error) {
	if err := s.guard.RequireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *interactionService) UpdateStatus(ctx context.Context, caller actor.Actor, id int64, req UpdateStatusRequest) (*Interaction, error) {
	if err := req.Status.Validate(); err != nil {
		return nil, err
	}

	interaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !interaction.CanChange(caller.UserID) {
		return nil, ErrNotAuthorized
	}

	// The blocking side always becomes User1ID
	if req.Status == StatusBlocked && interaction.User2ID == caller.UserID {
		interaction.User1ID, interaction.User2ID = interaction.User2ID, interaction.User1ID
	}
	interaction.Status = req.Status
	interaction.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, nil, interaction); err != nil {
		return nil, err
	}

	return interaction, nil
}

func (s *interactionService) DeleteInteraction(ctx context.Context, caller actor.Actor, id int64) error {
	interaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !interaction.CanChange(caller.UserID) {
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, nil, id); err != nil {
		return err
	}

	s.logger.Info("interaction deleted",
		slog.Int64("interaction_id", id),
		slog.Int64("deleted_by", caller.UserID),
	)
	return nil
}
