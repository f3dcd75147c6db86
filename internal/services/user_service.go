package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"usersvc/internal/models"
	"usersvc/internal/repositories"
	"usersvc/internal/validation"
)

// EventPublisher delivers user events to a message broker.
type EventPublisher interface {
	PublishJSON(routingKey string, payload interface{}) error
}

// UserService handles business logic related to users.
type UserService struct {
	repo      repositories.UserRepository
	publisher EventPublisher
	log       *zap.Logger
}

// NewUserService creates a new UserService. publisher may be nil, in which
// case no events are published.
func NewUserService(repo repositories.UserRepository, publisher EventPublisher, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ListUsers returns one page of users.
func (s *UserService) ListUsers(ctx context.Context, q validation.ListQuery) (*models.Page[models.User], error) {
	return s.repo.List(ctx, q.Page, q.PageSize)
}

// GetUser looks a user up by id or uuid. A nil user means no match.
func (s *UserService) GetUser(ctx context.Context, id validation.Identifier) (*models.User, error) {
	switch id.Kind {
	case validation.KindID:
		return s.repo.GetByID(ctx, id.ID)
	case validation.KindUUID:
		return s.repo.GetByUUID(ctx, id.UUID)
	default:
		return nil, fmt.Errorf("unsupported identifier kind %v", id.Kind)
	}
}

// CreateUser creates a new user.
func (s *UserService) CreateUser(ctx context.Context, in validation.CreateInput) (*models.User, error) {
	user, err := s.repo.Create(ctx, in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	s.publish(models.UserCreated, user)
	return user, nil
}

// UpdateUser applies the provided fields to the user addressed by id.
// A nil user means no match.
func (s *UserService) UpdateUser(ctx context.Context, id validation.Identifier, in validation.UpdateInput) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch id.Kind {
	case validation.KindID:
		user, err = s.repo.UpdateByID(ctx, id.ID, in.Changes())
	case validation.KindUUID:
		user, err = s.repo.UpdateByUUID(ctx, id.UUID, in.Changes())
	default:
		return nil, fmt.Errorf("unsupported identifier kind %v", id.Kind)
	}
	if err != nil || user == nil {
		return nil, err
	}
	s.publish(models.UserUpdated, user)
	return user, nil
}

// DeleteUser removes the user addressed by id and returns its last state.
// A nil user means no match.
func (s *UserService) DeleteUser(ctx context.Context, id validation.Identifier) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch id.Kind {
	case validation.KindID:
		user, err = s.repo.DeleteByID(ctx, id.ID)
	case validation.KindUUID:
		user, err = s.repo.DeleteByUUID(ctx, id.UUID)
	default:
		return nil, fmt.Errorf("unsupported identifier kind %v", id.Kind)
	}
	if err != nil || user == nil {
		return nil, err
	}
	s.publish(models.UserDeleted, user)
	return user, nil
}

// publish never fails the caller: the write has already been committed.
func (s *UserService) publish(eventType models.UserEventType, user *models.User) {
	if s.publisher == nil {
		return
	}
	event := models.UserEvent{
		Type:       eventType,
		User:       *user,
		OccurredAt: time.Now().UTC().Format(models.TimestampLayout),
	}
	if err := s.publisher.PublishJSON(string(eventType), event); err != nil {
		s.log.Warn("Failed to publish user event",
			zap.String("type", string(eventType)),
			zap.Int64("user_id", user.ID),
			zap.Error(err))
		return
	}
	s.log.Debug("Published user event",
		zap.String("type", string(eventType)),
		zap.Int64("user_id", user.ID))
}
