package services

import (
	"context"
	"time"

	"dreamvault/application/ports"
	"dreamvault/domain/core/entities"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/domain/events"
	pkgerrors "dreamvault/pkg/errors"

	"go.uber.org/zap"
)

// DreamService implements the journal use cases: recording, listing,
// editing, and deleting dream entries.
type DreamService struct {
	dreamRepo ports.DreamRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewDreamService creates a new DreamService with injected dependencies
func NewDreamService(dreamRepo ports.DreamRepository, eventBus ports.EventBus, logger *zap.Logger) *DreamService {
	return &DreamService{
		dreamRepo: dreamRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// CreateDream records a new dream entry
func (s *DreamService) CreateDream(ctx context.Context, userID, title, body string, tags []string, mood string) (*entities.Dream, error) {
	content, err := valueobjects.NewDreamContent(title, body)
	if err != nil {
		return nil, err
	}

	dream, err := entities.NewDream(userID, content)
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		if err := dream.AddTag(tag); err != nil {
			return nil, err
		}
	}
	if mood != "" {
		if err := dream.SetMood(mood); err != nil {
			return nil, err
		}
	}

	if err := s.dreamRepo.Save(ctx, dream); err != nil {
		s.logger.Error("Failed to save dream",
			zap.Error(err),
			zap.String("userID", userID),
		)
		return nil, pkgerrors.NewStorageError("save", err)
	}

	s.publishEvents(ctx, dream)
	return dream, nil
}

// GetDream retrieves a single dream entry owned by the user
func (s *DreamService) GetDream(ctx context.Context, userID string, dreamID valueobjects.DreamID) (*entities.Dream, error) {
	dream, err := s.dreamRepo.GetByID(ctx, dreamID)
	if err != nil {
		return nil, err
	}
	if dream.UserID() != userID {
		// Ownership mismatch reads as absence to the caller
		return nil, pkgerrors.NewNotFoundError("dream")
	}
	return dream, nil
}

// ListDreams retrieves the user's dreams, newest first
func (s *DreamService) ListDreams(ctx context.Context, userID string) ([]*entities.Dream, error) {
	dreams, err := s.dreamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list", err)
	}
	return dreams, nil
}

// UpdateDream edits an existing entry's content and metadata. Nil slices
// and empty strings leave the corresponding field untouched.
func (s *DreamService) UpdateDream(ctx context.Context, userID string, dreamID valueobjects.DreamID, title, body *string, tags *[]string, mood *string) (*entities.Dream, error) {
	dream, err := s.GetDream(ctx, userID, dreamID)
	if err != nil {
		return nil, err
	}

	if title != nil || body != nil {
		newTitle := dream.Content().Title()
		newBody := dream.Content().Body()
		if title != nil {
			newTitle = *title
		}
		if body != nil {
			newBody = *body
		}
		content, err := valueobjects.NewDreamContent(newTitle, newBody)
		if err != nil {
			return nil, err
		}
		if err := dream.UpdateContent(content); err != nil {
			return nil, err
		}
	}

	if tags != nil {
		if err := dream.ReplaceTags(*tags); err != nil {
			return nil, err
		}
	}
	if mood != nil {
		if err := dream.SetMood(*mood); err != nil {
			return nil, err
		}
	}

	if err := s.dreamRepo.Save(ctx, dream); err != nil {
		s.logger.Error("Failed to update dream",
			zap.Error(err),
			zap.String("dreamID", dreamID.String()),
		)
		return nil, pkgerrors.NewStorageError("save", err)
	}

	s.publishEvents(ctx, dream)
	return dream, nil
}

// DeleteDream destroys an entry on explicit user action
func (s *DreamService) DeleteDream(ctx context.Context, userID string, dreamID valueobjects.DreamID) error {
	dream, err := s.GetDream(ctx, userID, dreamID)
	if err != nil {
		return err
	}

	if err := s.dreamRepo.Delete(ctx, dreamID); err != nil {
		s.logger.Error("Failed to delete dream",
			zap.Error(err),
			zap.String("dreamID", dreamID.String()),
		)
		return pkgerrors.NewStorageError("delete", err)
	}

	deleted := events.NewDreamDeleted(dream.ID(), dream.UserID(), time.Now())
	if err := s.eventBus.Publish(ctx, deleted); err != nil {
		s.logger.Warn("Failed to publish dream deletion",
			zap.Error(err),
			zap.String("dreamID", dreamID.String()),
		)
	}
	return nil
}

// publishEvents flushes an entity's uncommitted events to the bus.
// Publish failures are logged, never surfaced: the journal must keep
// working when the bus is down.
func (s *DreamService) publishEvents(ctx context.Context, dream *entities.Dream) {
	raised := dream.GetUncommittedEvents()
	if len(raised) == 0 {
		return
	}
	if err := s.eventBus.PublishBatch(ctx, raised); err != nil {
		s.logger.Warn("Failed to publish dream events",
			zap.Error(err),
			zap.String("dreamID", dream.ID().String()),
			zap.Int("count", len(raised)),
		)
	}
	dream.MarkEventsAsCommitted()
}
