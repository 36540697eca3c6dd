package services

import (
	"context"
	"time"

	"dreamvault/domain/core/valueobjects"
	domainservices "dreamvault/domain/services"
	pkgerrors "dreamvault/pkg/errors"

	"go.uber.org/zap"
)

// Insight is the product of one generation run
type Insight struct {
	Text      string
	Themes    []string
	Sentiment domainservices.SentimentBucket
}

// InsightHandle is a one-shot future for an in-flight generation. The
// result channel is buffered, so an abandoned handle never blocks the
// producing goroutine.
type InsightHandle struct {
	ch chan Insight
}

// Await blocks until the insight is ready or the context ends
func (h *InsightHandle) Await(ctx context.Context) (Insight, error) {
	select {
	case insight := <-h.ch:
		return insight, nil
	case <-ctx.Done():
		return Insight{}, ctx.Err()
	}
}

// InsightService generates interpretations and horoscopes for dream
// entries and persists confirmed interpretations.
//
// Generation is asynchronous behind a fixed delay and never fails: the
// generator falls back to a stock phrase on degenerate input rather than
// returning an error.
type InsightService struct {
	dreamService *DreamService
	generator    domainservices.NarrativeGenerator
	themes       domainservices.ThemeExtractor
	scorer       domainservices.SentimentScorer
	delay        time.Duration
	logger       *zap.Logger
}

// NewInsightService creates a new InsightService. delay is the fixed
// generation latency applied before a handle resolves.
func NewInsightService(
	dreamService *DreamService,
	generator domainservices.NarrativeGenerator,
	themes domainservices.ThemeExtractor,
	scorer domainservices.SentimentScorer,
	delay time.Duration,
	logger *zap.Logger,
) *InsightService {
	return &InsightService{
		dreamService: dreamService,
		generator:    generator,
		themes:       themes,
		scorer:       scorer,
		delay:        delay,
		logger:       logger,
	}
}

// InterpretDream starts generation for the given entry and returns a
// handle that resolves after the configured delay
func (s *InsightService) InterpretDream(ctx context.Context, userID string, dreamID valueobjects.DreamID) (*InsightHandle, error) {
	dream, err := s.dreamService.GetDream(ctx, userID, dreamID)
	if err != nil {
		return nil, err
	}

	title := dream.Content().Title()
	body := dream.Content().Body()

	handle := &InsightHandle{ch: make(chan Insight, 1)}
	go func() {
		time.Sleep(s.delay)
		handle.ch <- Insight{
			Text:      s.generator.Interpret(title, body),
			Themes:    s.themes.ExtractThemes(body),
			Sentiment: domainservices.BucketScore(s.scorer.Score(body)),
		}
	}()
	return handle, nil
}

// GenerateHoroscope starts horoscope generation. The user's most recent
// entry, when one exists, widens the phrase pool by a single
// entry-aware template.
func (s *InsightService) GenerateHoroscope(ctx context.Context, userID string) (*InsightHandle, error) {
	dreams, err := s.dreamService.ListDreams(ctx, userID)
	if err != nil {
		return nil, err
	}

	var title string
	hasDream := len(dreams) > 0
	if hasDream {
		title = dreams[0].Content().Title()
	}

	handle := &InsightHandle{ch: make(chan Insight, 1)}
	go func() {
		time.Sleep(s.delay)
		handle.ch <- Insight{Text: s.generator.Horoscope(title, hasDream)}
	}()
	return handle, nil
}

// SaveInterpretation persists a confirmed interpretation onto its entry.
// Saving the same text twice is idempotent: the second call changes
// nothing and raises no event.
func (s *InsightService) SaveInterpretation(ctx context.Context, userID string, dreamID valueobjects.DreamID, text string, themes []string) error {
	dream, err := s.dreamService.GetDream(ctx, userID, dreamID)
	if err != nil {
		return err
	}

	if err := dream.SaveInterpretation(text, themes); err != nil {
		return err
	}

	if err := s.dreamService.dreamRepo.Save(ctx, dream); err != nil {
		s.logger.Error("Failed to save interpretation",
			zap.Error(err),
			zap.String("dreamID", dreamID.String()),
		)
		return pkgerrors.NewStorageError("save", err)
	}

	s.dreamService.publishEvents(ctx, dream)
	return nil
}
