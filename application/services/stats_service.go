package services

import (
	"context"
	"sort"

	"dreamvault/application/ports"
	pkgerrors "dreamvault/pkg/errors"

	"go.uber.org/zap"
)

// TagCount pairs a tag with the number of entries carrying it
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ProfileStats summarizes a user's journal for the profile screen
type ProfileStats struct {
	DreamsRecorded    int        `json:"dreams_recorded"`
	DreamsInterpreted int        `json:"dreams_interpreted"`
	ActiveAlarms      int        `json:"active_alarms"`
	UniqueTags        int        `json:"unique_tags"`
	TopTags           []TagCount `json:"top_tags"`
}

// maxTopTags caps the per-tag breakdown returned to clients
const maxTopTags = 10

// StatsService derives profile statistics from the journal and alarm
// stores. Everything is computed on read; nothing is cached.
type StatsService struct {
	dreamRepo ports.DreamRepository
	alarmRepo ports.AlarmRepository
	logger    *zap.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(dreamRepo ports.DreamRepository, alarmRepo ports.AlarmRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		dreamRepo: dreamRepo,
		alarmRepo: alarmRepo,
		logger:    logger,
	}
}

// GetProfileStats computes the user's journal summary
func (s *StatsService) GetProfileStats(ctx context.Context, userID string) (*ProfileStats, error) {
	dreams, err := s.dreamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list", err)
	}

	alarms, err := s.alarmRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list", err)
	}

	stats := &ProfileStats{DreamsRecorded: len(dreams)}

	tagCounts := make(map[string]int)
	for _, dream := range dreams {
		if dream.IsInterpreted() {
			stats.DreamsInterpreted++
		}
		for _, tag := range dream.GetTags() {
			tagCounts[tag]++
		}
	}

	for _, alarm := range alarms {
		if alarm.IsEnabled() {
			stats.ActiveAlarms++
		}
	}

	stats.UniqueTags = len(tagCounts)
	stats.TopTags = topTags(tagCounts, maxTopTags)
	return stats, nil
}

// topTags sorts count-descending, tag-ascending for ties, and truncates
func topTags(counts map[string]int, limit int) []TagCount {
	ranked := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
