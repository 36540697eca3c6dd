package handlers

import (
	"time"

	"dreamvault/application/services"
	"dreamvault/domain/core/entities"
)

// DreamResponse is the wire representation of a dream entry
type DreamResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Tags           []string  `json:"tags"`
	Mood           string    `json:"mood,omitempty"`
	Interpreted    bool      `json:"interpreted"`
	Interpretation string    `json:"interpretation,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toDreamResponse(dream *entities.Dream) DreamResponse {
	return DreamResponse{
		ID:             dream.ID().String(),
		Title:          dream.Content().Title(),
		Body:           dream.Content().Body(),
		Tags:           dream.GetTags(),
		Mood:           dream.Mood(),
		Interpreted:    dream.IsInterpreted(),
		Interpretation: dream.Interpretation(),
		CreatedAt:      dream.CreatedAt(),
		UpdatedAt:      dream.UpdatedAt(),
	}
}

func toDreamResponses(dreams []*entities.Dream) []DreamResponse {
	out := make([]DreamResponse, 0, len(dreams))
	for _, dream := range dreams {
		out = append(out, toDreamResponse(dream))
	}
	return out
}

// AlarmResponse is the wire representation of an alarm rule
type AlarmResponse struct {
	ID        string    `json:"id"`
	Time      string    `json:"time"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	Label     string    `json:"label"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAlarmResponse(alarm *entities.Alarm) AlarmResponse {
	return AlarmResponse{
		ID:        alarm.ID().String(),
		Time:      alarm.Time().String(),
		Hour:      alarm.Time().Hour(),
		Minute:    alarm.Time().Minute(),
		Label:     alarm.Label(),
		Enabled:   alarm.IsEnabled(),
		CreatedAt: alarm.CreatedAt(),
		UpdatedAt: alarm.UpdatedAt(),
	}
}

func toAlarmResponses(alarms []*entities.Alarm) []AlarmResponse {
	out := make([]AlarmResponse, 0, len(alarms))
	for _, alarm := range alarms {
		out = append(out, toAlarmResponse(alarm))
	}
	return out
}

// InsightResponse is the wire representation of a generated insight
type InsightResponse struct {
	Text      string   `json:"text"`
	Themes    []string `json:"themes,omitempty"`
	Sentiment string   `json:"sentiment,omitempty"`
}

func toInsightResponse(insight services.Insight) InsightResponse {
	return InsightResponse{
		Text:      insight.Text,
		Themes:    insight.Themes,
		Sentiment: string(insight.Sentiment),
	}
}
