package config

import "time"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Dream constraints
	MaxTitleLength   int
	MinTitleLength   int
	MaxBodyLength    int
	MaxTagsPerDream  int
	MaxTagLength     int
	MaxMoodLength    int

	// Insight generation
	MaxThemes          int
	PositiveThreshold  float64
	NegativeThreshold  float64
	GenerationDelay    time.Duration

	// Alarm constraints
	MaxAlarmsPerUser  int
	MaxLabelLength    int
	DefaultAlarmLabel string

	// Validation settings
	AllowEmptyBody bool

	// Feature flags
	EnableHeuristicInsights bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Dream constraints
		MaxTitleLength:  200,
		MinTitleLength:  1,
		MaxBodyLength:   20000,
		MaxTagsPerDream: 20,
		MaxTagLength:    50,
		MaxMoodLength:   100,

		// Insight generation
		MaxThemes:         5,
		PositiveThreshold: 0.3,
		NegativeThreshold: -0.3,
		GenerationDelay:   1500 * time.Millisecond,

		// Alarm constraints
		MaxAlarmsPerUser:  50,
		MaxLabelLength:    100,
		DefaultAlarmLabel: "Dream Alarm",

		// Validation settings
		AllowEmptyBody: false,

		// Feature flags
		EnableHeuristicInsights: true,
	}
}
