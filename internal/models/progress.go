package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/maniacmeyers/interview-maniac-app/internal/gamification"
)

// Progress is the one-row-per-user gamification aggregate. Stats and action
// counters live in the same row so a single UPDATE persists both halves of a
// recorded action — there is no window where one is written and the other
// is not.
type Progress struct {
	ID               uint   `gorm:"primaryKey" json:"-"`
	UserID           uint   `gorm:"uniqueIndex" json:"-"`
	Points           int    `json:"points"`
	Level            int    `json:"level"`
	StreakDays       int    `json:"streakDays"`
	LastActivityDate string `json:"lastActivityDate"`
	TotalSessions    int    `json:"totalSessions"`
	GenerateCount    int    `json:"generateCount"`
	ScoreCount       int    `json:"scoreCount"`
	SaveCount        int    `json:"saveCount"`
	VoiceCount       int    `json:"voiceCount"`
	Achievements     pq.StringArray `gorm:"type:text[]" json:"achievements"`
	CreatedAt        time.Time      `json:"-"`
	UpdatedAt        time.Time      `json:"-"`
}

// Stats converts the row into the ledger's stats value.
func (p *Progress) Stats() gamification.Stats {
	return gamification.Stats{
		Points:           p.Points,
		Level:            p.Level,
		StreakDays:       p.StreakDays,
		LastActivityDate: p.LastActivityDate,
		TotalSessions:    p.TotalSessions,
		Achievements:     []string(p.Achievements),
	}
}

// Counters converts the row into the ledger's counters value.
func (p *Progress) Counters() gamification.Counters {
	return gamification.Counters{
		Generate:        p.GenerateCount,
		Score:           p.ScoreCount,
		Save:            p.SaveCount,
		VoiceTranscript: p.VoiceCount,
	}
}

// Apply writes a ledger transition result back onto the row.
func (p *Progress) Apply(stats gamification.Stats, counters gamification.Counters) {
	p.Points = stats.Points
	p.Level = stats.Level
	p.StreakDays = stats.StreakDays
	p.LastActivityDate = stats.LastActivityDate
	p.TotalSessions = stats.TotalSessions
	p.Achievements = pq.StringArray(stats.Achievements)
	p.GenerateCount = counters.Generate
	p.ScoreCount = counters.Score
	p.SaveCount = counters.Save
	p.VoiceCount = counters.VoiceTranscript
}
