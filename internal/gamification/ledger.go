// Package gamification implements the points/levels/streak/achievement
// bookkeeping as a pure state transition over a user's progress record.
package gamification

import (
	"fmt"
	"time"
)

// Action is the closed set of user actions that earn points. Adding a new
// action means adding a constant here plus a Counters field, so the compiler
// catches every switch that needs updating.
type Action string

const (
	ActionGenerate        Action = "generate"
	ActionScore           Action = "score"
	ActionSave            Action = "save"
	ActionVoiceTranscript Action = "voice_transcript"
)

// ParseAction validates an action string coming from the client.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionGenerate, ActionScore, ActionSave, ActionVoiceTranscript:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

var actionPoints = map[Action]int{
	ActionGenerate:        5,
	ActionScore:           5,
	ActionSave:            10,
	ActionVoiceTranscript: 5,
}

// Points returns the points awarded for a single occurrence of an action.
func Points(a Action) int {
	return actionPoints[a]
}

// Stats is a user's progress record. Level is always derived from Points and
// never stored independently; Achievements is append-only.
type Stats struct {
	Points           int      `json:"points"`
	Level            int      `json:"level"`
	StreakDays       int      `json:"streakDays"`
	LastActivityDate string   `json:"lastActivityDate"`
	TotalSessions    int      `json:"totalSessions"`
	Achievements     []string `json:"achievements"`
}

// Counters tracks how many times each action has fired.
type Counters struct {
	Generate        int `json:"generate"`
	Score           int `json:"score"`
	Save            int `json:"save"`
	VoiceTranscript int `json:"voice_transcript"`
}

func (c Counters) count(a Action) int {
	switch a {
	case ActionGenerate:
		return c.Generate
	case ActionScore:
		return c.Score
	case ActionSave:
		return c.Save
	case ActionVoiceTranscript:
		return c.VoiceTranscript
	}
	return 0
}

func (c *Counters) bump(a Action) {
	switch a {
	case ActionGenerate:
		c.Generate++
	case ActionScore:
		c.Score++
	case ActionSave:
		c.Save++
	case ActionVoiceTranscript:
		c.VoiceTranscript++
	}
}

// Level derives the level for a points total.
func Level(points int) int {
	return points/100 + 1
}

// DateLayout is the calendar-day format stored in LastActivityDate.
const DateLayout = "2006-01-02"

// Today returns the current calendar day in DateLayout form.
func Today() string {
	return time.Now().Format(DateLayout)
}

// RecordFunc is the signature of the ledger transition. Handlers take it as
// an explicit dependency instead of reaching for a package global.
type RecordFunc func(stats Stats, counters Counters, action Action, today string) (Stats, Counters, []string)

// RecordAction applies one action to the progress record. It is a pure,
// total function: points and session count always advance, level is
// recomputed, the streak continues on consecutive days and resets otherwise,
// and any newly crossed achievement thresholds unlock exactly once. The
// returned slice lists only the achievements unlocked by this call.
func RecordAction(stats Stats, counters Counters, action Action, today string) (Stats, Counters, []string) {
	// Achievements shares its backing array with the caller's record.
	stats.Achievements = append([]string(nil), stats.Achievements...)

	stats.Points += actionPoints[action]
	stats.Level = Level(stats.Points)

	switch {
	case stats.LastActivityDate == today:
		// Repeat activity on the same day never touches the streak.
	case stats.LastActivityDate == "" || stats.LastActivityDate == previousDay(today):
		stats.StreakDays++
		stats.LastActivityDate = today
	default:
		// Covers gaps of two or more days and last-activity dates in the
		// future (clock skew): both reset the streak.
		stats.StreakDays = 1
		stats.LastActivityDate = today
	}

	counters.bump(action)
	stats.TotalSessions++

	var unlocked []string
	for _, a := range Catalog {
		if contains(stats.Achievements, a.ID) {
			continue
		}
		var value int
		switch a.Trigger {
		case TriggerLevel:
			value = stats.Level
		case TriggerStreak:
			value = stats.StreakDays
		case TriggerPoints:
			value = stats.Points
		default:
			value = counters.count(Action(a.Trigger))
		}
		if value >= a.Threshold {
			stats.Achievements = append(stats.Achievements, a.ID)
			unlocked = append(unlocked, a.ID)
		}
	}

	return stats, counters, unlocked
}

func previousDay(day string) string {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
