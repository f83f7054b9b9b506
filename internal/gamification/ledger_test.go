package gamification

import (
	"reflect"
	"testing"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, tt := range tests {
		if got := Level(tt.points); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	if _, err := ParseAction("voice_transcript"); err != nil {
		t.Errorf("voice_transcript should parse: %v", err)
	}
	if _, err := ParseAction("cheat"); err == nil {
		t.Error("unknown action should fail")
	}
}

func TestRecordActionAwardsPoints(t *testing.T) {
	stats, counters, unlocked := RecordAction(Stats{}, Counters{}, ActionSave, "2026-08-31")

	if stats.Points != 10 {
		t.Errorf("Points = %d, want 10", stats.Points)
	}
	if stats.Level != 1 {
		t.Errorf("Level = %d, want 1", stats.Level)
	}
	if stats.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", stats.TotalSessions)
	}
	if counters.Save != 1 {
		t.Errorf("Save counter = %d, want 1", counters.Save)
	}
	// The very first save unlocks first_story.
	if !reflect.DeepEqual(unlocked, []string{"first_story"}) {
		t.Errorf("unlocked = %v, want [first_story]", unlocked)
	}
}

func TestRecordActionStreak(t *testing.T) {
	stats := Stats{}
	counters := Counters{}

	// Three consecutive days build a streak of three.
	for i, day := range []string{"2026-08-01", "2026-08-02", "2026-08-03"} {
		stats, counters, _ = RecordAction(stats, counters, ActionGenerate, day)
		if stats.StreakDays != i+1 {
			t.Fatalf("day %s: StreakDays = %d, want %d", day, stats.StreakDays, i+1)
		}
	}

	// Same-day repeats leave the streak alone.
	stats, counters, _ = RecordAction(stats, counters, ActionGenerate, "2026-08-03")
	if stats.StreakDays != 3 {
		t.Errorf("same-day repeat: StreakDays = %d, want 3", stats.StreakDays)
	}

	// A gap resets to one.
	stats, counters, _ = RecordAction(stats, counters, ActionGenerate, "2026-08-10")
	if stats.StreakDays != 1 {
		t.Errorf("after gap: StreakDays = %d, want 1", stats.StreakDays)
	}

	// A stored date in the future (clock skew) also resets.
	stats.LastActivityDate = "2026-09-15"
	stats, _, _ = RecordAction(stats, counters, ActionGenerate, "2026-08-11")
	if stats.StreakDays != 1 || stats.LastActivityDate != "2026-08-11" {
		t.Errorf("future date: StreakDays = %d LastActivityDate = %q, want 1 / 2026-08-11",
			stats.StreakDays, stats.LastActivityDate)
	}
}

func TestRecordActionUnlocksOnce(t *testing.T) {
	stats := Stats{}
	counters := Counters{}
	total := 0

	for i := 0; i < 3; i++ {
		var unlocked []string
		stats, counters, unlocked = RecordAction(stats, counters, ActionSave, "2026-08-31")
		for _, id := range unlocked {
			if id == "first_story" {
				total++
			}
		}
	}

	if total != 1 {
		t.Errorf("first_story unlocked %d times, want exactly once", total)
	}
	if counters.Save != 3 {
		t.Errorf("Save counter = %d, want 3", counters.Save)
	}
}

func TestRecordActionCounterThreshold(t *testing.T) {
	stats := Stats{}
	counters := Counters{}

	var last []string
	for i := 0; i < 5; i++ {
		stats, counters, last = RecordAction(stats, counters, ActionScore, "2026-08-31")
	}

	if !contains(stats.Achievements, "story_scorer") {
		t.Error("story_scorer should unlock at the fifth score")
	}
	if !contains(last, "story_scorer") {
		t.Errorf("fifth call should report the unlock, got %v", last)
	}
}

func TestRecordActionDoesNotAliasInput(t *testing.T) {
	original := Stats{Achievements: []string{"first_story"}}

	RecordAction(original, Counters{Score: 4}, ActionScore, "2026-08-31")

	if len(original.Achievements) != 1 || original.Achievements[0] != "first_story" {
		t.Errorf("input Achievements mutated: %v", original.Achievements)
	}
}

func TestCatalogByID(t *testing.T) {
	a, ok := ByID("streak_master")
	if !ok || a.Threshold != 7 || a.Trigger != TriggerStreak {
		t.Errorf("ByID(streak_master) = %+v, %v", a, ok)
	}
	if _, ok := ByID("nope"); ok {
		t.Error("unknown ID should miss")
	}
}
