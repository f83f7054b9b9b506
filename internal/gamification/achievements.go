package gamification

// Trigger kinds beyond the per-action counters.
const (
	TriggerLevel  = "level"
	TriggerStreak = "streak"
	TriggerPoints = "points"
)

// Achievement is one entry in the fixed catalog. Trigger is either an action
// name (threshold compared against that action's counter) or one of the
// derived triggers above.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Trigger     string `json:"trigger"`
	Threshold   int    `json:"threshold"`
}

// Catalog is evaluated in order on every RecordAction call.
var Catalog = []Achievement{
	{ID: "first_story", Name: "First Story", Description: "Create your first ABT story", Trigger: string(ActionSave), Threshold: 1},
	{ID: "story_scorer", Name: "Story Scorer", Description: "Score 5 stories", Trigger: string(ActionScore), Threshold: 5},
	{ID: "voice_user", Name: "Voice User", Description: "Use voice recording 3 times", Trigger: string(ActionVoiceTranscript), Threshold: 3},
	{ID: "productive", Name: "Productive", Description: "Generate 10 stories", Trigger: string(ActionGenerate), Threshold: 10},
	{ID: "level_up", Name: "Level Up", Description: "Reach level 5", Trigger: TriggerLevel, Threshold: 5},
	{ID: "streak_master", Name: "Streak Master", Description: "Maintain a 7-day streak", Trigger: TriggerStreak, Threshold: 7},
	{ID: "points_collector", Name: "Points Collector", Description: "Earn 1000 points", Trigger: TriggerPoints, Threshold: 1000},
}

// ByID looks up a catalog entry, for rendering unlock notifications.
func ByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
