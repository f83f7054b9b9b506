package scoring

import (
	"reflect"
	"testing"
)

func TestNormalizeRecomputesTotals(t *testing.T) {
	raw := RawResult{
		Scores: map[string]any{
			"clarity":   float64(5),
			"relevance": float64(4),
			"impact":    float64(5),
			"metrics":   float64(2),
			"storyArc":  float64(3),
			"concision": float64(4),
		},
		// The model lies about its own arithmetic; both must be ignored.
		TotalScore:   float64(30),
		AverageScore: float64(5.0),
	}

	res := Normalize(raw)

	if res.TotalScore != 23 {
		t.Errorf("TotalScore = %d, want 23", res.TotalScore)
	}
	if res.AverageScore != 3.8 {
		t.Errorf("AverageScore = %v, want 3.8", res.AverageScore)
	}
}

func TestNormalizeCoercesLooseValues(t *testing.T) {
	raw := RawResult{
		Scores: map[string]any{
			"clarity":   "4",       // numeric string
			"relevance": float64(7), // above range
			"impact":    float64(-1),
			"metrics":   "not a number",
			"storyArc":  nil,
			// concision missing entirely
		},
	}

	res := Normalize(raw)

	want := Rubric{Clarity: 4, Relevance: 5, Impact: 0, Metrics: 0, StoryArc: 0, Concision: 0}
	if res.Scores != want {
		t.Errorf("Scores = %+v, want %+v", res.Scores, want)
	}
	if res.TotalScore != 9 {
		t.Errorf("TotalScore = %d, want 9", res.TotalScore)
	}
	if res.AverageScore != 1.5 {
		t.Errorf("AverageScore = %v, want 1.5", res.AverageScore)
	}
}

func TestNormalizeRoundsFractionalScores(t *testing.T) {
	raw := RawResult{Scores: map[string]any{"clarity": 4.6, "relevance": 2.4}}

	res := Normalize(raw)

	if res.Scores.Clarity != 5 {
		t.Errorf("Clarity = %d, want 5", res.Scores.Clarity)
	}
	if res.Scores.Relevance != 2 {
		t.Errorf("Relevance = %d, want 2", res.Scores.Relevance)
	}
}

func TestNormalizeEmptyFeedback(t *testing.T) {
	res := Normalize(RawResult{})

	if res.Feedback.Strengths == nil || res.Feedback.Improvements == nil || res.Feedback.Suggestions == nil {
		t.Error("feedback slices must be non-nil so they serialize as []")
	}
	if res.TotalScore != 0 || res.AverageScore != 0 {
		t.Errorf("empty input should score zero, got total=%d avg=%v", res.TotalScore, res.AverageScore)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		avg  float64
		want Category
	}{
		{5.0, CategoryExcellent},
		{4.5, CategoryExcellent},
		{4.49, CategoryGood},
		{3.5, CategoryGood},
		{3.0, CategoryAverage},
		{2.5, CategoryAverage},
		{2.0, CategoryBelowAverage},
		{1.5, CategoryBelowAverage},
		{1.0, CategoryNeedsImprovement},
		{0, CategoryNeedsImprovement},
	}

	for _, tt := range tests {
		if got := Categorize(tt.avg); got != tt.want {
			t.Errorf("Categorize(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestRecommendPriorities(t *testing.T) {
	tests := []struct {
		name      string
		res       Result
		wantPrio  string
		wantFocus []string
	}{
		{
			name: "high priority lists weak dimensions",
			res: Result{
				Scores:       Rubric{Clarity: 2, Relevance: 1, Impact: 3, Metrics: 2, StoryArc: 3, Concision: 2},
				AverageScore: 2.2,
			},
			wantPrio:  "high",
			wantFocus: []string{"clarity", "relevance", "metrics", "concision"},
		},
		{
			name: "medium priority mixes weak and moderate",
			res: Result{
				Scores:       Rubric{Clarity: 3, Relevance: 4, Impact: 2, Metrics: 3, StoryArc: 3, Concision: 4},
				AverageScore: 3.2,
			},
			wantPrio: "medium",
			// Weak first, then at most two moderates in rubric order.
			wantFocus: []string{"impact", "clarity", "metrics"},
		},
		{
			name: "low priority caps moderate focus at two",
			res: Result{
				Scores:       Rubric{Clarity: 3, Relevance: 3, Impact: 3, Metrics: 5, StoryArc: 5, Concision: 5},
				AverageScore: 4.0,
			},
			wantPrio:  "low",
			wantFocus: []string{"clarity", "relevance"},
		},
		{
			name: "high priority with no weak dimension falls back",
			res: Result{
				Scores:       Rubric{Clarity: 3, Relevance: 3, Impact: 3, Metrics: 3, StoryArc: 3, Concision: 3},
				AverageScore: 2.0,
			},
			wantPrio:  "high",
			wantFocus: []string{"overall story structure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.res)
			if rec.Priority != tt.wantPrio {
				t.Errorf("Priority = %q, want %q", rec.Priority, tt.wantPrio)
			}
			if !reflect.DeepEqual(rec.Focus, tt.wantFocus) {
				t.Errorf("Focus = %v, want %v", rec.Focus, tt.wantFocus)
			}
			if len(rec.NextSteps) == 0 {
				t.Error("NextSteps must never be empty")
			}
		})
	}
}

// Exercises the whole pipeline on a representative model response.
func TestScoreReportPipeline(t *testing.T) {
	raw := RawResult{
		Scores: map[string]any{
			"clarity":   float64(5),
			"relevance": float64(4),
			"impact":    float64(5),
			"metrics":   float64(2),
			"storyArc":  float64(3),
			"concision": float64(4),
		},
		Feedback: Feedback{
			Strengths:    []string{"Clear achievement statement"},
			Improvements: []string{"Add concrete numbers"},
		},
		OverallAssessment: "Solid story with room to quantify impact.",
	}

	res := Normalize(raw)
	category := Categorize(res.AverageScore)
	rec := Recommend(res)

	if res.TotalScore != 23 || res.AverageScore != 3.8 {
		t.Fatalf("normalize: total=%d avg=%v, want 23/3.8", res.TotalScore, res.AverageScore)
	}
	if category != CategoryGood {
		t.Errorf("category = %q, want %q", category, CategoryGood)
	}
	if rec.Priority != "low" {
		t.Errorf("priority = %q, want low", rec.Priority)
	}
	if !reflect.DeepEqual(rec.Focus, []string{"storyArc"}) {
		t.Errorf("focus = %v, want [storyArc]", rec.Focus)
	}
}
