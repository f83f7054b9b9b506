package scoring

import (
	"math"
	"strconv"
	"strings"
)

// Rubric holds the six ABT scoring dimensions. After normalization every
// field is an integer in [0, 5].
type Rubric struct {
	Clarity   int `json:"clarity"`
	Relevance int `json:"relevance"`
	Impact    int `json:"impact"`
	Metrics   int `json:"metrics"`
	StoryArc  int `json:"storyArc"`
	Concision int `json:"concision"`
}

type Feedback struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Suggestions  []string `json:"suggestions"`
}

// RawResult is the wire shape the model returns. Scores are declared as loose
// values because the model occasionally returns strings or floats, omits
// fields, or reports a totalScore that does not match its own rubric.
type RawResult struct {
	Scores            map[string]any `json:"scores"`
	TotalScore        any            `json:"totalScore"`
	AverageScore      any            `json:"averageScore"`
	Feedback          Feedback       `json:"feedback"`
	OverallAssessment string         `json:"overallAssessment"`
}

// Result is a rubric the rest of the application can trust: clamped
// dimensions with totals recomputed from them.
type Result struct {
	Scores            Rubric   `json:"scores"`
	TotalScore        int      `json:"totalScore"`
	AverageScore      float64  `json:"averageScore"`
	Feedback          Feedback `json:"feedback"`
	OverallAssessment string   `json:"overallAssessment"`
}

// Dimension names in rubric order. Recommendation output iterates this list
// so identical inputs always produce identical output.
var dimensions = [6]string{"clarity", "relevance", "impact", "metrics", "storyArc", "concision"}

func (r Rubric) dimension(name string) int {
	switch name {
	case "clarity":
		return r.Clarity
	case "relevance":
		return r.Relevance
	case "impact":
		return r.Impact
	case "metrics":
		return r.Metrics
	case "storyArc":
		return r.StoryArc
	case "concision":
		return r.Concision
	}
	return 0
}

// Normalize converts an untrusted model response into a consistent Result.
// Each dimension is coerced to an integer in [0, 5]; non-numeric or missing
// values become 0. TotalScore and AverageScore are always recomputed from the
// clamped dimensions, never taken from the response. Never fails.
func Normalize(raw RawResult) Result {
	rubric := Rubric{
		Clarity:   clampScore(raw.Scores["clarity"]),
		Relevance: clampScore(raw.Scores["relevance"]),
		Impact:    clampScore(raw.Scores["impact"]),
		Metrics:   clampScore(raw.Scores["metrics"]),
		StoryArc:  clampScore(raw.Scores["storyArc"]),
		Concision: clampScore(raw.Scores["concision"]),
	}

	total := rubric.Clarity + rubric.Relevance + rubric.Impact +
		rubric.Metrics + rubric.StoryArc + rubric.Concision
	avg := math.Round(float64(total)/6*10) / 10

	fb := raw.Feedback
	if fb.Strengths == nil {
		fb.Strengths = []string{}
	}
	if fb.Improvements == nil {
		fb.Improvements = []string{}
	}
	if fb.Suggestions == nil {
		fb.Suggestions = []string{}
	}

	return Result{
		Scores:            rubric,
		TotalScore:        total,
		AverageScore:      avg,
		Feedback:          fb,
		OverallAssessment: raw.OverallAssessment,
	}
}

// clampScore coerces a loosely typed score value to an integer in [0, 5].
func clampScore(v any) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	s := int(math.Round(f))
	if s < 0 {
		return 0
	}
	if s > 5 {
		return 5
	}
	return s
}
