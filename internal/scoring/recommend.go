package scoring

// Recommendation tells the user where to focus next, based on the
// normalized rubric.
type Recommendation struct {
	Priority  string   `json:"priority"`
	Focus     []string `json:"focus"`
	NextSteps []string `json:"nextSteps"`
}

var (
	highPrioritySteps = []string{
		"Practice telling your story out loud",
		"Focus on quantifying your results",
		"Clarify the connection between challenge and impact",
	}
	mediumPrioritySteps = []string{
		"Add more specific metrics and numbers",
		`Strengthen the "because" (challenge) section`,
		"Practice concise delivery",
	}
	lowPrioritySteps = []string{
		"Fine-tune story delivery",
		"Practice for different interview contexts",
		"Consider adding backup examples",
	}
)

// Recommend derives a prioritized improvement plan from a normalized result.
// Dimensions scoring <= 2 are weak, dimensions scoring exactly 3 are
// moderate; anything between those buckets is left alone on purpose.
func Recommend(res Result) Recommendation {
	weak, moderate := []string{}, []string{}
	for _, name := range dimensions {
		switch s := res.Scores.dimension(name); {
		case s <= 2:
			weak = append(weak, name)
		case s == 3:
			moderate = append(moderate, name)
		}
	}

	switch {
	case res.AverageScore < 2.5:
		focus := weak
		if len(focus) == 0 {
			// Only reachable when the average disagrees with the clamped
			// dimensions, i.e. the caller fed in a malformed average.
			focus = []string{"overall story structure"}
		}
		return Recommendation{Priority: "high", Focus: focus, NextSteps: highPrioritySteps}
	case res.AverageScore < 3.5:
		focus := make([]string, 0, len(weak)+2)
		focus = append(focus, weak...)
		focus = append(focus, firstN(moderate, 2)...)
		return Recommendation{Priority: "medium", Focus: focus, NextSteps: mediumPrioritySteps}
	default:
		return Recommendation{Priority: "low", Focus: firstN(moderate, 2), NextSteps: lowPrioritySteps}
	}
}

func firstN(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
