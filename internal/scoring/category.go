package scoring

// Category is the qualitative bucket for an average rubric score.
type Category string

const (
	CategoryExcellent        Category = "Excellent"
	CategoryGood             Category = "Good"
	CategoryAverage          Category = "Average"
	CategoryBelowAverage     Category = "Below Average"
	CategoryNeedsImprovement Category = "Needs Improvement"
)

// Categorize maps an average score to its category. Defined for any input;
// out-of-range values fall into the nearest bucket by the same thresholds.
func Categorize(avg float64) Category {
	switch {
	case avg >= 4.5:
		return CategoryExcellent
	case avg >= 3.5:
		return CategoryGood
	case avg >= 2.5:
		return CategoryAverage
	case avg >= 1.5:
		return CategoryBelowAverage
	default:
		return CategoryNeedsImprovement
	}
}
