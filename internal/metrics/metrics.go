// Package metrics exposes Prometheus counters for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interview_maniac"

var (
	// LLMCalls counts requests issued to the generative API.
	LLMCalls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_calls_total",
		Help:      "Requests sent to the generative language API.",
	})

	// LLMErrors counts generative API requests that failed after retries.
	LLMErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_errors_total",
		Help:      "Generative language API requests that failed after retries.",
	})

	// ScoresComputed counts successfully normalized rubric scores.
	ScoresComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_computed_total",
		Help:      "Rubric scores normalized from model responses.",
	})

	// ScoreParseFallbacks counts scoring responses with no extractable JSON.
	ScoreParseFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_parse_fallbacks_total",
		Help:      "Scoring responses that fell back to free text.",
	})

	// ActionsRecorded counts gamification actions by kind.
	ActionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_recorded_total",
		Help:      "Gamification actions recorded, by action kind.",
	}, []string{"action"})

	// AchievementsUnlocked counts achievement unlocks by id.
	AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "achievements_unlocked_total",
		Help:      "Achievements unlocked, by achievement id.",
	}, []string{"achievement"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
