package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/gemini"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
)

// fakeGenerator returns canned replies in order, or an error for prompts
// containing failOn. Safe for concurrent use; ScoreStored runs goroutines.
type fakeGenerator struct {
	mu      sync.Mutex
	replies []string
	calls   int
	failOn  string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && strings.Contains(prompt, f.failOn) {
		return "", errors.New("upstream unavailable")
	}
	reply := f.replies[f.calls%len(f.replies)]
	f.calls++
	return reply, nil
}

func (f *fakeGenerator) Model() string { return "fake-model" }

func validStory() gemini.Story {
	return gemini.Story{
		Role:        "Software Engineer",
		Industry:    "Fintech",
		Achievement: "Cut deploy time in half",
		Because:     "Releases took a full day of manual steps",
		Therefore:   "The team now ships daily",
	}
}

const scoringReply = "```json\n" + `{
  "scores": {"clarity": 5, "relevance": 4, "impact": 5, "metrics": 2, "storyArc": 3, "concision": 4},
  "totalScore": 99,
  "averageScore": 9.9,
  "feedback": {
    "strengths": ["Concrete outcome"],
    "improvements": ["Quantify the impact"],
    "suggestions": ["Add a number to the result"]
  },
  "overallAssessment": "Good story."
}` + "\n```"

func TestScoreStory(t *testing.T) {
	gen := &fakeGenerator{replies: []string{scoringReply}}
	scorer := NewScorer(zap.NewNop(), gen, 3, 0)

	report, err := scorer.ScoreStory(context.Background(), validStory(), false)
	require.NoError(t, err)

	require.True(t, report.Parsed)
	// The model's claimed totals are discarded and recomputed.
	require.Equal(t, 23, report.TotalScore)
	require.Equal(t, 3.8, report.AverageScore)
	require.Equal(t, "Good", string(report.Category))
	require.Equal(t, "low", report.Recommendation.Priority)
	require.Equal(t, "fake-model", report.Model)
	require.Empty(t, report.RawText)
}

func TestScoreStoryMissingFields(t *testing.T) {
	gen := &fakeGenerator{replies: []string{scoringReply}}
	scorer := NewScorer(zap.NewNop(), gen, 3, 0)

	story := validStory()
	story.Because = ""
	story.Therefore = "   "

	_, err := scorer.ScoreStory(context.Background(), story, false)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"because", "therefore"}, verr.Missing)
	require.Zero(t, gen.calls, "invalid stories must not reach the model")
}

func TestScoreStoryUnparseableReply(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"I would rate this story quite highly overall."}}
	scorer := NewScorer(zap.NewNop(), gen, 3, 0)

	report, err := scorer.ScoreStory(context.Background(), validStory(), false)
	require.NoError(t, err)

	require.False(t, report.Parsed)
	require.Equal(t, 0, report.TotalScore)
	require.Equal(t, "Needs Improvement", string(report.Category))
	require.Contains(t, report.RawText, "quite highly")
}

func TestScoreStoryAppendsImprovements(t *testing.T) {
	lowReply := "```json\n" + `{
  "scores": {"clarity": 2, "relevance": 2, "impact": 2, "metrics": 2, "storyArc": 2, "concision": 2},
  "feedback": {"suggestions": ["Start over"]}
}` + "\n```"
	improvementReply := `Here are some ideas: ["Lead with the outcome", "Name the metric", "Trim the setup", "One more that gets dropped"]`

	gen := &fakeGenerator{replies: []string{lowReply, improvementReply}}
	scorer := NewScorer(zap.NewNop(), gen, 3, 0)

	report, err := scorer.ScoreStory(context.Background(), validStory(), true)
	require.NoError(t, err)

	require.Equal(t, 2, gen.calls)
	// Original suggestion plus at most three extras.
	require.Equal(t, []string{"Start over", "Lead with the outcome", "Name the metric", "Trim the setup"},
		report.Feedback.Suggestions)
}

func TestScoreStoredLabelsFailures(t *testing.T) {
	gen := &fakeGenerator{
		replies: []string{scoringReply},
		failOn:  "Broken Role",
	}
	scorer := NewScorer(zap.NewNop(), gen, 2, 0)

	stories := []models.Story{
		storedStory("s1", "Software Engineer"),
		storedStory("s2", "Broken Role"),
		storedStory("s3", "Product Manager"),
	}

	items := scorer.ScoreStored(context.Background(), stories)

	require.Len(t, items, 3)
	require.Equal(t, "s1", items[0].StoryID)
	require.NotNil(t, items[0].Report)
	require.Empty(t, items[0].Error)

	require.Equal(t, "s2", items[1].StoryID)
	require.Nil(t, items[1].Report)
	require.Contains(t, items[1].Error, "upstream unavailable")

	require.NotNil(t, items[2].Report)
}

func TestScoreStoredCancelledContext(t *testing.T) {
	gen := &fakeGenerator{replies: []string{scoringReply}}
	scorer := NewScorer(zap.NewNop(), gen, 1, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stories := []models.Story{
		storedStory("s1", "Software Engineer"),
		storedStory("s2", "Product Manager"),
	}

	items := scorer.ScoreStored(ctx, stories)

	require.Len(t, items, 2)
	// The first batch completes; the remainder is labeled with the context error.
	require.NotNil(t, items[0].Report)
	require.Contains(t, items[1].Error, "context canceled")
}

func storedStory(id, role string) models.Story {
	return models.Story{
		ID:          id,
		Role:        role,
		Industry:    "Fintech",
		Achievement: "Shipped the thing",
		Because:     "It was broken",
		Therefore:   "It works now",
	}
}
