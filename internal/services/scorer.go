package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/gemini"
	"github.com/maniacmeyers/interview-maniac-app/internal/metrics"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
	"github.com/maniacmeyers/interview-maniac-app/internal/scoring"
)

// TextGenerator is the slice of the gemini client the services need. Tests
// substitute a canned implementation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ValidationError reports missing narrative fields before a request is even
// issued. Handlers surface it to the user as-is; it is never retried.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ScoreReport is the full scoring outcome returned to the client.
type ScoreReport struct {
	scoring.Result
	Category       scoring.Category       `json:"category"`
	Recommendation scoring.Recommendation `json:"recommendation"`
	Model          string                 `json:"model"`
	ProcessingMS   int64                  `json:"processingMs"`
	// Parsed is false when the model reply contained no extractable JSON;
	// the report then carries zero scores and the raw reply text.
	Parsed  bool   `json:"parsed"`
	RawText string `json:"rawText,omitempty"`
}

// Scorer orchestrates scoring calls: validation, prompt construction, the
// generative call, defensive parsing and normalization.
type Scorer struct {
	log        *zap.Logger
	gen        TextGenerator
	batchSize  int
	batchDelay time.Duration
}

func NewScorer(log *zap.Logger, gen TextGenerator, batchSize int, batchDelay time.Duration) *Scorer {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Scorer{log: log, gen: gen, batchSize: batchSize, batchDelay: batchDelay}
}

func validateStory(s gemini.Story) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"role", s.Role},
		{"industry", s.Industry},
		{"achievement", s.Achievement},
		{"because", s.Because},
		{"therefore", s.Therefore},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ScoreStory scores one ABT story. The returned report always has totals
// recomputed from the clamped rubric; the model's own totalScore and
// averageScore are ignored. withImprovements adds a second, best-effort
// call asking for extra suggestions when the story scored below 3.5.
func (s *Scorer) ScoreStory(ctx context.Context, story gemini.Story, withImprovements bool) (*ScoreReport, error) {
	if err := validateStory(story); err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, gemini.ScoringPrompt(story))
	if err != nil {
		return nil, fmt.Errorf("scoring call failed: %w", err)
	}

	report := s.buildReport(text)
	report.Model = s.gen.Model()
	report.ProcessingMS = time.Since(start).Milliseconds()

	if report.Parsed {
		metrics.ScoresComputed.Inc()
	} else {
		metrics.ScoreParseFallbacks.Inc()
	}

	if withImprovements && report.Parsed && report.AverageScore < 3.5 {
		s.appendImprovements(ctx, story, report)
	}

	return report, nil
}

// buildReport turns raw model output into a report. Unparseable output
// falls back to zero scores plus the raw text; the normalizer is never fed
// unparsed input.
func (s *Scorer) buildReport(text string) *ScoreReport {
	payload, ok := gemini.ExtractJSON(text)
	if !ok {
		s.log.Warn("Scoring response contained no JSON, falling back to raw text")
		return &ScoreReport{
			Result:   scoring.Normalize(scoring.RawResult{}),
			Category: scoring.CategoryNeedsImprovement,
			RawText:  text,
		}
	}

	var raw scoring.RawResult
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		s.log.Warn("Scoring response JSON did not match the expected shape", zap.Error(err))
		return &ScoreReport{
			Result:   scoring.Normalize(scoring.RawResult{}),
			Category: scoring.CategoryNeedsImprovement,
			RawText:  text,
		}
	}

	result := scoring.Normalize(raw)
	return &ScoreReport{
		Result:         result,
		Category:       scoring.Categorize(result.AverageScore),
		Recommendation: scoring.Recommend(result),
		Parsed:         true,
	}
}

// appendImprovements asks for up to 3 extra suggestions for the weakest
// dimensions. Failure here is logged and swallowed; the main report stands.
func (s *Scorer) appendImprovements(ctx context.Context, story gemini.Story, report *ScoreReport) {
	weak := report.Recommendation.Focus
	text, err := s.gen.Generate(ctx, gemini.ImprovementPrompt(story, weak))
	if err != nil {
		s.log.Warn("Improvement suggestions call failed", zap.Error(err))
		return
	}

	var extra []string
	cleaned := strings.TrimSpace(text)
	if i := strings.IndexByte(cleaned, '['); i >= 0 {
		if j := strings.LastIndexByte(cleaned, ']'); j > i {
			cleaned = cleaned[i : j+1]
		}
	}
	if err := json.Unmarshal([]byte(cleaned), &extra); err != nil {
		s.log.Warn("Could not parse improvement suggestions", zap.Error(err))
		return
	}
	if len(extra) > 3 {
		extra = extra[:3]
	}
	report.Feedback.Suggestions = append(report.Feedback.Suggestions, extra...)
}

// BatchItem labels one story's outcome in a batch run, so callers can tell
// which stories succeeded.
type BatchItem struct {
	StoryID string       `json:"storyId"`
	Report  *ScoreReport `json:"report,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ScoreStored re-scores stored stories in groups of batchSize with a delay
// between groups, to stay under the API's rate limit. Stories within one
// group run concurrently. A failed story is labeled and skipped; it never
// aborts the rest of the run.
func (s *Scorer) ScoreStored(ctx context.Context, stories []models.Story) []BatchItem {
	items := make([]BatchItem, len(stories))

	for i := 0; i < len(stories); i += s.batchSize {
		end := i + s.batchSize
		if end > len(stories) {
			end = len(stories)
		}

		var wg sync.WaitGroup
		for j := i; j < end; j++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				story := stories[idx]
				report, err := s.ScoreStory(ctx, gemini.Story{
					Role:        story.Role,
					Industry:    story.Industry,
					Achievement: story.Achievement,
					Because:     story.Because,
					Therefore:   story.Therefore,
				}, false) // skip the improvement pass in batch runs
				if err != nil {
					s.log.Error("Batch scoring failed for story",
						zap.String("storyID", story.ID),
						zap.Error(err),
					)
					items[idx] = BatchItem{StoryID: story.ID, Error: err.Error()}
					return
				}
				items[idx] = BatchItem{StoryID: story.ID, Report: report}
			}(j)
		}
		wg.Wait()

		if end < len(stories) && s.batchDelay > 0 {
			select {
			case <-time.After(s.batchDelay):
			case <-ctx.Done():
				for j := end; j < len(stories); j++ {
					items[j] = BatchItem{StoryID: stories[j].ID, Error: ctx.Err().Error()}
				}
				return items
			}
		}
	}

	return items
}
