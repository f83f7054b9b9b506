package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/config"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
	"github.com/maniacmeyers/interview-maniac-app/internal/repository"
	"github.com/maniacmeyers/interview-maniac-app/internal/services"
)

type StoriesHandler struct {
	log    *zap.Logger
	scorer *services.Scorer
}

func NewStoriesHandler(log *zap.Logger, scorer *services.Scorer) *StoriesHandler {
	return &StoriesHandler{log: log, scorer: scorer}
}

type storyRequest struct {
	Role        string `json:"role"`
	Industry    string `json:"industry"`
	Achievement string `json:"achievement"`
	Because     string `json:"because"`
	Therefore   string `json:"therefore"`
}

func (r storyRequest) missingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"role", r.Role},
		{"industry", r.Industry},
		{"achievement", r.Achievement},
		{"because", r.Because},
		{"therefore", r.Therefore},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (h *StoriesHandler) Save(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if missing := req.missingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields: " + strings.Join(missing, ", ")})
		return
	}

	user := c.MustGet("user").(*models.User)
	story := &models.Story{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Role:        req.Role,
		Industry:    req.Industry,
		Achievement: req.Achievement,
		Because:     req.Because,
		Therefore:   req.Therefore,
	}

	if err := repository.CreateStory(c.Request.Context(), story); err != nil {
		h.log.Error("Failed to save story", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save story"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"story": story})
}

func (h *StoriesHandler) List(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	limit := config.Conf.Scoring.RecentLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 20 {
			limit = n
		}
	}

	stories, err := repository.ListRecentStories(c.Request.Context(), user.ID, limit)
	if err != nil {
		h.log.Error("Failed to list stories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

// ScoreAll re-scores the user's recent stories in rate-limited batches and
// returns per-story outcomes; some stories failing is an expected result,
// not an error.
func (h *StoriesHandler) ScoreAll(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	stories, err := repository.ListRecentStories(c.Request.Context(), user.ID, config.Conf.Scoring.RecentLimit)
	if err != nil {
		h.log.Error("Failed to load stories for batch scoring", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stories"})
		return
	}
	if len(stories) == 0 {
		c.JSON(http.StatusOK, gin.H{"results": []services.BatchItem{}})
		return
	}

	items := h.scorer.ScoreStored(c.Request.Context(), stories)

	for _, item := range items {
		if item.Report == nil || !item.Report.Parsed {
			continue
		}
		score := models.NewStoryScore(user.ID, item.StoryID, item.Report.Result, item.Report.Category)
		if err := repository.SaveScore(c.Request.Context(), score); err != nil {
			h.log.Error("Failed to save batch score", zap.String("storyID", item.StoryID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": items})
}
