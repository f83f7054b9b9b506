package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/gamification"
	"github.com/maniacmeyers/interview-maniac-app/internal/metrics"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
	"github.com/maniacmeyers/interview-maniac-app/internal/repository"
)

// ProgressHandler owns the gamification endpoints. The ledger transition is
// injected so the handler never reaches for a package global.
type ProgressHandler struct {
	log    *zap.Logger
	record gamification.RecordFunc
}

func NewProgressHandler(log *zap.Logger, record gamification.RecordFunc) *ProgressHandler {
	return &ProgressHandler{log: log, record: record}
}

func (h *ProgressHandler) Get(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	progress, err := repository.GetOrCreateProgress(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":        progress.Stats(),
		"counters":     progress.Counters(),
		"achievements": gamification.Catalog,
	})
}

type actionRequest struct {
	Action string `json:"action"`
}

// RecordAction applies one user action to the ledger and persists the whole
// aggregate in a single write. The response lists the achievements unlocked
// by this call only; the client owns the one-shot notification display.
func (h *ProgressHandler) RecordAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	action, err := gamification.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := c.MustGet("user").(*models.User)
	progress, err := repository.GetOrCreateProgress(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	stats, counters, unlocked := h.record(progress.Stats(), progress.Counters(), action, gamification.Today())
	progress.Apply(stats, counters)

	if err := repository.SaveProgress(c.Request.Context(), progress); err != nil {
		h.log.Error("Failed to save progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	metrics.ActionsRecorded.WithLabelValues(string(action)).Inc()

	newlyUnlocked := make([]gamification.Achievement, 0, len(unlocked))
	for _, id := range unlocked {
		metrics.AchievementsUnlocked.WithLabelValues(id).Inc()
		if a, ok := gamification.ByID(id); ok {
			newlyUnlocked = append(newlyUnlocked, a)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"counters":        counters,
		"pointsEarned":    gamification.Points(action),
		"newAchievements": newlyUnlocked,
	})
}
