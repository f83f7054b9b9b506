package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/gemini"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
	"github.com/maniacmeyers/interview-maniac-app/internal/repository"
	"github.com/maniacmeyers/interview-maniac-app/internal/services"
)

// GeminiHandler proxies the client's generate/improve/score calls so the
// API key never leaves the server.
type GeminiHandler struct {
	log       *zap.Logger
	scorer    *services.Scorer
	generator *services.Generator
}

func NewGeminiHandler(log *zap.Logger, scorer *services.Scorer, generator *services.Generator) *GeminiHandler {
	return &GeminiHandler{log: log, scorer: scorer, generator: generator}
}

func (h *GeminiHandler) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err, "Failed to generate content. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "type": result.Type, "data": result.Data})
}

func (h *GeminiHandler) Improve(c *gin.Context) {
	var req services.ImproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.generator.Improve(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err, "Failed to improve story. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type scoreRequest struct {
	gemini.Story
	StoryID             string `json:"storyId"`
	IncludeImprovements bool   `json:"includeImprovements"`
}

func (h *GeminiHandler) Score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.scorer.ScoreStory(c.Request.Context(), req.Story, req.IncludeImprovements)
	if err != nil {
		h.respondServiceError(c, err, "Failed to score story. Please try again later.")
		return
	}

	// Persist parsed scores for the history timeline. A write failure only
	// costs the timeline entry, not the response.
	if report.Parsed {
		user := c.MustGet("user").(*models.User)
		score := models.NewStoryScore(user.ID, req.StoryID, report.Result, report.Category)
		if err := repository.SaveScore(c.Request.Context(), score); err != nil {
			h.log.Error("Failed to save score history entry", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// respondServiceError distinguishes user-fixable validation errors from
// external-service failures.
func (h *GeminiHandler) respondServiceError(c *gin.Context, err error, genericMsg string) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}
	h.log.Error("Generative API call failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": genericMsg})
}
