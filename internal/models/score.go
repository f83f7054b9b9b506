package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/maniacmeyers/interview-maniac-app/internal/scoring"
)

// StoryScore is one normalized rubric result, kept for the score history
// timeline. Totals are the recomputed values, never the model's own.
type StoryScore struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	StoryID           string `gorm:"index" json:"storyId"`
	UserID            uint   `gorm:"index" json:"-"`
	Clarity           int    `json:"clarity"`
	Relevance         int    `json:"relevance"`
	Impact            int    `json:"impact"`
	Metrics           int    `json:"metrics"`
	StoryArc          int    `json:"storyArc"`
	Concision         int    `json:"concision"`
	TotalScore        int    `json:"totalScore"`
	AverageScore      float64 `json:"averageScore"`
	Category          string  `json:"category"`
	Strengths         pq.StringArray `gorm:"type:text[]" json:"strengths"`
	Improvements      pq.StringArray `gorm:"type:text[]" json:"improvements"`
	Suggestions       pq.StringArray `gorm:"type:text[]" json:"suggestions"`
	OverallAssessment string         `gorm:"type:text" json:"overallAssessment"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// NewStoryScore flattens a normalized result into a persistable row.
func NewStoryScore(userID uint, storyID string, res scoring.Result, category scoring.Category) *StoryScore {
	return &StoryScore{
		StoryID:           storyID,
		UserID:            userID,
		Clarity:           res.Scores.Clarity,
		Relevance:         res.Scores.Relevance,
		Impact:            res.Scores.Impact,
		Metrics:           res.Scores.Metrics,
		StoryArc:          res.Scores.StoryArc,
		Concision:         res.Scores.Concision,
		TotalScore:        res.TotalScore,
		AverageScore:      res.AverageScore,
		Category:          string(category),
		Strengths:         pq.StringArray(res.Feedback.Strengths),
		Improvements:      pq.StringArray(res.Feedback.Improvements),
		Suggestions:       pq.StringArray(res.Feedback.Suggestions),
		OverallAssessment: res.OverallAssessment,
	}
}
