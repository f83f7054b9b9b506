package repository

import (
	"context"

	"github.com/maniacmeyers/interview-maniac-app/internal/database"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
)

func SaveScore(ctx context.Context, score *models.StoryScore) error {
	return database.DB.WithContext(ctx).Create(score).Error
}

// ListScoreHistory returns all of a user's scores, oldest first, for the
// dashboard timeline.
func ListScoreHistory(ctx context.Context, userID uint) ([]models.StoryScore, error) {
	var scores []models.StoryScore
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&scores).Error
	return scores, err
}
