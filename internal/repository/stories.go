package repository

import (
	"context"

	"github.com/maniacmeyers/interview-maniac-app/internal/database"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
)

func CreateStory(ctx context.Context, story *models.Story) error {
	return database.DB.WithContext(ctx).Create(story).Error
}

// ListRecentStories returns the user's newest stories, most recent first.
func ListRecentStories(ctx context.Context, userID uint, limit int) ([]models.Story, error) {
	var stories []models.Story
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&stories).Error
	return stories, err
}

func GetStory(ctx context.Context, userID uint, storyID string) (*models.Story, error) {
	var story models.Story
	err := database.DB.WithContext(ctx).
		First(&story, "id = ? AND user_id = ?", storyID, userID).Error
	return &story, err
}
