package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/maniacmeyers/interview-maniac-app/internal/database"
	"github.com/maniacmeyers/interview-maniac-app/internal/models"
)

// GetOrCreateProgress loads the user's progress row, creating the all-zero
// default on first use.
func GetOrCreateProgress(ctx context.Context, userID uint) (*models.Progress, error) {
	var progress models.Progress
	err := database.DB.WithContext(ctx).First(&progress, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.Progress{
			UserID:       userID,
			Level:        1,
			Achievements: pq.StringArray{},
		}
		err = database.DB.WithContext(ctx).Create(&progress).Error
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// SaveProgress writes the whole aggregate back in one statement, so stats
// and counters can never be persisted separately.
func SaveProgress(ctx context.Context, progress *models.Progress) error {
	return database.DB.WithContext(ctx).Save(progress).Error
}
