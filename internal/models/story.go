package models

import "time"

// Story is one saved ABT session: the structured narrative fields a user
// filled in, owned by a single user.
type Story struct {
	ID          string `gorm:"primaryKey" json:"id"` // uuid
	UserID      uint   `gorm:"index" json:"-"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`
	Role        string `json:"role"`
	Industry    string `json:"industry"`
	Achievement string `gorm:"type:text" json:"achievement"`
	Because     string `gorm:"type:text" json:"because"`
	Therefore   string `gorm:"type:text" json:"therefore"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}
