package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_video"`
	VideoID   int64     `json:"video_id" gorm:"not null;uniqueIndex:idx_ratings_user_video;index"`
	Rating    int       `json:"rating" gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Video *Video `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
