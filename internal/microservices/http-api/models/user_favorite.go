package models

import "time"

// UserFavorite backs User.Favorites; CreatedAt orders the favorites list.
type UserFavorite struct {
	UserID    string    `gorm:"type:uuid;primaryKey;autoIncrement:false" json:"user_id"`
	VideoID   int64     `gorm:"primaryKey;autoIncrement:false;index" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Video *Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE;" json:"video,omitempty"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}
