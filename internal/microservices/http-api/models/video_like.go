package models

import "time"

// VideoLike is one membership of a user in a video's liker set.
type VideoLike struct {
	UserID    string    `gorm:"type:uuid;primaryKey;autoIncrement:false" json:"user_id"`
	VideoID   int64     `gorm:"primaryKey;autoIncrement:false;index" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Video *Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (VideoLike) TableName() string {
	return "video_likes"
}
