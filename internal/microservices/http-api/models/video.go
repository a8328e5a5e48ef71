package models

import "time"

type Video struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string    `json:"title" gorm:"size:100;not null;index"`
	Description  *string   `json:"description,omitempty" gorm:"size:300"`
	ReleaseDate  time.Time `json:"release_date" gorm:"type:date;not null"`
	Producer     string    `json:"producer" gorm:"size:255;not null"`
	StarActors   string    `json:"star_actors" gorm:"size:255;not null"`
	Thumbnail    string    `json:"thumbnail"`
	VideoFile    string    `json:"video_file"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UploadedByID string    `json:"uploaded_by_id" gorm:"type:uuid;not null;index"`

	// associations
	UploadedBy *User   `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID;constraint:OnDelete:CASCADE;"`
	Genres     []Genre `json:"genres,omitempty" gorm:"many2many:video_genres;constraint:OnDelete:CASCADE;"`
}

func (Video) TableName() string {
	return "videos"
}
