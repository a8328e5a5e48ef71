package models

// join row behind Video.Genres
type VideoGenre struct {
	VideoID int64 `json:"video_id" gorm:"primaryKey;autoIncrement:false"`
	GenreID int64 `json:"genre_id" gorm:"primaryKey;autoIncrement:false;index"`
}

func (VideoGenre) TableName() string {
	return "video_genres"
}
