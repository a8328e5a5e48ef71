package models

import "strings"

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:255;uniqueIndex;not null"`
}

func (Genre) TableName() string {
	return "genres"
}

// NormalizeGenreName is the form genre names are stored and compared in.
func NormalizeGenreName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
