package model

import "time"

// Article data model, a row of blogful_articles.
type Article struct {
	ID            int64 `gorm:"primaryKey"`
	Style         string
	Title         string
	Content       string
	DatePublished time.Time `gorm:"default:now()"`
}

func (Article) TableName() string { return "blogful_articles" }
