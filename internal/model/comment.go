package model

import "time"

// Comment data model. ArticleID and UserID are enforced by foreign keys in
// the database, not here.
type Comment struct {
	ID            int64 `gorm:"primaryKey"`
	Text          string
	DateCommented time.Time
	ArticleID     int64
	UserID        int64
}

func (Comment) TableName() string { return "blogful_comments" }
