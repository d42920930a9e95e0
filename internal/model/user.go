package model

import "time"

// User data model. Password holds a bcrypt hash and must never leave the
// service layer.
type User struct {
	ID          int64 `gorm:"primaryKey"`
	Fullname    string
	Username    string
	Nickname    *string
	Password    *string
	DateCreated time.Time `gorm:"default:now()"`
}

func (User) TableName() string { return "blogful_users" }
