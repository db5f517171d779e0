package model

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_username" json:"username"`
	Email        string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_email" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(64)" json:"name"`
	Location     string    `gorm:"type:varchar(64)" json:"location"`
	Sex          string    `gorm:"type:varchar(8)" json:"sex"`
	ShortIntr    string    `gorm:"type:varchar(128)" json:"shortIntr"`
	School       string    `gorm:"type:varchar(64)" json:"school"`
	Industry     string    `gorm:"type:varchar(64)" json:"industry"`
	Discipline   string    `gorm:"type:varchar(64)" json:"discipline"`
	Introduction string    `gorm:"type:text" json:"introduction"`
	Avatar       string    `gorm:"type:varchar(255)" json:"avatar"` // 对象存储中的 key
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
