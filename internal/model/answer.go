package model

import "time"

type Answer struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	QuestionID   uint64    `gorm:"not null;index" json:"questionId"`
	UserID       uint64    `gorm:"not null;index" json:"userId"`
	Body         string    `gorm:"type:text;not null" json:"body"` // 已过滤的 HTML
	Excerpt      string    `gorm:"type:varchar(512)" json:"excerpt"`
	CommentCount int       `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Answer) TableName() string {
	return "answers"
}

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AnswerID  uint64    `gorm:"not null;index" json:"answerId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	Body      string    `gorm:"type:varchar(200);not null" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}
