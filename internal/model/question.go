package model

import "time"

type Question struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"userId"`
	Title       string    `gorm:"type:varchar(60);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ViewCount   int64     `gorm:"not null;default:0" json:"viewCount"`
	AnswerCount int       `gorm:"not null;default:0" json:"answerCount"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionTopic struct {
	QuestionID uint64 `gorm:"primaryKey" json:"questionId"`
	TopicID    uint64 `gorm:"primaryKey;index" json:"topicId"`
}

func (QuestionTopic) TableName() string {
	return "question_topics"
}

type QuestionFollow struct {
	UserID     uint64    `gorm:"primaryKey" json:"userId"`
	QuestionID uint64    `gorm:"primaryKey;index" json:"questionId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (QuestionFollow) TableName() string {
	return "question_follows"
}
