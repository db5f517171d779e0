package model

import "time"

type TopicCategory struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	CategoryName string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_category_name" json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (TopicCategory) TableName() string {
	return "topic_categories"
}

type Topic struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	CategoryID uint64    `gorm:"not null;index" json:"categoryId"`
	TopicName  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_topic_name" json:"topicName"`
	TopicDesc  string    `gorm:"type:varchar(512)" json:"topicDesc"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Topic) TableName() string {
	return "topics"
}

type TopicFollow struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	TopicID   uint64    `gorm:"primaryKey;index" json:"topicId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TopicFollow) TableName() string {
	return "topic_follows"
}
