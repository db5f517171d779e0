package es

import "time"

// QuestionES 写入 ES 的问题文档，标题与描述均已做繁转简
type QuestionES struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AnswerCount int       `json:"answer_count"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
}
