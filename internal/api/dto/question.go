package dto

import "time"

type QuestionDTO struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ViewCount   int64       `json:"view_count"`
	AnswerCount int         `json:"answer_count"`
	CreatedAt   time.Time   `json:"created_at"`
	Author      *UserDTO    `json:"author"`
	Topics      []*TopicDTO `json:"topics,omitempty"`
}

// SubmitQuestionDTO 提问表单，topic 为逗号分隔的话题ID
type SubmitQuestionDTO struct {
	Question     string `form:"question"`
	QuestionDesc string `form:"question_desc"`
	Topic        string `form:"topic"`
}

type SubmitQuestionResultDTO struct {
	Result uint64 `json:"result"`
}

type QuestionDetailDTO struct {
	Question      *QuestionDTO `json:"question"`
	Answers       []*AnswerDTO `json:"answers"`
	FollowerCount int64        `json:"follower_count"`
	IsFollowing   bool         `json:"is_following"`
}

// QuestionWithAnswerDTO 问题及其最佳回答
type QuestionWithAnswerDTO struct {
	Question *QuestionDTO `json:"question"`
	Answer   *AnswerDTO   `json:"answer"`
}

type QuestionFollowersDTO struct {
	Question   *QuestionDTO `json:"question"`
	Pagination *Page        `json:"pagination"`
}
