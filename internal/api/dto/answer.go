package dto

import "time"

type AnswerDTO struct {
	ID            uint64        `json:"id"`
	QuestionID    uint64        `json:"question_id"`
	QuestionTitle string        `json:"question_title,omitempty"`
	Body          string        `json:"body"`
	Excerpt       string        `json:"excerpt"`
	CommentCount  int           `json:"comment_count"`
	CreatedAt     time.Time     `json:"created_at"`
	Author        *UserDTO      `json:"author"`
	Comments      []*CommentDTO `json:"comments,omitempty"`
}

// SubmitAnswerDTO 回答表单
type SubmitAnswerDTO struct {
	WriteAnswer string `form:"write_answer"`
	QuestionID  string `form:"question_id"`
}

type CommentDTO struct {
	ID        uint64    `json:"id"`
	AnswerID  uint64    `json:"answer_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Author    *UserDTO  `json:"author"`
}

// SubmitCommentDTO 评论表单
type SubmitCommentDTO struct {
	AnswerID    string `form:"answer_id"`
	CommentBody string `form:"comment_body"`
}

type CommentResultDTO struct {
	Username string `json:"username"`
	Comment  string `json:"comment"`
}
