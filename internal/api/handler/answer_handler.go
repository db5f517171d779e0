package handler

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/response"
	"Zheye/internal/service"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerSvc service.AnswerService
}

func NewAnswerHandler(answerSvc service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerSvc: answerSvc}
}

// SubmitAnswer 表单字段 write_answer、question_id
func (s *AnswerHandler) SubmitAnswer(c *gin.Context) {
	var submit dto.SubmitAnswerDTO
	if err := c.ShouldBind(&submit); err != nil {
		response.Error(c, service.ErrFail)
		return
	}
	res, err := s.answerSvc.SubmitAnswer(c.Request.Context(), currentUserID(c), &submit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AnswerHandler) DeleteAnswer(c *gin.Context) {
	answerID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, service.ErrFail)
		return
	}
	if err := s.answerSvc.DeleteAnswer(c.Request.Context(), currentUserID(c), answerID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SubmitComment 表单字段 answer_id、comment_body
func (s *AnswerHandler) SubmitComment(c *gin.Context) {
	var submit dto.SubmitCommentDTO
	if err := c.ShouldBind(&submit); err != nil {
		response.Error(c, service.ErrCommentInvalid)
		return
	}
	res, err := s.answerSvc.SubmitComment(c.Request.Context(), currentUserID(c), &submit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
