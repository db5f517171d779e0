package handler

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/response"
	"Zheye/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionSvc  service.QuestionService
	recommendSvc service.RecommendService
	searchSvc    service.SearchService
	perPage      int
}

func NewQuestionHandler(
	questionSvc service.QuestionService,
	recommendSvc service.RecommendService,
	searchSvc service.SearchService,
	perPage int,
) *QuestionHandler {
	return &QuestionHandler{
		questionSvc:  questionSvc,
		recommendSvc: recommendSvc,
		searchSvc:    searchSvc,
		perPage:      perPage,
	}
}

// SubmitQuestion 表单字段 question、question_desc、topic
func (s *QuestionHandler) SubmitQuestion(c *gin.Context) {
	var submit dto.SubmitQuestionDTO
	if err := c.ShouldBind(&submit); err != nil {
		response.Error(c, service.ErrQuestionInvalid)
		return
	}
	res, err := s.questionSvc.SubmitQuestion(c.Request.Context(), currentUserID(c), &submit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *QuestionHandler) FollowQuestion(c *gin.Context) {
	questionID, ok := pathID(c, "question_id")
	if !ok {
		response.Error(c, service.ErrFail)
		return
	}
	if err := s.questionSvc.FollowQuestion(c.Request.Context(), currentUserID(c), questionID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *QuestionHandler) UnfollowQuestion(c *gin.Context) {
	questionID, ok := pathID(c, "question_id")
	if !ok {
		response.Error(c, service.ErrFail)
		return
	}
	if err := s.questionSvc.UnfollowQuestion(c.Request.Context(), currentUserID(c), questionID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *QuestionHandler) FollowedQuestions(c *gin.Context) {
	res, err := s.questionSvc.FollowedQuestions(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *QuestionHandler) QuestionDetail(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, service.ErrQuestionNotFound)
		return
	}
	res, err := s.questionSvc.QuestionDetail(c.Request.Context(), currentUserID(c), questionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *QuestionHandler) QuestionFollowers(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, service.ErrQuestionNotFound)
		return
	}
	res, err := s.questionSvc.QuestionFollowers(c.Request.Context(), questionID, pager(c, s.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *QuestionHandler) Explore(c *gin.Context) {
	res, err := s.recommendSvc.Explore(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *QuestionHandler) Search(c *gin.Context) {
	res, err := s.searchSvc.SearchQuestions(c.Request.Context(), c.Query("keyword"), pager(c, s.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
