package handler

import (
	"Zheye/internal/pkg/response"
	"Zheye/internal/service"

	"github.com/gin-gonic/gin"
)

// PeopleHandler 个人主页及其子页面，未登录也可访问
type PeopleHandler struct {
	peopleSvc service.PeopleService
	perPage   int
}

func NewPeopleHandler(peopleSvc service.PeopleService, perPage int) *PeopleHandler {
	return &PeopleHandler{peopleSvc: peopleSvc, perPage: perPage}
}

// People 个人主页，activities 页复用同样的数据
func (s *PeopleHandler) People(c *gin.Context) {
	people, err := s.peopleSvc.People(c.Request.Context(), c.Param("username"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, people)
}

func (s *PeopleHandler) Followers(c *gin.Context) {
	page, err := s.peopleSvc.Followers(c.Request.Context(), c.Param("username"), currentUserID(c), pager(c, s.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PeopleHandler) Following(c *gin.Context) {
	page, err := s.peopleSvc.Following(c.Request.Context(), c.Param("username"), currentUserID(c), pager(c, s.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PeopleHandler) Asks(c *gin.Context) {
	page, err := s.peopleSvc.Asks(c.Request.Context(), c.Param("username"), currentUserID(c), pager(c, s.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PeopleHandler) Answers(c *gin.Context) {
	page, err := s.peopleSvc.Answers(c.Request.Context(), c.Param("username"), currentUserID(c), pager(c, s.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}
