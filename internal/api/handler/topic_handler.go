package handler

import (
	"Zheye/internal/pkg/response"
	"Zheye/internal/service"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	topicSvc service.TopicService
	perPage  int
}

func NewTopicHandler(topicSvc service.TopicService, perPage int) *TopicHandler {
	return &TopicHandler{topicSvc: topicSvc, perPage: perPage}
}

// Topics 话题广场，cate 为分类 ID
func (s *TopicHandler) Topics(c *gin.Context) {
	res, err := s.topicSvc.Topics(c.Request.Context(), currentUserID(c), c.Query("cate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// FollowedTopics 已关注的话题，指定的话题未关注时附带 NOFOUND 提示
func (s *TopicHandler) FollowedTopics(c *gin.Context) {
	res, notFound, err := s.topicSvc.FollowedTopics(c.Request.Context(), currentUserID(c), c.Query("topic"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if notFound {
		response.SuccessWithMessage(c, service.MsgTopicNotFound, res)
		return
	}
	response.Success(c, res)
}

func (s *TopicHandler) TopicAll(c *gin.Context) {
	res, err := s.topicSvc.TopicAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *TopicHandler) FollowTopic(c *gin.Context) {
	topicID, ok := pathID(c, "topic_id")
	if !ok {
		response.Error(c, service.ErrFail)
		return
	}
	if err := s.topicSvc.FollowTopic(c.Request.Context(), currentUserID(c), topicID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *TopicHandler) UnfollowTopic(c *gin.Context) {
	topicID, ok := pathID(c, "topic_id")
	if !ok {
		response.Error(c, service.ErrFail)
		return
	}
	if err := s.topicSvc.UnfollowTopic(c.Request.Context(), currentUserID(c), topicID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *TopicHandler) TopicDetail(c *gin.Context) {
	topicID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, service.ErrTopicNotFound)
		return
	}
	res, err := s.topicSvc.TopicDetail(c.Request.Context(), currentUserID(c), topicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *TopicHandler) TopicFollowers(c *gin.Context) {
	topicID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, service.ErrTopicNotFound)
		return
	}
	res, err := s.topicSvc.TopicFollowers(c.Request.Context(), topicID, pager(c, s.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Questions 每个关注话题下的最新问题
func (s *TopicHandler) Questions(c *gin.Context) {
	res, err := s.topicSvc.FollowedTopicQuestions(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
