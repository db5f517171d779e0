package handler

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/response"
	"Zheye/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// NotificationHandler 首页动态流与收件箱
type NotificationHandler struct {
	notifySvc service.NotifyService
	topicSvc  service.TopicService
	userSvc   service.UserService
	perPage   int
}

func NewNotificationHandler(
	notifySvc service.NotifyService,
	topicSvc service.TopicService,
	userSvc service.UserService,
	perPage int,
) *NotificationHandler {
	return &NotificationHandler{
		notifySvc: notifySvc,
		topicSvc:  topicSvc,
		userSvc:   userSvc,
		perPage:   perPage,
	}
}

// Index 首页：全部话题 + 当前用户的收件箱
func (h *NotificationHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	feedPager := pager(c, h.perPage)
	res := &dto.IndexDTO{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := h.userSvc.GetUserSimpleMap(gCtx, []uint64{userID})
		if err != nil {
			return err
		}
		res.User = users[userID]
		return nil
	})
	g.Go(func() error {
		var err error
		res.Topics, err = h.topicSvc.AllTopics(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		res.Feed, err = h.notifySvc.GetInbox(gCtx, userID, feedPager)
		return err
	})
	if err := g.Wait(); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, res)
}

// GetNotificationList 获取通知列表
func (h *NotificationHandler) GetNotificationList(c *gin.Context) {
	list, err := h.notifySvc.GetInbox(c.Request.Context(), currentUserID(c), pager(c, h.perPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

// GetUnreadCount 获取未读数
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	unread, err := h.notifySvc.GetUnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, unread)
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := h.notifySvc.MarkRead(c.Request.Context(), currentUserID(c), req.MsgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// MarkAllRead 一键已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	err := h.notifySvc.MarkAllRead(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
