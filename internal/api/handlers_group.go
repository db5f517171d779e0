package api

import "Zheye/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	UserFollowHandler   *handler.UserFollowHandler
	PeopleHandler       *handler.PeopleHandler
	TopicHandler        *handler.TopicHandler
	QuestionHandler     *handler.QuestionHandler
	AnswerHandler       *handler.AnswerHandler
	NotificationHandler *handler.NotificationHandler
	WSHandler           *handler.WsHandler
}
