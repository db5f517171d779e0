package api

import (
	"Zheye/internal/api/middleware"
	"Zheye/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)
			authGroup.POST("/logout", middleware.AuthMiddleware(), group.UserHandler.Logout)
		}

		// 游客可访问，登录后带上关注状态
		optGroup := apiGroup.Group("")
		optGroup.Use(middleware.AuthOptionalMiddleware())
		{
			optGroup.GET("/people/:username", group.PeopleHandler.People)
			optGroup.GET("/people/:username/activities", group.PeopleHandler.People)
			optGroup.GET("/people/:username/followers", group.PeopleHandler.Followers)
			optGroup.GET("/people/:username/following", group.PeopleHandler.Following)
			optGroup.GET("/people/:username/asks", group.PeopleHandler.Asks)
			optGroup.GET("/people/:username/answers", group.PeopleHandler.Answers)
			optGroup.GET("/topic/:id/followers", group.TopicHandler.TopicFollowers)
			optGroup.GET("/question/:id/followers", group.QuestionHandler.QuestionFollowers)
			optGroup.GET("/question/search", group.QuestionHandler.Search)
		}

		loginGroup := apiGroup.Group("")
		loginGroup.Use(middleware.AuthMiddleware())
		{
			loginGroup.GET("", group.NotificationHandler.Index)
			loginGroup.GET("/", group.NotificationHandler.Index)

			loginGroup.GET("/edit-profile", group.UserHandler.GetEditProfile)
			loginGroup.POST("/edit-profile", group.UserHandler.EditProfile)
			loginGroup.POST("/people/images", group.UserHandler.ChangeAvatar)

			loginGroup.POST("/follow/:username", group.UserFollowHandler.Follow)
			loginGroup.POST("/unfollow/:username", group.UserFollowHandler.Unfollow)

			loginGroup.GET("/topics", group.TopicHandler.Topics)
			loginGroup.GET("/topic", group.TopicHandler.FollowedTopics)
			loginGroup.GET("/topic_all", group.TopicHandler.TopicAll)
			loginGroup.GET("/topic/:id", group.TopicHandler.TopicDetail)
			loginGroup.POST("/follow_topic/:topic_id", group.TopicHandler.FollowTopic)
			loginGroup.POST("/unfollow_topic/:topic_id", group.TopicHandler.UnfollowTopic)

			loginGroup.GET("/question", group.TopicHandler.Questions)
			loginGroup.GET("/question/following", group.QuestionHandler.FollowedQuestions)
			loginGroup.GET("/question/:id", group.QuestionHandler.QuestionDetail)
			loginGroup.POST("/follow_question/:question_id", group.QuestionHandler.FollowQuestion)
			loginGroup.POST("/unfollow_question/:question_id", group.QuestionHandler.UnfollowQuestion)
			loginGroup.POST("/submit_question", group.QuestionHandler.SubmitQuestion)
			loginGroup.GET("/explore", group.QuestionHandler.Explore)

			loginGroup.POST("/answer_submit", group.AnswerHandler.SubmitAnswer)
			loginGroup.POST("/delete/answer/:id", group.AnswerHandler.DeleteAnswer)
			loginGroup.POST("/submit_comment", group.AnswerHandler.SubmitComment)
		}

		notifyGroup := apiGroup.Group("/notifications")
		notifyGroup.Use(middleware.AuthMiddleware())
		{
			notifyGroup.GET("", group.NotificationHandler.GetNotificationList)
			notifyGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notifyGroup.POST("/read", group.NotificationHandler.MarkRead)
			notifyGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		apiGroup.GET("/ws", group.WSHandler.Connect)
	}

	return r
}
