package wire

import (
	"Zheye/internal/api"
	"Zheye/internal/api/config"
	"Zheye/internal/api/handler"
	"Zheye/internal/job"
	"Zheye/internal/pkg/cron"
	"Zheye/internal/pkg/es"
	"Zheye/internal/pkg/kafka"
	"Zheye/internal/pkg/minio"
	"Zheye/internal/pkg/mongo"
	"Zheye/internal/repository"
	"Zheye/internal/service"

	"github.com/gin-gonic/gin"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
	Producer     *kafka.ActivityProducer
}

// BuildApplication kafka 未启用时行为在请求内直接扇出，ES 未启用时搜索走数据库
func BuildApplication(db *gorm.DB, mongoConn *mongoDB.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	topicRepo := repository.NewTopicRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	dynamicRepo := repository.NewDynamicRepo(db)
	inboxRepo := mongo.NewInboxRepo(mongoConn)
	storage := minio.NewObjectStorage()

	var questionES es.QuestionRepo
	if cfg.Elastic.Enable {
		questionES = es.NewQuestionRepo(es.Client)
	}

	var publisher service.ActivityPublisher
	var producer *kafka.ActivityProducer
	if cfg.Kafka.Enable {
		var err error
		producer, err = kafka.NewActivityProducer(cfg)
		if err != nil {
			return nil, err
		}
		publisher = producer
	}

	userService := service.NewUserService(userRepo, storage)
	notifyService := service.NewNotifyService(userFollowRepo, inboxRepo, userService, publisher)
	userFollowService := service.NewUserFollowService(userRepo, userFollowRepo, notifyService)
	dynamicService := service.NewDynamicService(dynamicRepo, topicRepo, questionRepo, answerRepo)
	peopleService := service.NewPeopleService(userService, userFollowService, dynamicService, questionRepo, answerRepo, storage)
	topicService := service.NewTopicService(topicRepo, questionRepo, answerRepo, userService, dynamicService, notifyService)
	questionService := service.NewQuestionService(questionRepo, answerRepo, commentRepo, topicRepo, userService, dynamicService, notifyService)
	answerService := service.NewAnswerService(answerRepo, commentRepo, questionRepo, userRepo, dynamicService, notifyService)
	recommendService := service.NewRecommendService(questionRepo, answerRepo, userService, cfg.Recommend.Size, cfg.Recommend.WindowDays)
	searchService := service.NewSearchService(questionES, questionRepo, userService)

	perPage := cfg.Pagination.FollowersPerPage
	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		UserFollowHandler:   handler.NewUserFollowHandler(userFollowService),
		PeopleHandler:       handler.NewPeopleHandler(peopleService, perPage),
		TopicHandler:        handler.NewTopicHandler(topicService, perPage),
		QuestionHandler:     handler.NewQuestionHandler(questionService, recommendService, searchService, perPage),
		AnswerHandler:       handler.NewAnswerHandler(answerService),
		NotificationHandler: handler.NewNotificationHandler(notifyService, topicService, userService, cfg.Pagination.InboxPerPage),
		WSHandler:           handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewQuestionViewJob(questionService),
		job.NewRecommendJob(recommendService),
	)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, notifyService, questionES)
		if err != nil {
			_ = producer.Close()
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		Producer:     producer,
	}, nil
}
