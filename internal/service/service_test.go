package service

import (
	"Zheye/internal/api/config"
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/mongo"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/pkg/security"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeInbox 内存版收件箱
type fakeInbox struct {
	mu    sync.Mutex
	items []*mongo.InboxModel
}

func (f *fakeInbox) InsertMany(_ context.Context, items []*mongo.InboxModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeInbox) byReceiver(userID uint64) []*mongo.InboxModel {
	res := make([]*mongo.InboxModel, 0)
	for _, it := range f.items {
		if it.ReceiverID == userID {
			res = append(res, it)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res
}

func (f *fakeInbox) List(_ context.Context, userID uint64, limit, offset int64) ([]*mongo.InboxModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.byReceiver(userID)
	if offset >= int64(len(all)) {
		return []*mongo.InboxModel{}, nil
	}
	end := offset + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[offset:end], nil
}

func (f *fakeInbox) Count(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byReceiver(userID))), nil
}

func (f *fakeInbox) UnreadCount(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, it := range f.byReceiver(userID) {
		if !it.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeInbox) MarkAsRead(_ context.Context, userID uint64, msgID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongoDB.ErrNoDocuments
	}
	for _, it := range f.items {
		if it.ID == id && it.ReceiverID == userID {
			it.IsRead = true
			return nil
		}
	}
	return mongoDB.ErrNoDocuments
}

func (f *fakeInbox) MarkAllAsRead(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ReceiverID == userID {
			it.IsRead = true
		}
	}
	return nil
}

// fakeStorage 内存版对象存储
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = data
	return objectName, nil
}

func (f *fakeStorage) Delete(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectName)
	return nil
}

func (f *fakeStorage) PublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	return "http://oss.test/zheye/" + objectName
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*dto.ActivityEvent
}

func (f *fakePublisher) PublishActivity(_ context.Context, event *dto.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

// testEnv 一套基于 sqlite 与 miniredis 的完整服务
type testEnv struct {
	db      *gorm.DB
	mr      *miniredis.Miniredis
	inbox   *fakeInbox
	storage *fakeStorage

	userRepo     repository.UserRepo
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
	topicRepo    repository.TopicRepo

	user       UserService
	userFollow UserFollowService
	notify     NotifyService
	dynamic    DynamicService
	people     PeopleService
	topic      TopicService
	question   QuestionService
	answer     AnswerService
	search     SearchService
	recommend  RecommendService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.SetClient(client)

	security.Init(config.JWTConfig{Secret: "test-secret", Expire: 1, Issuer: "Zheye"})

	env := &testEnv{db: db, mr: mr, inbox: &fakeInbox{}, storage: newFakeStorage()}
	env.userRepo = repository.NewUserRepo(db)
	env.questionRepo = repository.NewQuestionRepo(db)
	env.answerRepo = repository.NewAnswerRepo(db)
	env.topicRepo = repository.NewTopicRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	dynamicRepo := repository.NewDynamicRepo(db)

	env.user = NewUserService(env.userRepo, env.storage)
	env.notify = NewNotifyService(userFollowRepo, env.inbox, env.user, nil)
	env.userFollow = NewUserFollowService(env.userRepo, userFollowRepo, env.notify)
	env.dynamic = NewDynamicService(dynamicRepo, env.topicRepo, env.questionRepo, env.answerRepo)
	env.people = NewPeopleService(env.user, env.userFollow, env.dynamic, env.questionRepo, env.answerRepo, env.storage)
	env.topic = NewTopicService(env.topicRepo, env.questionRepo, env.answerRepo, env.user, env.dynamic, env.notify)
	env.question = NewQuestionService(env.questionRepo, env.answerRepo, commentRepo, env.topicRepo, env.user, env.dynamic, env.notify)
	env.answer = NewAnswerService(env.answerRepo, commentRepo, env.questionRepo, env.userRepo, env.dynamic, env.notify)
	env.search = NewSearchService(nil, env.questionRepo, env.user)
	env.recommend = NewRecommendService(env.questionRepo, env.answerRepo, env.user, 10, 30)
	return env
}

func (e *testEnv) register(t *testing.T, username string) *dto.UserDTO {
	t.Helper()
	u, err := e.user.Register(context.Background(), &dto.RegisterDTO{
		Username: username,
		Email:    username + "@zheye.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) topicNamed(t *testing.T, name string) *model.Topic {
	t.Helper()
	var category model.TopicCategory
	require.NoError(t, e.db.FirstOrCreate(&category, model.TopicCategory{CategoryName: "默认"}).Error)
	topic := &model.Topic{CategoryID: category.ID, TopicName: name}
	require.NoError(t, e.topicRepo.CreateTopic(context.Background(), topic))
	return topic
}

func (e *testEnv) ask(t *testing.T, userID uint64, title string, topicIDs ...uint64) uint64 {
	t.Helper()
	raw := ""
	for i, id := range topicIDs {
		if i > 0 {
			raw += ","
		}
		raw += fmt.Sprint(id)
	}
	res, err := e.question.SubmitQuestion(context.Background(), userID, &dto.SubmitQuestionDTO{Question: title, Topic: raw})
	require.NoError(t, err)
	return res.Result
}

func newPager(page, perPage int) util.Pager {
	return util.Pager{Page: page, PerPage: perPage}
}
