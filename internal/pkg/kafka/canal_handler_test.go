package kafka

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/es"
	"Zheye/internal/model"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/repository"
	"Zheye/internal/service"
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.SetClient(client)
	return mr
}

func canalMessage(t *testing.T, table, typ string, ts int64, rows ...map[string]interface{}) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := json.Marshal(&CanalMessage{
		Database: "zheye",
		Table:    table,
		Type:     typ,
		TS:       ts,
		Data:     rows,
	})
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Value: payload}
}

func TestToCanalMessage(t *testing.T) {
	msg := canalMessage(t, consts.TableQuestions, INSERT, 1, map[string]interface{}{"id": "1"})
	canalMsg, err := ToCanalMessage(msg, consts.TableQuestions)
	require.NoError(t, err)
	assert.Equal(t, INSERT, canalMsg.Type)

	_, err = ToCanalMessage(msg, consts.TableUserFollows)
	assert.ErrorIs(t, err, ErrTableNotMatch)

	_, err = ToCanalMessage(canalMessage(t, consts.TableQuestions, INSERT, 1), consts.TableQuestions)
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = ToCanalMessage(&sarama.ConsumerMessage{Value: []byte("{")}, consts.TableQuestions)
	assert.Error(t, err)
}

func TestStrConverters(t *testing.T) {
	assert.Equal(t, uint64(12), StrToUint64("12"))
	assert.Zero(t, StrToUint64(12))
	assert.Zero(t, StrToUint64("-1"))
	assert.Equal(t, int64(-3), StrToInt64("-3"))
	assert.Equal(t, "x", StrToString("x"))
	assert.Equal(t, "", StrToString(nil))

	fallback := time.Unix(0, 0)
	got := StrToTime("2024-05-01 08:30:00", fallback)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, fallback, StrToTime("bad", fallback))
	assert.Equal(t, fallback, StrToTime(nil, fallback))
}

func TestUserFollowsHandlerOnlyTouchesExistingKeys(t *testing.T) {
	mr := newTestRedis(t)
	ctx := context.Background()
	h := NewUserFollowsHandler()

	// 只有关注者一侧的缓存存在
	_, err := mr.ZAdd(consts.UserFollowerKey+"2", 100, "9")
	require.NoError(t, err)
	require.NoError(t, mr.Set(consts.UserFollowerCountKey+"2", "1"))

	row := map[string]interface{}{"follower_id": "1", "following_id": "2", "created_at": "2024-05-01 08:30:00"}
	require.NoError(t, h.logic(ctx, canalMessage(t, consts.TableUserFollows, INSERT, 1, row)))

	members, err := mr.ZMembers(consts.UserFollowerKey + "2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "9"}, members)
	assert.False(t, mr.Exists(consts.UserFollowerCountKey+"2"))
	assert.False(t, mr.Exists(consts.UserFollowingKey+"1"))
	assert.False(t, mr.Exists(consts.UserFollowingCountKey+"1"))

	require.NoError(t, mr.Set(consts.UserFollowerCountKey+"2", "2"))
	require.NoError(t, h.logic(ctx, canalMessage(t, consts.TableUserFollows, DELETE, 2, row)))
	members, err = mr.ZMembers(consts.UserFollowerKey + "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, members)
	assert.False(t, mr.Exists(consts.UserFollowerCountKey+"2"))
}

// 关注后、binlog 到达前读取一次计数，缓存已包含新关系
func TestUserFollowsHandlerAfterCountRefill(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	alice := &model.User{Username: "alice", Email: "alice@zheye.com", PasswordHash: "x"}
	bob := &model.User{Username: "bob", Email: "bob@zheye.com", PasswordHash: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	svc := service.NewUserFollowService(repository.NewUserRepo(db), repository.NewUserFollowRepo(db), &fakeNotifyService{})
	require.NoError(t, svc.Follow(ctx, alice.ID, "bob"))

	count, err := svc.GetUserFollowerCount(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	row := map[string]interface{}{
		"follower_id":  strconv.FormatUint(alice.ID, 10),
		"following_id": strconv.FormatUint(bob.ID, 10),
		"created_at":   "2024-05-01 08:30:00",
	}
	h := NewUserFollowsHandler()
	require.NoError(t, h.logic(ctx, canalMessage(t, consts.TableUserFollows, INSERT, 1, row)))

	count, err = svc.GetUserFollowerCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	count, err = svc.GetUserFollowingCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserFollowsHandlerSkipsOtherMessages(t *testing.T) {
	mr := newTestRedis(t)
	ctx := context.Background()
	h := NewUserFollowsHandler()
	_, err := mr.ZAdd(consts.UserFollowerKey+"2", 100, "9")
	require.NoError(t, err)

	row := map[string]interface{}{"follower_id": "1", "following_id": "2"}
	assert.NoError(t, h.logic(ctx, canalMessage(t, consts.TableQuestions, INSERT, 1, row)))
	assert.NoError(t, h.logic(ctx, canalMessage(t, consts.TableUserFollows, UPDATE, 1, row)))
	assert.NoError(t, h.logic(ctx, &sarama.ConsumerMessage{Value: []byte("not json")}))

	members, err := mr.ZMembers(consts.UserFollowerKey + "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, members)
}

type fakeQuestionES struct {
	mu       sync.Mutex
	indexed  map[uint64]*es.QuestionES
	versions map[uint64]int64
	deleted  []uint64
	err      error
}

func newFakeQuestionES() *fakeQuestionES {
	return &fakeQuestionES{indexed: map[uint64]*es.QuestionES{}, versions: map[uint64]int64{}}
}

func (f *fakeQuestionES) Search(context.Context, string, int, int) ([]*es.QuestionES, int64, error) {
	return nil, 0, nil
}

func (f *fakeQuestionES) IndexQuestion(_ context.Context, q *es.QuestionES, version int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.indexed[q.ID] = q
	f.versions[q.ID] = version
	return nil
}

func (f *fakeQuestionES) DeleteQuestion(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func TestQuestionsHandler(t *testing.T) {
	ctx := context.Background()
	repo := newFakeQuestionES()
	h := NewQuestionsHandler(repo)

	row := map[string]interface{}{
		"id":           "5",
		"user_id":      "2",
		"title":        "Go 调度",
		"description":  "GMP",
		"answer_count": "3",
		"view_count":   "40",
		"created_at":   "2024-05-01 08:30:00",
	}
	require.NoError(t, h.logic(ctx, canalMessage(t, consts.TableQuestions, UPDATE, 1714500000000, row)))
	doc := repo.indexed[5]
	require.NotNil(t, doc)
	assert.Equal(t, uint64(2), doc.UserID)
	assert.Equal(t, 3, doc.AnswerCount)
	assert.Equal(t, int64(40), doc.ViewCount)
	assert.Equal(t, int64(1714500000000), repo.versions[5])

	require.NoError(t, h.logic(ctx, canalMessage(t, consts.TableQuestions, DELETE, 2, map[string]interface{}{"id": "5"})))
	assert.Equal(t, []uint64{5}, repo.deleted)

	// 没有主键的行忽略
	require.NoError(t, h.logic(ctx, canalMessage(t, consts.TableQuestions, INSERT, 3, map[string]interface{}{"title": "x"})))
	assert.Len(t, repo.indexed, 1)

	repo.err = errors.New("es down")
	assert.Error(t, h.logic(ctx, canalMessage(t, consts.TableQuestions, INSERT, 4, row)))
}

type fakeNotifyService struct {
	service.NotifyService
	mu     sync.Mutex
	events []*dto.ActivityEvent
}

func (f *fakeNotifyService) NotifyFollowers(context.Context, uint64, string, uint64, string) {}

func (f *fakeNotifyService) FanOut(_ context.Context, event *dto.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func TestActivityHandler(t *testing.T) {
	ctx := context.Background()
	notify := &fakeNotifyService{}
	h := NewActivityHandler(notify)

	payload, err := json.Marshal(&dto.ActivityEvent{ActorID: 3, Kind: "answer", TargetID: 8, Content: "摘要"})
	require.NoError(t, err)
	require.NoError(t, h.logic(ctx, &sarama.ConsumerMessage{Value: payload}))

	require.NoError(t, h.logic(ctx, &sarama.ConsumerMessage{Value: []byte("{bad")}))
	anonymous, err := json.Marshal(&dto.ActivityEvent{Kind: "answer"})
	require.NoError(t, err)
	require.NoError(t, h.logic(ctx, &sarama.ConsumerMessage{Value: anonymous}))

	require.Len(t, notify.events, 1)
	assert.Equal(t, uint64(3), notify.events[0].ActorID)
	assert.Equal(t, "摘要", notify.events[0].Content)
}
