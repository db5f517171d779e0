package repository

import (
	"Zheye/internal/model"
	"Zheye/internal/pkg/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateQuestion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)
	u := seedUser(t, db, "asker")
	t1 := seedTopic(t, db, "Go")
	t2 := seedTopic(t, db, "Rust")

	q := &model.Question{UserID: u.ID, Title: "如何学习 Go"}
	require.NoError(t, repo.CreateQuestion(ctx, q, []uint64{t2.ID, t1.ID}))
	assert.NotZero(t, q.ID)

	topicIDs, err := repo.GetTopicIds(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{t1.ID, t2.ID}, topicIDs)

	// 提问者自动关注
	follow, err := repo.GetQuestionFollow(ctx, u.ID, q.ID)
	require.NoError(t, err)
	assert.NotNil(t, follow)
}

func TestCreateQuestionUnknownTopicRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)
	u := seedUser(t, db, "asker")
	t1 := seedTopic(t, db, "Go")

	err := repo.CreateQuestion(ctx, &model.Question{UserID: u.ID, Title: "x"}, []uint64{t1.ID, 999})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetQuestionByIdMissing(t *testing.T) {
	db := newTestDB(t)
	q, err := NewQuestionRepo(db).GetQuestionById(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestListLatestByTopic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)
	u := seedUser(t, db, "asker")
	goTopic := seedTopic(t, db, "Go")
	rust := seedTopic(t, db, "Rust")

	q1 := seedQuestion(t, db, u.ID, "q1", goTopic.ID)
	seedQuestion(t, db, u.ID, "q2", rust.ID)
	q3 := seedQuestion(t, db, u.ID, "q3", goTopic.ID, rust.ID)

	questions, err := repo.ListLatestByTopic(ctx, goTopic.ID, 10)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, q3.ID, questions[0].ID)
	assert.Equal(t, q1.ID, questions[1].ID)

	ids, err := repo.ListIdsByTopic(ctx, rust.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestQuestionFollows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)
	asker := seedUser(t, db, "asker")
	reader := seedUser(t, db, "reader")
	q := seedQuestion(t, db, asker.ID, "q", seedTopic(t, db, "Go").ID)

	require.NoError(t, repo.CreateQuestionFollow(ctx, &model.QuestionFollow{UserID: reader.ID, QuestionID: q.ID}))
	// 重复关注不报错
	require.NoError(t, repo.CreateQuestionFollow(ctx, &model.QuestionFollow{UserID: reader.ID, QuestionID: q.ID}))

	count, err := repo.CountQuestionFollowers(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	counts, err := repo.CountFollowersByQuestionIds(ctx, []uint64{q.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[q.ID])
	assert.Zero(t, counts[999])

	followed, err := repo.ListFollowedQuestions(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, q.ID, followed[0].ID)

	affected, err := repo.DeleteQuestionFollow(ctx, reader.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	affected, err = repo.DeleteQuestionFollow(ctx, reader.ID, q.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSearchByKeyword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)
	u := seedUser(t, db, "asker")
	topic := seedTopic(t, db, "Go")
	seedQuestion(t, db, u.ID, "Go 泛型怎么用", topic.ID)
	seedQuestion(t, db, u.ID, "Go channel 关闭", topic.ID)
	seedQuestion(t, db, u.ID, "Rust 生命周期", topic.ID)

	questions, total, err := repo.SearchByKeyword(ctx, "Go", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, questions, 1)

	_, total, err = repo.SearchByKeyword(ctx, "Python", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestViewCountAndPopular(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)
	u := seedUser(t, db, "asker")
	topic := seedTopic(t, db, "Go")
	q1 := seedQuestion(t, db, u.ID, "q1", topic.ID)
	q2 := seedQuestion(t, db, u.ID, "q2", topic.ID)

	require.NoError(t, repo.AddViewCount(ctx, q1.ID, 7))
	got, err := repo.GetQuestionById(ctx, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ViewCount)

	popular, err := repo.ListPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, q1.ID, popular[0].ID)
	assert.Equal(t, q2.ID, popular[1].ID)

	recent, err := repo.ListSince(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	recent, err = repo.ListSince(ctx, time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestListByUserPageBeyondLast(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)
	u := seedUser(t, db, "asker")
	topic := seedTopic(t, db, "Go")
	seedQuestion(t, db, u.ID, "q1", topic.ID)

	pager := util.NewPager("1", 20)
	list, err := repo.ListByUser(ctx, u.ID, pager.Limit(), pager.Offset())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	pager = util.NewPager("9223372036854775807", 20)
	list, err = repo.ListByUser(ctx, u.ID, pager.Limit(), pager.Offset())
	require.NoError(t, err)
	assert.Empty(t, list)
}
