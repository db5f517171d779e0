package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/consts"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuestionValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "alice")
	topic := env.topicNamed(t, "Go")
	topicID := strconv.FormatUint(topic.ID, 10)

	cases := []struct {
		name   string
		submit *dto.SubmitQuestionDTO
		err    error
	}{
		{"no topic", &dto.SubmitQuestionDTO{Question: "q"}, ErrNotValidChoice},
		{"bad topic", &dto.SubmitQuestionDTO{Question: "q", Topic: "go"}, ErrNotValidChoice},
		{"empty title", &dto.SubmitQuestionDTO{Question: "  ", Topic: topicID}, ErrQuestionInvalid},
		{"long title", &dto.SubmitQuestionDTO{Question: strings.Repeat("问", 61), Topic: topicID}, ErrQuestionInvalid},
		{"long desc", &dto.SubmitQuestionDTO{Question: "q", QuestionDesc: strings.Repeat("d", 501), Topic: topicID}, ErrQuestionInvalid},
		{"unknown topic", &dto.SubmitQuestionDTO{Question: "q", Topic: topicID + ",999"}, ErrFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.question.SubmitQuestion(ctx, u.ID, tc.submit)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	res, err := env.question.SubmitQuestion(ctx, u.ID, &dto.SubmitQuestionDTO{
		Question:     strings.Repeat("问", 60),
		QuestionDesc: strings.Repeat("d", 500),
		Topic:        topicID,
	})
	require.NoError(t, err)
	assert.NotZero(t, res.Result)
}

func TestSubmitQuestionRecordsDynamicAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	require.NoError(t, env.userFollow.Follow(ctx, bob.ID, "alice"))

	qid := env.ask(t, alice.ID, "Go 的 GC 是怎么工作的", env.topicNamed(t, "Go").ID)

	dynamics, err := env.dynamic.SearchDynamic(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, dynamics, 1)
	assert.Equal(t, consts.DynamicAsk, dynamics[0].Kind)
	assert.Equal(t, "Go 的 GC 是怎么工作的", dynamics[0].Title)

	items := env.inbox.byReceiver(bob.ID)
	require.Len(t, items, 1)
	assert.Equal(t, consts.NotifyAsk, items[0].Kind)
	assert.Equal(t, qid, items[0].TargetID)

	// 提问者自动关注
	followed, err := env.question.FollowedQuestions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "alice", followed[0].Author.Username)
}

func TestFollowQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	qid := env.ask(t, alice.ID, "q", env.topicNamed(t, "Go").ID)

	assert.ErrorIs(t, env.question.FollowQuestion(ctx, alice.ID, qid), ErrFail)
	assert.ErrorIs(t, env.question.FollowQuestion(ctx, bob.ID, 999), ErrFail)
	assert.ErrorIs(t, env.question.UnfollowQuestion(ctx, bob.ID, qid), ErrFail)

	require.NoError(t, env.question.FollowQuestion(ctx, bob.ID, qid))
	followers, err := env.question.QuestionFollowers(ctx, qid, newPager(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers.Pagination.Total)

	require.NoError(t, env.question.UnfollowQuestion(ctx, bob.ID, qid))
	assert.ErrorIs(t, env.question.UnfollowQuestion(ctx, bob.ID, qid), ErrFail)
	assert.ErrorIs(t, env.question.UnfollowQuestion(ctx, bob.ID, 999), ErrFail)

	_, err = env.question.QuestionFollowers(ctx, 999, newPager(1, 10))
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestQuestionDetailCountsViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	topic := env.topicNamed(t, "Go")
	qid := env.ask(t, alice.ID, "q", topic.ID)

	answer, err := env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{WriteAnswer: "<p>answer</p>", QuestionID: strconv.FormatUint(qid, 10)})
	require.NoError(t, err)
	_, err = env.answer.SubmitComment(ctx, alice.ID, &dto.SubmitCommentDTO{AnswerID: strconv.FormatUint(answer.ID, 10), CommentBody: "谢谢"})
	require.NoError(t, err)

	detail, err := env.question.QuestionDetail(ctx, bob.ID, qid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Question.ViewCount)
	assert.False(t, detail.IsFollowing)
	assert.Equal(t, int64(1), detail.FollowerCount)
	require.Len(t, detail.Question.Topics, 1)
	assert.Equal(t, "Go", detail.Question.Topics[0].TopicName)
	require.Len(t, detail.Answers, 1)
	require.Len(t, detail.Answers[0].Comments, 1)
	assert.Equal(t, "alice", detail.Answers[0].Comments[0].Author.Username)

	detail, err = env.question.QuestionDetail(ctx, alice.ID, qid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Question.ViewCount)
	assert.True(t, detail.IsFollowing)

	synced, err := env.question.SyncViewCount(ctx, qid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), synced)
	assert.False(t, env.mr.Exists(consts.QuestionViewKey+strconv.FormatUint(qid, 10)))

	// 没有新的浏览时不写库
	synced, err = env.question.SyncViewCount(ctx, qid)
	require.NoError(t, err)
	assert.Zero(t, synced)

	detail, err = env.question.QuestionDetail(ctx, alice.ID, qid)
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.Question.ViewCount)

	_, err = env.question.QuestionDetail(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestPingMarksDirty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.question.Ping(ctx, 7))
	require.NoError(t, env.question.Ping(ctx, 7))

	val, err := env.mr.Get(consts.QuestionViewKey + "7")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
	members, err := env.mr.Members(consts.QuestionViewDirtyKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, members)
}
