package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/consts"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeople(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	require.NoError(t, env.userFollow.Follow(ctx, bob.ID, "alice"))
	topic := env.topicNamed(t, "Go")
	require.NoError(t, env.topic.FollowTopic(ctx, alice.ID, topic.ID))

	page, err := env.people.People(ctx, "alice", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.User.FollowerCount)
	assert.True(t, page.User.IsFollowing)
	assert.False(t, page.User.IsMe)
	require.Len(t, page.Dynamics, 1)
	assert.Equal(t, consts.DynamicTopic, page.Dynamics[0].Kind)

	page, err = env.people.People(ctx, "alice", alice.ID)
	require.NoError(t, err)
	assert.True(t, page.User.IsMe)
	assert.False(t, page.User.IsFollowing)

	// 匿名访问
	page, err = env.people.People(ctx, "alice", 0)
	require.NoError(t, err)
	assert.False(t, page.User.IsMe)

	_, err = env.people.People(ctx, "nobody", 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowersAndFollowingPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	for _, name := range []string{"bob", "carol", "dave"} {
		u := env.register(t, name)
		require.NoError(t, env.userFollow.Follow(ctx, u.ID, "alice"))
	}

	page, err := env.people.Followers(ctx, "alice", alice.ID, newPager(1, 2))
	require.NoError(t, err)
	assert.Equal(t, consts.WhoMe, page.Who)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.True(t, page.Pagination.HasNext)
	assert.Len(t, page.Pagination.Items.([]*dto.UserDTO), 2)

	page, err = env.people.Following(ctx, "bob", alice.ID, newPager(1, 2))
	require.NoError(t, err)
	assert.Equal(t, consts.WhoOther, page.Who)
	users := page.Pagination.Items.([]*dto.UserDTO)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestAsksAndAnswersPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	topic := env.topicNamed(t, "Go")
	qid := env.ask(t, alice.ID, "如何写测试", topic.ID)
	env.ask(t, alice.ID, "第二个问题", topic.ID)
	_, err := env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{WriteAnswer: "用 testify", QuestionID: strconv.FormatUint(qid, 10)})
	require.NoError(t, err)

	asks, err := env.people.Asks(ctx, "alice", 0, newPager(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), asks.Pagination.Total)

	answers, err := env.people.Answers(ctx, "bob", 0, newPager(1, 10))
	require.NoError(t, err)
	items := answers.Pagination.Items.([]*dto.AnswerDTO)
	require.Len(t, items, 1)
	assert.Equal(t, "如何写测试", items[0].QuestionTitle)

	// 超出末页
	answers, err = env.people.Answers(ctx, "bob", 0, newPager(5, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), answers.Pagination.Total)
	assert.Empty(t, answers.Pagination.Items)
}
