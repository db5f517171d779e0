package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/mongo"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/repository"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFanOutSkipsActor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	require.NoError(t, env.db.Create(&model.UserFollow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, env.db.Create(&model.UserFollow{FollowerID: alice.ID, FollowingID: alice.ID}).Error)

	sub := redis.Subscribe(ctx, consts.NotifyChannelPrefix+strconv.FormatUint(bob.ID, 10))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	err = env.notify.FanOut(ctx, &dto.ActivityEvent{
		ActorID:   alice.ID,
		Kind:      consts.NotifyAsk,
		TargetID:  1,
		Content:   "q",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Empty(t, env.inbox.byReceiver(alice.ID))
	items := env.inbox.byReceiver(bob.ID)
	require.Len(t, items, 1)
	assert.False(t, items[0].ID.IsZero())

	select {
	case msg := <-sub.Channel():
		var pushed dto.InboxItemDTO
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &pushed))
		assert.Equal(t, items[0].ID.Hex(), pushed.ID)
		assert.Equal(t, "alice", pushed.Actor.Username)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification pushed")
	}
}

func TestNotifyFollowersUsesPublisher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	require.NoError(t, env.db.Create(&model.UserFollow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)

	publisher := &fakePublisher{}
	svc := NewNotifyService(repository.NewUserFollowRepo(env.db), env.inbox, env.user, publisher)
	svc.NotifyFollowers(ctx, alice.ID, consts.NotifyFollowTopic, 3, "Go")

	require.Len(t, publisher.events, 1)
	assert.Equal(t, alice.ID, publisher.events[0].ActorID)
	assert.Equal(t, "Go", publisher.events[0].Content)
	// 交给消费者扇出，本地不写收件箱
	assert.Empty(t, env.inbox.byReceiver(bob.ID))
}

func TestInboxReadState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, env.inbox.InsertMany(ctx, []*mongo.InboxModel{{
			ID:         primitive.NewObjectID(),
			ReceiverID: bob.ID,
			ActorID:    alice.ID,
			Kind:       consts.NotifyAsk,
			TargetID:   uint64(i + 1),
			CreatedAt:  now.Add(time.Duration(i) * time.Second),
		}}))
	}

	page, err := env.notify.GetInbox(ctx, bob.ID, newPager(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	items := page.Items.([]*dto.InboxItemDTO)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(3), items[0].TargetID)
	assert.Equal(t, "alice", items[0].Actor.Username)

	unread, err := env.notify.GetUnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread.Count)

	require.NoError(t, env.notify.MarkRead(ctx, bob.ID, items[0].ID))
	assert.ErrorIs(t, env.notify.MarkRead(ctx, alice.ID, items[1].ID), ErrNotificationNotFound)
	assert.ErrorIs(t, env.notify.MarkRead(ctx, bob.ID, "bad-id"), ErrNotificationNotFound)

	unread, err = env.notify.GetUnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread.Count)

	require.NoError(t, env.notify.MarkAllRead(ctx, bob.ID))
	unread, err = env.notify.GetUnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, unread.Count)
}
