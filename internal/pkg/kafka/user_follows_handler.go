package kafka

import (
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	redisv9 "github.com/redis/go-redis/v9"
)

// 列表缓存只在已存在时增量维护，不存在的键由读路径回源时整体重建
var (
	zAddIfExists = redisv9.NewScript(`
if redis.call('exists', KEYS[1]) == 1 then
	redis.call('zadd', KEYS[1], ARGV[1], ARGV[2])
	redis.call('zremrangebyrank', KEYS[1], 0, -(tonumber(ARGV[3]) + 1))
	return 1
end
return 0`)
	zRemIfExists = redisv9.NewScript(`
if redis.call('exists', KEYS[1]) == 1 then
	return redis.call('zrem', KEYS[1], ARGV[1])
end
return 0`)
)

const followCacheSize = 1000

type UserFollowsHandler struct {
}

func NewUserFollowsHandler() *UserFollowsHandler {
	return &UserFollowsHandler{}
}

func (s *UserFollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user follows consumer setup")
	return nil
}

func (s *UserFollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user follows consumer cleanup")
	return nil
}

func (s *UserFollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user-follows consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-user-follows process batch error", "err", err)
		return err
	}
	log.Info("topic-user-follows consume claim end")
	return nil
}

func (s *UserFollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, consts.TableUserFollows)
	if err != nil {
		// 其他表、DDL 或格式错误的消息直接跳过
		return nil
	}
	if canalMsg.Type != INSERT && canalMsg.Type != DELETE {
		return nil
	}

	pipe := redis.GetRdbClient().Pipeline()
	for _, row := range canalMsg.Data {
		followerID := StrToUint64(row["follower_id"])
		followingID := StrToUint64(row["following_id"])
		if followerID == 0 || followingID == 0 {
			continue
		}

		fdrKey := consts.UserFollowerKey + strconv.FormatUint(followingID, 10)
		fngKey := consts.UserFollowingKey + strconv.FormatUint(followerID, 10)
		fdrCountKey := consts.UserFollowerCountKey + strconv.FormatUint(followingID, 10)
		fngCountKey := consts.UserFollowingCountKey + strconv.FormatUint(followerID, 10)

		if canalMsg.Type == INSERT {
			score := StrToTime(row["created_at"], time.Now()).Unix()
			zAddIfExists.Eval(ctx, pipe, []string{fdrKey}, score, followerID, followCacheSize)
			zAddIfExists.Eval(ctx, pipe, []string{fngKey}, score, followingID, followCacheSize)
		} else {
			zRemIfExists.Eval(ctx, pipe, []string{fdrKey}, followerID)
			zRemIfExists.Eval(ctx, pipe, []string{fngKey}, followingID)
		}
		// 计数键只删除，由读路径回源重建
		pipe.Del(ctx, fdrCountKey, fngCountKey)
	}

	_, err = pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redisv9.Nil) {
		log.Error("Redis Pipeline Exec failed", "err", err, "msg_key", string(msg.Key))
		return err
	}
	return nil
}
