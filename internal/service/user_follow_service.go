package service

import (
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

const MaxCacheSize = 1000
const MaxFollowingCount = 1000

type UserFollowService interface {
	GetUserFollowers(ctx context.Context, userId uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowing(ctx context.Context, userId uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowerCount(ctx context.Context, userId uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userId uint64) (int64, error)
	GetSomeoneIsFollowing(ctx context.Context, userId, followingId uint64) (bool, error)
	Follow(ctx context.Context, userId uint64, username string) error
	Unfollow(ctx context.Context, userId uint64, username string) error
}

type UserFollowServiceImpl struct {
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
	notifySvc      NotifyService
}

func NewUserFollowService(userRepo repository.UserRepo, userFollowRepo repository.UserFollowRepo, notifySvc NotifyService) UserFollowService {
	return &UserFollowServiceImpl{
		userRepo:       userRepo,
		userFollowRepo: userFollowRepo,
		notifySvc:      notifySvc,
	}
}

type fetchListFunc func(ctx context.Context, userId uint64, limit, offset int) ([]*model.UserFollow, error)
type fetchCountFunc func(ctx context.Context, userId uint64) (int64, error)

func (s *UserFollowServiceImpl) GetUserFollowers(ctx context.Context, userId uint64, limit, offset int) ([]*model.UserFollow, error) {
	return s.getFollowListCommon(
		ctx, userId, limit, offset,
		consts.UserFollowerKey,
		true,
		s.userFollowRepo.GetUserFollowers,
	)
}

func (s *UserFollowServiceImpl) GetUserFollowing(ctx context.Context, userId uint64, limit, offset int) ([]*model.UserFollow, error) {
	return s.getFollowListCommon(
		ctx, userId, limit, offset,
		consts.UserFollowingKey,
		false,
		s.userFollowRepo.GetUserFollowing,
	)
}

func (s *UserFollowServiceImpl) GetUserFollowerCount(ctx context.Context, userId uint64) (int64, error) {
	return s.getCountCommon(
		ctx, userId,
		consts.UserFollowerCountKey,
		s.userFollowRepo.GetUserFollowerCount,
	)
}

func (s *UserFollowServiceImpl) GetUserFollowingCount(ctx context.Context, userId uint64) (int64, error) {
	return s.getCountCommon(
		ctx, userId,
		consts.UserFollowingCountKey,
		s.userFollowRepo.GetUserFollowingCount,
	)
}

func (s *UserFollowServiceImpl) GetSomeoneIsFollowing(ctx context.Context, userId, followingId uint64) (bool, error) {
	key := consts.UserFollowingKey + strconv.FormatUint(userId, 10)
	rdb := redis.GetRdbClient()
	res, err := rdb.ZScore(ctx, key, strconv.FormatUint(followingId, 10)).Result()
	if err == nil && res != 0 {
		return true, nil
	}
	userFollow, err := s.userFollowRepo.GetUserFollow(ctx, userId, followingId)
	if err != nil {
		return false, err
	}
	return userFollow != nil, nil
}

// Follow 关注用户并通知自己的关注者
func (s *UserFollowServiceImpl) Follow(ctx context.Context, userId uint64, username string) error {
	target, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		log.ErrorContext(ctx, "get follow target failed", "username", username, "err", err)
		return ErrFail
	}
	if target == nil {
		return ErrInvalidUser
	}
	if target.ID == userId {
		return ErrCannotFollowSelf
	}

	isFollowing, err := s.GetSomeoneIsFollowing(ctx, userId, target.ID)
	if err != nil {
		log.ErrorContext(ctx, "check following failed", "err", err)
		return ErrFail
	}
	if isFollowing {
		return ErrAlreadyFollowing
	}

	count, err := s.GetUserFollowingCount(ctx, userId)
	if err != nil {
		log.ErrorContext(ctx, "get following count failed", "err", err)
		return ErrFail
	}
	if count >= MaxFollowingCount {
		return ErrUserFollowLimit
	}

	userFollow := &model.UserFollow{
		FollowerID:  userId,
		FollowingID: target.ID,
		CreatedAt:   time.Now(),
	}
	if err = s.userFollowRepo.CreateUserFollow(ctx, userFollow); err != nil {
		log.ErrorContext(ctx, "create user follow failed", "err", err)
		return ErrFail
	}
	s.evictFollowCache(ctx, userId, target.ID)

	s.notifySvc.NotifyFollowers(ctx, userId, consts.NotifyFollowUser, target.ID, target.Username)
	return nil
}

func (s *UserFollowServiceImpl) Unfollow(ctx context.Context, userId uint64, username string) error {
	target, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		log.ErrorContext(ctx, "get unfollow target failed", "username", username, "err", err)
		return ErrFail
	}
	if target == nil {
		return ErrInvalidUser
	}

	isFollowing, err := s.GetSomeoneIsFollowing(ctx, userId, target.ID)
	if err != nil {
		log.ErrorContext(ctx, "check following failed", "err", err)
		return ErrFail
	}
	if !isFollowing {
		return ErrNotFollowing
	}

	affected, err := s.userFollowRepo.DeleteUserFollow(ctx, &model.UserFollow{FollowerID: userId, FollowingID: target.ID})
	if err != nil {
		log.ErrorContext(ctx, "delete user follow failed", "err", err)
		return ErrFail
	}
	s.evictFollowCache(ctx, userId, target.ID)
	if affected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// evictFollowCache 关系变更后删除双方的列表与计数缓存，下次读取时回源重建
func (s *UserFollowServiceImpl) evictFollowCache(ctx context.Context, followerID, followingID uint64) {
	err := redis.DeleteKey(ctx,
		consts.UserFollowingKey+strconv.FormatUint(followerID, 10),
		consts.UserFollowingCountKey+strconv.FormatUint(followerID, 10),
		consts.UserFollowerKey+strconv.FormatUint(followingID, 10),
		consts.UserFollowerCountKey+strconv.FormatUint(followingID, 10),
	)
	if err != nil {
		log.WarnContext(ctx, "evict follow cache failed", "err", err)
	}
}

func (s *UserFollowServiceImpl) getFollowListCommon(
	ctx context.Context,
	userId uint64,
	limit, offset int,
	keyPrefix string,
	isFollowerList bool,
	fetchDB fetchListFunc,
) ([]*model.UserFollow, error) {
	if offset+limit > MaxCacheSize {
		return fetchDB(ctx, userId, limit, offset)
	}

	key := keyPrefix + strconv.FormatUint(userId, 10)
	rdb := redis.GetRdbClient()

	res, err := rdb.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err == nil && len(res) != 0 {
		return s.zSetResToUserFollow(userId, res, isFollowerList)
	}

	dbData, err := fetchDB(ctx, userId, MaxCacheSize, 0)
	if err != nil {
		return nil, err
	}
	if len(dbData) == 0 {
		return []*model.UserFollow{}, nil
	}

	s.fillFollowCache(key, dbData, isFollowerList)

	start := offset
	end := offset + limit
	if start >= len(dbData) {
		return []*model.UserFollow{}, nil
	}
	if end > len(dbData) {
		end = len(dbData)
	}

	return dbData[start:end], nil
}

// fillFollowCache 回填在独立的 context 中执行，不受请求取消影响
func (s *UserFollowServiceImpl) fillFollowCache(cacheKey string, data []*model.UserFollow, isFollower bool) {
	ctx := context.Background()
	rdb := redis.GetRdbClient()

	zMembers := make([]redisv9.Z, 0, len(data))
	for _, item := range data {
		memberID := item.FollowerID
		if !isFollower {
			memberID = item.FollowingID
		}
		zMembers = append(zMembers, redisv9.Z{
			Score:  float64(item.CreatedAt.Unix()),
			Member: memberID,
		})
	}

	pipe := rdb.TxPipeline()
	pipe.Del(ctx, cacheKey)
	pipe.ZAdd(ctx, cacheKey, zMembers...)
	pipe.Expire(ctx, cacheKey, time.Hour*1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn("fill follow cache failed", "key", cacheKey, "err", err)
	}
}

func (s *UserFollowServiceImpl) getCountCommon(
	ctx context.Context,
	userId uint64,
	keyPrefix string,
	fetchDB fetchCountFunc,
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userId, 10)

	valStr, err := redis.GetValue(ctx, key)
	if err == nil && valStr != "" {
		return strconv.ParseInt(valStr, 10, 64)
	}

	count, err := fetchDB(ctx, userId)
	if err != nil {
		return 0, err
	}

	_ = redis.SetWithExpiration(ctx, key, count, time.Hour*1)
	return count, nil
}

func (s *UserFollowServiceImpl) zSetResToUserFollow(ownerId uint64, res []redisv9.Z, isFollowerList bool) ([]*model.UserFollow, error) {
	userFollows := make([]*model.UserFollow, 0, len(res))
	for _, v := range res {
		id, err := strconv.ParseUint(v.Member.(string), 10, 64)
		if err != nil {
			return nil, err
		}
		item := &model.UserFollow{CreatedAt: time.Unix(int64(v.Score), 0)}
		if isFollowerList {
			item.FollowingID = ownerId
			item.FollowerID = id
		} else {
			item.FollowerID = ownerId
			item.FollowingID = id
		}
		userFollows = append(userFollows, item)
	}
	return userFollows, nil
}
