package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/mongo"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// ActivityPublisher 将行为投递到消息队列，由消费者完成扇出
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, event *dto.ActivityEvent) error
}

type NotifyService interface {
	NotifyFollowers(ctx context.Context, actorID uint64, kind string, targetID uint64, content string)
	FanOut(ctx context.Context, event *dto.ActivityEvent) error
	GetInbox(ctx context.Context, userID uint64, pager util.Pager) (*dto.Page, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotifyServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	inboxRepo      mongo.InboxRepo
	userSvc        UserService
	publisher      ActivityPublisher
}

// NewNotifyService publisher 为空时在当前请求内直接扇出
func NewNotifyService(
	userFollowRepo repository.UserFollowRepo,
	inboxRepo mongo.InboxRepo,
	userSvc UserService,
	publisher ActivityPublisher,
) NotifyService {
	return &NotifyServiceImpl{
		userFollowRepo: userFollowRepo,
		inboxRepo:      inboxRepo,
		userSvc:        userSvc,
		publisher:      publisher,
	}
}

// NotifyFollowers 通知失败不影响主流程，只记录日志
func (s *NotifyServiceImpl) NotifyFollowers(ctx context.Context, actorID uint64, kind string, targetID uint64, content string) {
	event := &dto.ActivityEvent{
		ActorID:   actorID,
		Kind:      kind,
		TargetID:  targetID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	var err error
	if s.publisher != nil {
		err = s.publisher.PublishActivity(ctx, event)
	} else {
		err = s.FanOut(ctx, event)
	}
	if err != nil {
		log.ErrorContext(ctx, "notify followers failed", "actor_id", actorID, "kind", kind, "target_id", targetID, "err", err)
	}
}

// FanOut 为行为发起者的每个关注者写入一条收件箱记录并推送
func (s *NotifyServiceImpl) FanOut(ctx context.Context, event *dto.ActivityEvent) error {
	followerIDs, err := s.userFollowRepo.GetAllFollowerIDs(ctx, event.ActorID)
	if err != nil {
		return err
	}

	items := make([]*mongo.InboxModel, 0, len(followerIDs))
	for _, id := range followerIDs {
		if id == event.ActorID {
			continue
		}
		items = append(items, &mongo.InboxModel{
			ID:         primitive.NewObjectID(),
			ReceiverID: id,
			ActorID:    event.ActorID,
			Kind:       event.Kind,
			TargetID:   event.TargetID,
			Content:    event.Content,
			CreatedAt:  event.CreatedAt,
		})
	}
	if len(items) == 0 {
		return nil
	}

	if err = s.inboxRepo.InsertMany(ctx, items); err != nil {
		return err
	}

	actors, err := s.userSvc.GetUserSimpleMap(ctx, []uint64{event.ActorID})
	if err != nil {
		log.WarnContext(ctx, "load actor failed", "actor_id", event.ActorID, "err", err)
	}
	for _, item := range items {
		payload, err := json.Marshal(s.toInboxItem(item, actors))
		if err != nil {
			continue
		}
		channel := consts.NotifyChannelPrefix + strconv.FormatUint(item.ReceiverID, 10)
		if err = redis.Publish(ctx, channel, payload); err != nil {
			log.WarnContext(ctx, "publish notification failed", "channel", channel, "err", err)
		}
	}
	return nil
}

// GetInbox 获取收件箱并补全发起者信息
func (s *NotifyServiceImpl) GetInbox(ctx context.Context, userID uint64, pager util.Pager) (*dto.Page, error) {
	total, err := s.inboxRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	list, err := s.inboxRepo.List(ctx, userID, int64(pager.Limit()), int64(pager.Offset()))
	if err != nil {
		return nil, err
	}

	actorIDs := make([]uint64, 0, len(list))
	for _, m := range list {
		actorIDs = append(actorIDs, m.ActorID)
	}
	actors, err := s.userSvc.GetUserSimpleMap(ctx, actorIDs)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InboxItemDTO, 0, len(list))
	for _, m := range list {
		items = append(items, s.toInboxItem(m, actors))
	}
	return dto.NewPage(pager.Page, pager.PerPage, total, items), nil
}

func (s *NotifyServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error) {
	count, err := s.inboxRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{Count: count}, nil
}

func (s *NotifyServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	err := s.inboxRepo.MarkAsRead(ctx, userID, msgID)
	if errors.Is(err, mongoDB.ErrNoDocuments) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *NotifyServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.inboxRepo.MarkAllAsRead(ctx, userID)
}

func (s *NotifyServiceImpl) toInboxItem(m *mongo.InboxModel, actors map[uint64]*dto.UserDTO) *dto.InboxItemDTO {
	d := &dto.InboxItemDTO{}
	_ = copier.Copy(d, m)
	d.ID = m.ID.Hex()
	d.Actor = actors[m.ActorID]
	return d
}
