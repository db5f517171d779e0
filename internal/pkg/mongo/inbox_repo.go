package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InboxRepo interface {
	InsertMany(ctx context.Context, items []*InboxModel) error
	List(ctx context.Context, userID uint64, limit, offset int64) ([]*InboxModel, error)
	Count(ctx context.Context, userID uint64) (int64, error)
	UnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAsRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
}

type inboxRepoImpl struct {
	col *mongo.Collection
}

func NewInboxRepo(db *mongo.Database) InboxRepo {
	return &inboxRepoImpl{
		col: db.Collection(inboxCollection),
	}
}

// InsertMany 批量写入，一次扇出对应一次写入
func (s *inboxRepoImpl) InsertMany(ctx context.Context, items []*InboxModel) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = item
	}
	_, err := s.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// List 分页获取收件箱 (按时间倒序)
func (s *inboxRepoImpl) List(ctx context.Context, userID uint64, limit, offset int64) ([]*InboxModel, error) {
	filter := bson.M{"receiver_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*InboxModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *inboxRepoImpl) Count(ctx context.Context, userID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"receiver_id": userID})
}

// UnreadCount 获取未读条数
func (s *inboxRepoImpl) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}

// MarkAsRead 标记单条为已读
func (s *inboxRepoImpl) MarkAsRead(ctx context.Context, userID uint64, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	filter := bson.M{"_id": objectID, "receiver_id": userID}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllAsRead 一键已读
func (s *inboxRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}
