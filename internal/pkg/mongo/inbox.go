package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const inboxCollection = "inbox"

// InboxModel 关注者收件箱中的一条动态
type InboxModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"` // 收件人，即行为发起者的关注者
	ActorID    uint64             `bson:"actor_id" json:"actorId"`       // 行为发起者
	Kind       string             `bson:"kind" json:"kind"`              // follow_user / follow_topic / follow_ques / ask / answer
	TargetID   uint64             `bson:"target_id" json:"targetId"`     // 用户、话题、问题或回答ID
	Content    string             `bson:"content" json:"content"`        // 标题或回答摘要
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
