package dto

import "time"

// ActivityEvent 需要扇出到关注者收件箱的一次行为
type ActivityEvent struct {
	ActorID   uint64    `json:"actorId"`
	Kind      string    `json:"kind"`
	TargetID  uint64    `json:"targetId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type InboxItemDTO struct {
	ID        string    `json:"id"`
	Actor     *UserDTO  `json:"actor"`
	Kind      string    `json:"kind"`
	TargetID  uint64    `json:"target_id"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// IndexDTO 首页：全部话题 + 收件箱
type IndexDTO struct {
	User   *UserDTO    `json:"user"`
	Topics []*TopicDTO `json:"topics"`
	Feed   *Page       `json:"feed"`
}

type UnreadCountDTO struct {
	Count int64 `json:"count"`
}

type MarkReadDTO struct {
	MsgID string `json:"msgId" binding:"required"`
}
