package model

import "time"

// Dynamic 用户在个人主页展示的动态
type Dynamic struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_created,priority:1" json:"userId"`
	TargetID  uint64    `gorm:"not null" json:"targetId"`
	Kind      string    `gorm:"type:varchar(16);not null" json:"kind"`
	CreatedAt time.Time `gorm:"index:idx_user_created,priority:2" json:"createdAt"`
}

func (Dynamic) TableName() string {
	return "dynamics"
}
