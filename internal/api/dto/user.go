package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=20"`
	Email    string `json:"email" binding:"required" validate:"email,max=128"`
	Password string `json:"password" binding:"required" validate:"min=6,max=20"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 列表中展示的用户简要信息
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	ShortIntr string `json:"short_intr"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileDTO 个人主页
type ProfileDTO struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Sex            string    `json:"sex"`
	ShortIntr      string    `json:"short_intr"`
	School         string    `json:"school"`
	Industry       string    `json:"industry"`
	Discipline     string    `json:"discipline"`
	Introduction   string    `json:"introduction"`
	AvatarURL      string    `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	IsFollowing    bool      `json:"is_following"`
	IsMe           bool      `json:"is_me"`
}

// EditProfileDTO 资料编辑表单
type EditProfileDTO struct {
	Name         string `json:"name" form:"name" validate:"max=64"`
	Location     string `json:"location" form:"location" validate:"max=64"`
	Sex          string `json:"sex" form:"sex" validate:"omitempty,oneof=man woman"`
	ShortIntr    string `json:"short_intr" form:"short_intr" validate:"max=128"`
	School       string `json:"school" form:"school" validate:"max=64"`
	Industry     string `json:"industry" form:"industry" validate:"max=64"`
	Discipline   string `json:"discipline" form:"discipline" validate:"max=64"`
	Introduction string `json:"introduction" form:"introduction" validate:"max=2000"`
}

type PeopleDTO struct {
	User     *ProfileDTO   `json:"user"`
	Dynamics []*DynamicDTO `json:"dynamics"`
}

// FollowPageDTO 关注者 / 关注了谁
type FollowPageDTO struct {
	User       *ProfileDTO `json:"user"`
	Who        string      `json:"who"`
	Pagination *Page       `json:"pagination"`
}

// UserContentPageDTO 提问 / 回答列表
type UserContentPageDTO struct {
	User       *ProfileDTO `json:"user"`
	Pagination *Page       `json:"pagination"`
}

type AvatarDTO struct {
	AvatarURL string `json:"avatar_url"`
}

type DynamicDTO struct {
	ID        uint64    `json:"id"`
	Kind      string    `json:"kind"`
	TargetID  uint64    `json:"target_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
