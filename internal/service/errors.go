package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// 页面提示文案
const (
	MsgProfileUpdate = "资料已更新"
	MsgTopicNotFound = "没有关注该话题，已为你展示第一个关注的话题"
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrUserUsernameExist     = errors.New("用户名已存在")
	ErrUserEmailExist        = errors.New("邮箱已注册")
	ErrPasswordIncorrect     = errors.New("密码错误")
	ErrInvalidUser           = errors.New("无效的用户")
	ErrCannotFollowSelf      = errors.New("不能关注自己")
	ErrAlreadyFollowing      = errors.New("已经关注了该用户")
	ErrNotFollowing          = errors.New("还没有关注该用户")
	ErrUserFollowLimit       = errors.New("关注数量超过限制")
	ErrFail                  = errors.New("操作失败")
	ErrNotValidChoice        = errors.New("请选择有效的话题")
	ErrQuestionInvalid       = errors.New("问题不能为空，标题不超过60字，描述不超过500字")
	ErrCommentInvalid        = errors.New("评论不能为空且不超过200字")
	ErrAvatarUpdateFail      = errors.New("头像修改失败")
	ErrTopicNotFound         = errors.New("话题不存在")
	ErrQuestionNotFound      = errors.New("问题不存在")
	ErrNotificationNotFound  = errors.New("通知不存在")
	ErrSearchKeywordRequired = errors.New("搜索关键词不能为空")
	UnauthorizedError        = errors.New("权限不足")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrUserNotFound:          NotFound,
	ErrUserUsernameExist:     BadRequest,
	ErrUserEmailExist:        BadRequest,
	ErrPasswordIncorrect:     Unauthorized,
	ErrInvalidUser:           BadRequest,
	ErrCannotFollowSelf:      BadRequest,
	ErrAlreadyFollowing:      BadRequest,
	ErrNotFollowing:          BadRequest,
	ErrUserFollowLimit:       BadRequest,
	ErrFail:                  BadRequest,
	ErrNotValidChoice:        BadRequest,
	ErrQuestionInvalid:       BadRequest,
	ErrCommentInvalid:        BadRequest,
	ErrAvatarUpdateFail:      BadRequest,
	ErrTopicNotFound:         NotFound,
	ErrQuestionNotFound:      NotFound,
	ErrNotificationNotFound:  NotFound,
	ErrSearchKeywordRequired: BadRequest,
	UnauthorizedError:        Forbidden,
}
