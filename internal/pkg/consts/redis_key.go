package consts

const (
	TokenBlacklistKey     = "token:blacklist:"
	UserSimpleInfoKey     = "user:simple:info:"
	UserFollowerKey       = "user:follower:"
	UserFollowingKey      = "user:following:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	QuestionViewKey       = "question:view:"
	QuestionViewDirtyKey  = "question:view:dirty"
	QuestionRecommendKey  = "question:recommend"
	NotifyChannelPrefix   = "notify:user:"
)

const (
	QuestionViewLock = "lock:question:view"
	RecommendLock    = "lock:question:recommend"
)
