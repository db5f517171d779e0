package consts

// 动态类型，记录在 dynamics 表
const (
	DynamicTopic    = "topic"
	DynamicQuestion = "question"
	DynamicAsk      = "ask"
	DynamicAnswer   = "answer"
)

// 推送到关注者收件箱的动态类型
const (
	NotifyFollowUser  = "follow_user"
	NotifyFollowTopic = "follow_topic"
	NotifyFollowQues  = "follow_ques"
	NotifyAsk         = "ask"
	NotifyAnswer      = "answer"
)

const (
	SexMan     = "man"
	SexWoman   = "woman"
	DefaultSex = SexMan
)

// 在个人主页上称呼自己或他人
const (
	WhoMe    = "我"
	WhoOther = "他"
)

const (
	MaxQuestionTitleLen = 60
	MaxQuestionDescLen  = 500
	MaxCommentLen       = 200
	AvatarSize          = 200
	MaxAvatarFileSize   = 5 << 20
)

// Canal 同步的表名
const (
	TableUserFollows = "user_follows"
	TableQuestions   = "questions"
)
