package dto

type CategoryDTO struct {
	ID           uint64 `json:"id"`
	CategoryName string `json:"category_name"`
}

type TopicDTO struct {
	ID          uint64 `json:"id"`
	CategoryID  uint64 `json:"category_id"`
	TopicName   string `json:"topic_name"`
	TopicDesc   string `json:"topic_desc"`
	IsFollowing bool   `json:"is_following"`
}

// TopicsPageDTO 话题广场
type TopicsPageDTO struct {
	Categories []*CategoryDTO `json:"categories"`
	Selected   *CategoryDTO   `json:"selected"`
	Topics     []*TopicDTO    `json:"topics"`
}

// FollowedTopicsDTO 关注话题的动态
type FollowedTopicsDTO struct {
	Topics    []*TopicDTO    `json:"topics"`
	Selected  *TopicDTO      `json:"selected"`
	Questions []*QuestionDTO `json:"questions"`
}

type TopicAllDTO struct {
	Topics [][]interface{} `json:"topics"`
}

type TopicDetailDTO struct {
	Topic     *TopicDTO                `json:"topic"`
	Count     int64                    `json:"count"`
	Questions []*QuestionWithAnswerDTO `json:"questions_excellans"`
}

type TopicFollowersDTO struct {
	Topic      *TopicDTO `json:"topic"`
	Pagination *Page     `json:"pagination"`
}

// TopicQuestionsDTO 某个关注话题下的最新问题
type TopicQuestionsDTO struct {
	Topic     *TopicDTO      `json:"topic"`
	Questions []*QuestionDTO `json:"questions"`
}
