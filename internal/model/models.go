package model

// All 需要迁移的全部表
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserFollow{},
		&TopicCategory{},
		&Topic{},
		&TopicFollow{},
		&Question{},
		&QuestionTopic{},
		&QuestionFollow{},
		&Answer{},
		&Comment{},
		&Dynamic{},
	}
}
