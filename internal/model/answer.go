package model

// Answer 问卷中单个问题的选择
type Answer struct {
	QuestionID string `json:"question_id"`
	Option     string `json:"option"`
}
