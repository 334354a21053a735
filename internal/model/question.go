package model

import "gorm.io/datatypes"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionFillIn         QuestionType = "fill-in"
	QuestionCode           QuestionType = "code"
)

// Question belongs to a test or assignment.
// swagger:model Question
type Question struct {
	UUIDBase
	ItemID        string                      `gorm:"index;type:varchar(36);not null" json:"itemId"`
	QuestionType  QuestionType                `gorm:"size:50;not null" json:"questionType"`
	Content       string                      `gorm:"type:text;not null" json:"content"`
	Options       datatypes.JSONSlice[string] `gorm:"type:json" json:"options,omitempty"`
	CorrectAnswer datatypes.JSONSlice[string] `gorm:"type:json" json:"correctAnswer,omitempty"`
	Points        int                         `gorm:"default:1" json:"points"`
	CodeTemplate  string                      `gorm:"type:text" json:"codeTemplate,omitempty"`
	TestCases     datatypes.JSON              `gorm:"type:json" json:"testCases,omitempty"`
	Explanation   string                      `gorm:"type:text" json:"explanation,omitempty"`
	Order         int                         `gorm:"default:0" json:"order"`
	// Unstable is set on questions migrated from content authored before
	// question ids existed; submissions answer them by position.
	Unstable bool `gorm:"default:false" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
