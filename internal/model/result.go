package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResultAnswer is one graded question inside a Result.
type ResultAnswer struct {
	QuestionID    string  `json:"questionId"`
	RawAnswer     *string `json:"rawAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
	PointsAwarded int     `json:"pointsAwarded"`
}

// Result is written once when a submission is graded and never updated.
// The unique index on (learner_id, item_id) is what rejects a second
// submission for the same item.
// swagger:model Result
type Result struct {
	ID          string                            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	LearnerID   string                            `gorm:"type:varchar(36);not null;uniqueIndex:idx_result_learner_item,priority:1" json:"learnerId"`
	ItemID      string                            `gorm:"type:varchar(36);not null;uniqueIndex:idx_result_learner_item,priority:2;index" json:"itemId"`
	CourseID    string                            `gorm:"type:varchar(36);index" json:"courseId"`
	ItemType    ItemKind                          `gorm:"size:20;not null;index" json:"itemType"`
	Answers     datatypes.JSONSlice[ResultAnswer] `gorm:"type:json" json:"answers"`
	Score       int                               `gorm:"not null" json:"score"`
	MaxScore    int                               `gorm:"not null" json:"maxScore"`
	TimeSpent   *int                              `json:"timeSpent,omitempty"` // Seconds
	SubmittedAt time.Time                         `gorm:"not null;index" json:"submittedAt"`
	CreatedAt   time.Time                         `json:"createdAt"`
}

func (Result) TableName() string {
	return "results"
}

func (r *Result) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
