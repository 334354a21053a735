package model

import (
	"time"

	"gorm.io/datatypes"
)

type ItemKind string

const (
	ItemTest       ItemKind = "test"
	ItemAssignment ItemKind = "assignment"
	ItemClass      ItemKind = "class"
)

// Item is a learning item inside a course. Tests and assignments carry
// questions; classes are plain content but share the visibility rules.
// swagger:model Item
type Item struct {
	UUIDBase
	CourseID    string                      `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Kind        ItemKind                    `gorm:"size:20;not null;index" json:"kind"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Visibility  Visibility                  `gorm:"size:20;default:'public'" json:"visibility"`
	AssignedTo  datatypes.JSONSlice[string] `gorm:"type:json" json:"assignedTo"`
	TimeLimit   int                         `gorm:"default:0" json:"timeLimit"` // Minutes
	DueAt       *time.Time                  `json:"dueAt,omitempty"`
	Order       int                         `gorm:"default:0" json:"order"`
	Questions   []Question                  `gorm:"foreignKey:ItemID" json:"questions,omitempty"`
}

func (Item) TableName() string {
	return "items"
}
