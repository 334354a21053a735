package model

import "gorm.io/datatypes"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Course groups classes, tests and assignments. A private course is only
// visible to the learners listed in AssignedTo.
// swagger:model Course
type Course struct {
	UUIDBase
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Visibility  Visibility                  `gorm:"size:20;default:'public'" json:"visibility"`
	AssignedTo  datatypes.JSONSlice[string] `gorm:"type:json" json:"assignedTo"`
	IsPublished bool                        `gorm:"default:false" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}
