// Package assessment holds the grading and ranking rules of the platform.
//
// Everything here works on plain values the caller has already loaded: no
// database, no clock, no session state. Route handlers and services compose
// these functions; tests call them directly.
package assessment

import "time"

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	FillIn         QuestionType = "fill-in"
	Code           QuestionType = "code"
)

type ItemKind string

const (
	KindTest       ItemKind = "test"
	KindAssignment ItemKind = "assignment"
	KindCourse     ItemKind = "course"
	KindClass      ItemKind = "class"
)

// Gradable reports whether results can be recorded against items of this kind.
func (k ItemKind) Gradable() bool {
	return k == KindTest || k == KindAssignment
}

type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

const DefaultPoints = 1

type Question struct {
	ID   string
	Type QuestionType
	Text string
	// Options is only meaningful for multiple-choice questions.
	Options []string
	// CorrectAnswer holds one or more acceptable answers. For multiple-choice
	// the first entry is the index of the correct option.
	CorrectAnswer []string
	// Points <= 0 means unset.
	Points       int
	CodeTemplate string
	TestCases    []byte
}

// EffectivePoints applies the default weight of one point.
func (q Question) EffectivePoints() int {
	if q.Points <= 0 {
		return DefaultPoints
	}
	return q.Points
}

type Learner struct {
	ID   string
	Name string
}

// LearningItem is anything gated by visibility: tests, assignments, courses
// and classes.
type LearningItem struct {
	ID         string
	Kind       ItemKind
	CourseID   string
	Visibility Visibility
	AssignedTo []string
}

// GradableItem is a test or assignment together with its ordered questions.
type GradableItem struct {
	LearningItem
	Title     string
	Questions []Question
}

type Answer struct {
	QuestionID string
	// RawAnswer is nil when the learner left the question blank.
	RawAnswer *string
}

type Submission struct {
	LearnerID   string
	ItemID      string
	ItemType    ItemKind
	Answers     []Answer
	TimeSpent   *int
	SubmittedAt time.Time
}

type Evaluation struct {
	IsCorrect     bool
	PointsAwarded int
}

type Outcome struct {
	QuestionID    string
	RawAnswer     *string
	IsCorrect     bool
	PointsAwarded int
}

type Result struct {
	LearnerID   string
	CourseID    string
	ItemID      string
	ItemType    ItemKind
	Outcomes    []Outcome
	Score       int
	MaxScore    int
	SubmittedAt time.Time
	TimeSpent   *int
}

type ProgressEntry struct {
	CourseID       string
	CompletedCount int
	TotalCount     int
	LastActivity   *time.Time
}

// Percent is the rounded completion percentage, zero for an empty course.
func (p ProgressEntry) Percent() int {
	if p.TotalCount == 0 {
		return 0
	}
	return roundPercent(int64(p.CompletedCount), int64(p.TotalCount))
}

// RankEntry is a Result joined with the learner's display name.
type RankEntry struct {
	Result
	LearnerName string
}

type LeaderboardFilter struct {
	CourseID  string
	ItemType  ItemKind
	NameQuery string
}

type LeaderboardRow struct {
	Rank        int
	Medal       Medal
	LearnerID   string
	LearnerName string
	CourseID    string
	ItemID      string
	ItemType    ItemKind
	Score       int
	CompletedAt time.Time
}
