package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

var (
	student = Actor{ID: "u1", Name: "Ana"}
	admin   = Actor{ID: "admin", Name: "Root", Admin: true}
)

type fixture struct {
	db      *gorm.DB
	courses *repository.CourseRepository
	results *repository.ResultRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	return &fixture{
		db:      db,
		courses: repository.NewCourseRepository(db),
		results: repository.NewResultRepository(db),
	}
}

func (f *fixture) course(t *testing.T, id string, visibility model.Visibility, assigned ...string) *model.Course {
	t.Helper()
	c := &model.Course{Title: "Course " + id, Visibility: visibility, AssignedTo: assigned, IsPublished: true}
	c.ID = id
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) item(t *testing.T, id, courseID string, kind model.ItemKind, visibility model.Visibility, assigned ...string) *model.Item {
	t.Helper()
	it := &model.Item{CourseID: courseID, Kind: kind, Title: "Item " + id, Visibility: visibility, AssignedTo: assigned}
	it.ID = id
	require.NoError(t, f.db.Create(it).Error)
	return it
}

// choiceQuestions 两道单选题，正确答案分别是 "B" 和 "C"
func (f *fixture) choiceQuestions(t *testing.T, itemID string) {
	t.Helper()
	for i, q := range []model.Question{
		{QuestionType: model.QuestionMultipleChoice, Content: "q1", Options: []string{"A", "B", "C"}, CorrectAnswer: []string{"1"}, Points: 1, Order: 1, Explanation: "because"},
		{QuestionType: model.QuestionMultipleChoice, Content: "q2", Options: []string{"A", "B", "C"}, CorrectAnswer: []string{"2"}, Points: 1, Order: 2},
	} {
		q := q
		q.ID = itemID + "-q" + string(rune('1'+i))
		q.ItemID = itemID
		require.NoError(t, f.db.Create(&q).Error)
	}
}

func (f *fixture) user(t *testing.T, id, name string) {
	t.Helper()
	u := &model.User{Name: name, Email: id + "@example.com"}
	u.ID = id
	require.NoError(t, f.db.Create(u).Error)
}

func strPtr(s string) *string { return &s }
