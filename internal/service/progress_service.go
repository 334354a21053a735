package service

import (
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"time"

	"go.uber.org/zap"
)

type ProgressService struct {
	Courses *repository.CourseRepository
	Results *repository.ResultRepository
	log     *zap.Logger
}

func NewProgressService(courses *repository.CourseRepository, results *repository.ResultRepository, log *zap.Logger) *ProgressService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressService{Courses: courses, Results: results, log: log.Named("progress")}
}

type ProgressView struct {
	CourseID       string     `json:"courseId"`
	CourseTitle    string     `json:"courseTitle"`
	CompletedCount int        `json:"completedCount"`
	TotalCount     int        `json:"totalCount"`
	Percent        int        `json:"percent"`
	LastActivity   *time.Time `json:"lastActivity,omitempty"`
}

func newProgressView(course *model.Course, entry assessment.ProgressEntry) ProgressView {
	return ProgressView{
		CourseID:       entry.CourseID,
		CourseTitle:    course.Title,
		CompletedCount: entry.CompletedCount,
		TotalCount:     entry.TotalCount,
		Percent:        entry.Percent(),
		LastActivity:   entry.LastActivity,
	}
}

func learningItems(items []model.Item) []assessment.LearningItem {
	out := make([]assessment.LearningItem, 0, len(items))
	for i := range items {
		out = append(out, itemToCore(&items[i]))
	}
	return out
}

// CourseProgress 计算调用者在单门课程中的完成情况
func (s *ProgressService) CourseProgress(actor Actor, courseID string) (*ProgressView, error) {
	course, err := loadCourse(s.Courses, courseID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, course, nil); err != nil {
		return nil, err
	}

	items, err := s.Courses.ListGradableItems([]string{courseID})
	if err != nil {
		return nil, err
	}
	results, err := s.Results.ListByLearner(actor.ID)
	if err != nil {
		return nil, err
	}

	coreResults, err := resultsToCore(results)
	if err != nil {
		return nil, err
	}

	entry := assessment.ComputeProgress(actor.ID, courseID, learningItems(items), coreResults)
	view := newProgressView(course, entry)
	return &view, nil
}

// Overview 返回调用者可见的每门已发布课程的进度
func (s *ProgressService) Overview(actor Actor) ([]ProgressView, error) {
	courses, err := s.Courses.ListPublishedCourses()
	if err != nil {
		return nil, err
	}

	visible := make([]model.Course, 0, len(courses))
	ids := make([]string, 0, len(courses))
	for i := range courses {
		if authorize(actor, &courses[i], nil) != nil {
			continue
		}
		visible = append(visible, courses[i])
		ids = append(ids, courses[i].ID)
	}

	items, err := s.Courses.ListGradableItems(ids)
	if err != nil {
		return nil, err
	}
	results, err := s.Results.ListByLearner(actor.ID)
	if err != nil {
		return nil, err
	}

	coreResults, err := resultsToCore(results)
	if err != nil {
		return nil, err
	}

	coreItems := learningItems(items)
	views := make([]ProgressView, 0, len(visible))
	for i := range visible {
		entry := assessment.ComputeProgress(actor.ID, visible[i].ID, coreItems, coreResults)
		views = append(views, newProgressView(&visible[i], entry))
	}
	s.log.Debug("progress overview", zap.String("learner_id", actor.ID), zap.Int("courses", len(views)))
	return views, nil
}
