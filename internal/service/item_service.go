package service

import (
	"errors"
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ItemService struct {
	Courses *repository.CourseRepository
	Results *repository.ResultRepository
	log     *zap.Logger
}

func NewItemService(courses *repository.CourseRepository, results *repository.ResultRepository, log *zap.Logger) *ItemService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemService{Courses: courses, Results: results, log: log.Named("items")}
}

// QuestionView 返回给前端的题目，学生视图不含答案与解析
type QuestionView struct {
	ID            string                      `json:"id"`
	QuestionType  model.QuestionType          `json:"questionType"`
	Content       string                      `json:"content"`
	Options       datatypes.JSONSlice[string] `json:"options,omitempty"`
	CorrectAnswer datatypes.JSONSlice[string] `json:"correctAnswer,omitempty"`
	Points        int                         `json:"points"`
	CodeTemplate  string                      `json:"codeTemplate,omitempty"`
	TestCases     datatypes.JSON              `json:"testCases,omitempty"`
	Explanation   string                      `json:"explanation,omitempty"`
	Order         int                         `json:"order"`
}

type ItemView struct {
	ID          string           `json:"id"`
	CourseID    string           `json:"courseId"`
	Kind        model.ItemKind   `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Visibility  model.Visibility `json:"visibility"`
	TimeLimit   int              `json:"timeLimit"`
	DueAt       *time.Time       `json:"dueAt,omitempty"`
	Order       int              `json:"order"`
	Submitted   bool             `json:"submitted"`
	Questions   []QuestionView   `json:"questions,omitempty"`
}

func loadCourse(repo *repository.CourseRepository, courseID string) (*model.Course, error) {
	course, err := repo.FindCourseByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("course %s: %w", courseID, util.ErrCourseNotFound)
	}
	return course, err
}

// loadItem 加载学习项、题目及其所属课程
func loadItem(repo *repository.CourseRepository, itemID string) (*model.Item, *model.Course, error) {
	item, err := repo.FindItemWithQuestions(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("item %s: %w", itemID, util.ErrItemNotFound)
	}
	if err != nil {
		return nil, nil, err
	}
	course, err := loadCourse(repo, item.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return item, course, nil
}

func toItemView(item *model.Item) (ItemView, error) {
	var view ItemView
	if err := copier.Copy(&view, item); err != nil {
		return ItemView{}, fmt.Errorf("item %s: %w", item.ID, err)
	}
	view.Questions = nil
	return view, nil
}

// ListCourseItems 返回调用者可见的课程学习项（不含题目）
func (s *ItemService) ListCourseItems(actor Actor, courseID string) ([]ItemView, error) {
	course, err := loadCourse(s.Courses, courseID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, course, nil); err != nil {
		return nil, err
	}

	items, err := s.Courses.ListItems(courseID)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(items))
	for i := range items {
		if authorize(actor, nil, &items[i]) != nil {
			continue
		}
		view, err := toItemView(&items[i])
		if err != nil {
			return nil, err
		}
		if items[i].Kind != model.ItemClass {
			view.Submitted, err = s.Results.ExistsForLearnerAndItem(actor.ID, items[i].ID)
			if err != nil {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// GetItem 返回学习项详情；非管理员看不到正确答案和解析
func (s *ItemService) GetItem(actor Actor, itemID string) (*ItemView, error) {
	item, course, err := loadItem(s.Courses, itemID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, course, item); err != nil {
		return nil, err
	}

	view, err := toItemView(item)
	if err != nil {
		return nil, err
	}
	view.Questions = make([]QuestionView, 0, len(item.Questions))
	if err := copier.Copy(&view.Questions, item.Questions); err != nil {
		return nil, err
	}
	if !actor.Admin {
		for i := range view.Questions {
			view.Questions[i].CorrectAnswer = nil
			view.Questions[i].Explanation = ""
		}
	}

	if item.Kind != model.ItemClass {
		view.Submitted, err = s.Results.ExistsForLearnerAndItem(actor.ID, item.ID)
		if err != nil {
			return nil, err
		}
	}
	return &view, nil
}
