package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

// CourseRepository 读取课程、学习项与题目。本服务只读，题目的增删改由课程管理服务负责
type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindCourseByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) ListPublishedCourses() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_published = ?", true).Order("created_at ASC").Find(&courses).Error
	return courses, err
}

// ListItems 返回课程下的全部学习项（不含题目）
func (r *CourseRepository) ListItems(courseID string) ([]model.Item, error) {
	var items []model.Item
	err := r.DB.Where("course_id = ?", courseID).
		Order("`order` ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

// ListGradableItems 返回若干课程下的测试与作业
func (r *CourseRepository) ListGradableItems(courseIDs []string) ([]model.Item, error) {
	var items []model.Item
	if len(courseIDs) == 0 {
		return items, nil
	}
	err := r.DB.Where("course_id IN ? AND kind IN ?", courseIDs, []model.ItemKind{model.ItemTest, model.ItemAssignment}).
		Order("`order` ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

// FindItemWithQuestions 加载学习项及按顺序排列的题目
func (r *CourseRepository) FindItemWithQuestions(id string) (*model.Item, error) {
	var item model.Item
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC, created_at ASC")
	}).First(&item, "id = ?", id).Error
	return &item, err
}

// ListAllGradableWithQuestions 加载全部测试与作业及其题目，供离线巡检使用
func (r *CourseRepository) ListAllGradableWithQuestions() ([]model.Item, error) {
	var items []model.Item
	err := r.DB.Where("kind IN ?", []model.ItemKind{model.ItemTest, model.ItemAssignment}).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` ASC, created_at ASC")
		}).
		Order("course_id ASC, `order` ASC").
		Find(&items).Error
	return items, err
}
