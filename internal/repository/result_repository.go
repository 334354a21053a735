package repository

import (
	"errors"
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Create 写入评分结果。同一学员同一学习项已有结果时返回 util.ErrAlreadySubmitted，
// 并发提交由唯一索引裁决，只有一条能成功
func (r *ResultRepository) Create(result *model.Result) error {
	if err := r.DB.Create(result).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("learner %s item %s: %w", result.LearnerID, result.ItemID, util.ErrAlreadySubmitted)
		}
		return err
	}
	return nil
}

func (r *ResultRepository) FindByLearnerAndItem(learnerID, itemID string) (*model.Result, error) {
	var result model.Result
	err := r.DB.Where("learner_id = ? AND item_id = ?", learnerID, itemID).First(&result).Error
	return &result, err
}

func (r *ResultRepository) ExistsForLearnerAndItem(learnerID, itemID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Result{}).
		Where("learner_id = ? AND item_id = ?", learnerID, itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResultRepository) ListByLearner(learnerID string) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("learner_id = ?", learnerID).Order("submitted_at ASC").Find(&results).Error
	return results, err
}

func (r *ResultRepository) ListByItem(itemID string) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("item_id = ?", itemID).Order("submitted_at ASC").Find(&results).Error
	return results, err
}

// LeaderboardRow 结果与学员姓名的联合查询行
type LeaderboardRow struct {
	LearnerID   string
	LearnerName string
	CourseID    string
	ItemID      string
	ItemType    model.ItemKind
	Score       int
	SubmittedAt time.Time
}

// ListForLeaderboard 按课程和类型预筛选结果，排序由调用方完成
func (r *ResultRepository) ListForLeaderboard(courseID string, itemType model.ItemKind) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	query := r.DB.Table("results r").
		Select("r.learner_id, COALESCE(u.name, '') AS learner_name, r.course_id, r.item_id, r.item_type, r.score, r.submitted_at").
		Joins("LEFT JOIN users u ON u.id = r.learner_id")
	if courseID != "" {
		query = query.Where("r.course_id = ?", courseID)
	}
	if itemType != "" {
		query = query.Where("r.item_type = ?", itemType)
	}
	err := query.Scan(&rows).Error
	return rows, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
