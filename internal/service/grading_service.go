package service

import (
	"context"
	"errors"
	"fmt"
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GradingService struct {
	Courses *repository.CourseRepository
	Results *repository.ResultRepository
	// Lock 与 Cache 在未启用 Redis 时为 nil
	Lock    *repository.SubmissionLock
	Cache   *repository.LeaderboardCache
	Scorer  *assessment.Scorer
	LockTTL time.Duration

	log *zap.Logger
	now func() time.Time
}

func NewGradingService(
	courses *repository.CourseRepository,
	results *repository.ResultRepository,
	lock *repository.SubmissionLock,
	cache *repository.LeaderboardCache,
	lockTTL time.Duration,
	log *zap.Logger,
) *GradingService {
	if log == nil {
		log = zap.NewNop()
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	log = log.Named("grading")
	return &GradingService{
		Courses: courses,
		Results: results,
		Lock:    lock,
		Cache:   cache,
		Scorer:  assessment.NewScorer(log),
		LockTTL: lockTTL,
		log:     log,
		now:     time.Now,
	}
}

type SubmitAnswerReq struct {
	QuestionID string  `json:"questionId"`
	Answer     *string `json:"answer"`
}

type SubmitReq struct {
	ItemType  model.ItemKind    `json:"itemType" binding:"omitempty,oneof=test assignment"`
	Answers   []SubmitAnswerReq `json:"answers"`
	TimeSpent *int              `json:"timeSpent" binding:"omitempty,min=0"`
}

// Submit 评分并保存一次提交。同一学员对同一学习项只会产生一条结果，
// 重复提交返回 util.ErrAlreadySubmitted
func (s *GradingService) Submit(ctx context.Context, actor Actor, itemID string, req SubmitReq) (_ *model.Result, err error) {
	ctx, span := tracing.StartSpan(ctx, "grading.Submit",
		attribute.String("learner.id", actor.ID),
		attribute.String("item.id", itemID))
	defer func() { tracing.EndSpan(span, err) }()

	item, course, err := loadItem(s.Courses, itemID)
	if err != nil {
		return nil, err
	}
	kind := string(item.Kind)

	if !assessment.ItemKind(item.Kind).Gradable() {
		return nil, fmt.Errorf("item %s is a %s: %w", item.ID, item.Kind, util.ErrNotGradable)
	}
	if req.ItemType != "" && req.ItemType != item.Kind {
		return nil, fmt.Errorf("item %s is a %s, got %s: %w", item.ID, item.Kind, req.ItemType, util.ErrItemTypeMismatch)
	}
	if err := authorize(actor, course, item); err != nil {
		monitoring.SubmissionCounter.WithLabelValues(kind, monitoring.OutcomeDenied).Inc()
		return nil, err
	}

	if s.Lock != nil {
		token, acquired, lockErr := s.Lock.Acquire(ctx, actor.ID, item.ID, s.LockTTL)
		switch {
		case lockErr != nil:
			// Redis 不可用时退回到唯一索引裁决
			s.log.Warn("submission lock unavailable", zap.String("item_id", item.ID), zap.Error(lockErr))
		case !acquired:
			monitoring.SubmissionCounter.WithLabelValues(kind, monitoring.OutcomeDuplicate).Inc()
			return nil, fmt.Errorf("learner %s item %s in flight: %w", actor.ID, item.ID, util.ErrAlreadySubmitted)
		default:
			defer func() {
				released, relErr := s.Lock.Release(context.Background(), actor.ID, item.ID, token)
				switch {
				case relErr != nil:
					s.log.Warn("release submission lock", zap.String("item_id", item.ID), zap.Error(relErr))
				case !released:
					s.log.Warn("submission lock expired before grading finished",
						zap.String("item_id", item.ID), zap.Duration("ttl", s.LockTTL))
				}
			}()
		}
	}

	exists, err := s.Results.ExistsForLearnerAndItem(actor.ID, item.ID)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues(kind, monitoring.OutcomeError).Inc()
		return nil, err
	}
	if exists {
		monitoring.SubmissionCounter.WithLabelValues(kind, monitoring.OutcomeDuplicate).Inc()
		return nil, fmt.Errorf("learner %s item %s: %w", actor.ID, item.ID, util.ErrAlreadySubmitted)
	}

	gradable := gradableToCore(item)
	if len(assessment.Diagnose(gradable)) > 0 {
		monitoring.MalformedItems.Inc()
	}

	sub := assessment.Submission{
		LearnerID:   actor.ID,
		ItemID:      item.ID,
		ItemType:    assessment.ItemKind(item.Kind),
		Answers:     make([]assessment.Answer, 0, len(req.Answers)),
		TimeSpent:   req.TimeSpent,
		SubmittedAt: s.now().UTC(),
	}
	for _, a := range req.Answers {
		sub.Answers = append(sub.Answers, assessment.Answer{QuestionID: a.QuestionID, RawAnswer: a.Answer})
	}

	graded := s.Scorer.Grade(sub, gradable)
	result, err := resultToModel(graded)
	if err != nil {
		return nil, err
	}

	if err := s.Results.Create(result); err != nil {
		outcome := monitoring.OutcomeError
		if errors.Is(err, util.ErrAlreadySubmitted) {
			outcome = monitoring.OutcomeDuplicate
		}
		monitoring.SubmissionCounter.WithLabelValues(kind, outcome).Inc()
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(kind, monitoring.OutcomeGraded).Inc()
	monitoring.ScoreHistogram.WithLabelValues(kind).Observe(float64(result.Score))
	span.SetAttributes(attribute.Int("result.score", result.Score))

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			s.log.Warn("invalidate leaderboard cache", zap.Error(err))
		}
	}

	s.log.Info("submission graded",
		zap.String("learner_id", actor.ID),
		zap.String("item_id", item.ID),
		zap.Int("score", result.Score),
		zap.Int("max_score", result.MaxScore))
	return result, nil
}

// GetResult 返回调用者自己的评分结果
func (s *GradingService) GetResult(actor Actor, itemID string) (*model.Result, error) {
	result, err := s.Results.FindByLearnerAndItem(actor.ID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("learner %s item %s: %w", actor.ID, itemID, util.ErrResultNotFound)
	}
	return result, err
}

// ListItemResults 管理员查看某学习项的全部结果
func (s *GradingService) ListItemResults(itemID string) ([]model.Result, error) {
	if _, _, err := loadItem(s.Courses, itemID); err != nil {
		return nil, err
	}
	return s.Results.ListByItem(itemID)
}

// DiagnoseItem 列出学习项的出题缺陷
func (s *GradingService) DiagnoseItem(itemID string) ([]string, error) {
	item, _, err := loadItem(s.Courses, itemID)
	if err != nil {
		return nil, err
	}
	return diagnoseMessages(item), nil
}

// DiagnoseAll 巡检全部测试与作业，只返回存在缺陷的学习项
func (s *GradingService) DiagnoseAll() (map[string][]string, error) {
	items, err := s.Courses.ListAllGradableWithQuestions()
	if err != nil {
		return nil, err
	}
	report := make(map[string][]string)
	for i := range items {
		if messages := diagnoseMessages(&items[i]); len(messages) > 0 {
			report[items[i].ID] = messages
		}
	}
	return report, nil
}

func diagnoseMessages(item *model.Item) []string {
	problems := assessment.Diagnose(gradableToCore(item))
	messages := make([]string, 0, len(problems))
	for _, p := range problems {
		messages = append(messages, p.Error())
	}
	return messages
}
