package service

import (
	"context"
	"fmt"
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

type LeaderboardService struct {
	Results *repository.ResultRepository
	// Cache 为 nil 时每次都从数据库重算
	Cache *repository.LeaderboardCache

	DefaultLimit int

	cacheTTL atomic.Int64
	log      *zap.Logger
}

func NewLeaderboardService(results *repository.ResultRepository, cache *repository.LeaderboardCache, cfg config.LeaderboardConfig, log *zap.Logger) *LeaderboardService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &LeaderboardService{
		Results:      results,
		Cache:        cache,
		DefaultLimit: cfg.DefaultLimit,
		log:          log.Named("leaderboard"),
	}
	s.SetCacheTTL(cfg.CacheTTL())
	return s
}

// SetCacheTTL 配置热更新时调用，<=0 表示不缓存
func (s *LeaderboardService) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL.Store(int64(ttl))
}

func (s *LeaderboardService) CacheTTL() time.Duration {
	return time.Duration(s.cacheTTL.Load())
}

type LeaderboardQuery struct {
	CourseID string `form:"courseId"`
	ItemType string `form:"itemType" binding:"omitempty,oneof=test assignment"`
	Name     string `form:"name"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (q LeaderboardQuery) filter() assessment.LeaderboardFilter {
	return assessment.LeaderboardFilter{
		CourseID:  q.CourseID,
		ItemType:  assessment.ItemKind(q.ItemType),
		NameQuery: strings.TrimSpace(q.Name),
	}
}

type LeaderboardRowView struct {
	Rank        int                 `json:"rank"`
	Medal       assessment.Medal    `json:"medal,omitempty"`
	LearnerID   string              `json:"learnerId"`
	LearnerName string              `json:"learnerName"`
	CourseID    string              `json:"courseId,omitempty"`
	ItemID      string              `json:"itemId"`
	ItemType    assessment.ItemKind `json:"itemType"`
	Score       int                 `json:"score"`
	CompletedAt time.Time           `json:"completedAt"`
}

func filterKey(f assessment.LeaderboardFilter) string {
	return fmt.Sprintf("course=%s|type=%s|name=%s", f.CourseID, f.ItemType, strings.ToLower(f.NameQuery))
}

// Ranking 返回过滤后的完整排名，名次从 1 开始
func (s *LeaderboardService) Ranking(ctx context.Context, f assessment.LeaderboardFilter) ([]LeaderboardRowView, error) {
	key := filterKey(f)
	ttl := s.CacheTTL()
	useCache := s.Cache != nil && ttl > 0
	var gen int64
	if useCache {
		var err error
		gen, err = s.Cache.Generation(ctx)
		if err != nil {
			s.log.Warn("read leaderboard generation", zap.Error(err))
			useCache = false
		}
	}
	if useCache {
		var cached []LeaderboardRowView
		hit, err := s.Cache.Get(ctx, gen, key, &cached)
		if err != nil {
			s.log.Warn("read leaderboard cache", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	rows, err := s.Results.ListForLeaderboard(f.CourseID, model.ItemKind(f.ItemType))
	if err != nil {
		return nil, err
	}
	entries := make([]assessment.RankEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, assessment.RankEntry{
			Result: assessment.Result{
				LearnerID:   r.LearnerID,
				CourseID:    r.CourseID,
				ItemID:      r.ItemID,
				ItemType:    assessment.ItemKind(r.ItemType),
				Score:       r.Score,
				SubmittedAt: r.SubmittedAt,
			},
			LearnerName: r.LearnerName,
		})
	}

	ranked := assessment.Rank(entries, f)
	views := make([]LeaderboardRowView, 0, len(ranked))
	if err := copier.Copy(&views, ranked); err != nil {
		return nil, err
	}

	if useCache {
		if err := s.Cache.Set(ctx, gen, key, views, ttl); err != nil {
			s.log.Warn("write leaderboard cache", zap.Error(err))
		}
	}
	return views, nil
}

// Page 对完整排名分页，名次保持全局编号
func (s *LeaderboardService) Page(ctx context.Context, q LeaderboardQuery) (*util.PageResponse, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = util.DefaultPage
	}
	if limit < 1 {
		limit = s.DefaultLimit
	}
	if limit < 1 {
		limit = util.DefaultLimit
	}
	if limit > util.MaxLimit {
		limit = util.MaxLimit
	}

	rows, err := s.Ranking(ctx, q.filter())
	if err != nil {
		return nil, err
	}

	start := (page - 1) * limit
	if start > len(rows) {
		start = len(rows)
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}

	return &util.PageResponse{
		List:  rows[start:end],
		Total: int64(len(rows)),
		Page:  page,
		Limit: limit,
	}, nil
}
