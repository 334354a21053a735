package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/util"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService struct {
	Leaderboard *LeaderboardService
	Storage     *StorageService
	log         *zap.Logger
	now         func() time.Time
}

func NewReportService(leaderboard *LeaderboardService, storage *StorageService, log *zap.Logger) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{Leaderboard: leaderboard, Storage: storage, log: log.Named("report"), now: time.Now}
}

type ExportView struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	Rows     int    `json:"rows"`
}

var leaderboardHeader = []string{"rank", "medal", "learner_id", "learner_name", "course_id", "item_id", "item_type", "score", "completed_at"}

func writeLeaderboardCSV(rows []LeaderboardRowView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(leaderboardHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			string(r.Medal),
			r.LearnerID,
			r.LearnerName,
			r.CourseID,
			r.ItemID,
			string(r.ItemType),
			strconv.Itoa(r.Score),
			r.CompletedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportLeaderboard 把当前排名导出为 CSV 并上传到报表存储
func (s *ReportService) ExportLeaderboard(ctx context.Context, f assessment.LeaderboardFilter) (*ExportView, error) {
	rows, err := s.Leaderboard.Ranking(ctx, f)
	if err != nil {
		return nil, err
	}
	data, err := writeLeaderboardCSV(rows)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("leaderboard/%s-%s.csv", s.now().UTC().Format("20060102-150405"), uuid.New().String()[:8])
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		return nil, err
	}

	s.log.Info("leaderboard exported", zap.String("file", name), zap.Int("rows", len(rows)))
	return &ExportView{FileName: name, URL: url, Rows: len(rows)}, nil
}
