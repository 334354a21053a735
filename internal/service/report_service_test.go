package service

import (
	"context"
	"encoding/csv"
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportLeaderboardToLocalStorage(t *testing.T) {
	f := newFixture(t)
	seedBoard(t, f)
	f.user(t, "d", "Dee")
	seedResult(t, f, "d", "t1", "c1", model.ItemTest, 70, fixedNow)
	dir := t.TempDir()
	storage := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}, nil)
	board := NewLeaderboardService(f.results, nil, config.LeaderboardConfig{}, nil)
	s := NewReportService(board, storage, nil)

	export, err := s.ExportLeaderboard(context.Background(), assessment.LeaderboardFilter{CourseID: "c1", ItemType: assessment.KindTest})
	require.NoError(t, err)
	assert.Equal(t, 4, export.Rows)
	assert.True(t, strings.HasPrefix(export.FileName, "leaderboard/"))
	assert.Equal(t, "/exports/"+export.FileName, export.URL)

	raw, err := os.ReadFile(filepath.Join(dir, export.FileName))
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, leaderboardHeader, records[0])
	assert.Equal(t, []string{"1", "gold", "b", "Bo", "c1", "t1", "test", "90", "2026-03-02T09:30:00Z"}, records[1])
	assert.Equal(t, []string{"3", "bronze", "c"}, records[3][:3])
	assert.Equal(t, []string{"4", "", "d"}, records[4][:3], "no medal after third place")
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	s := NewStorageService(&config.StorageConfig{Type: util.StorageMinio, MinioEndpoint: "http://bad endpoint"}, nil)
	_, ok := s.Provider.(*LocalStorageProvider)
	assert.True(t, ok)

	s = NewStorageService(&config.StorageConfig{Type: util.StorageMinio, MinioEndpoint: "localhost:9000", MinioBucket: "reports"}, nil)
	_, ok = s.Provider.(*MinioStorageProvider)
	assert.True(t, ok)
	assert.Equal(t, "/reports/a.csv", s.GetURL("a.csv"))
}
