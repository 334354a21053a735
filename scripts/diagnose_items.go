// 手动巡检全部测试与作业的出题缺陷
//
// 单个学习项可以通过 GET /api/admin/items/{itemId}/diagnose 检查，
// 此脚本用于批量导入题目之后一次性检查全部内容。
//
// 用法: go run scripts/diagnose_items.go

package main

import (
	"fmt"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"log"
	"os"
	"sort"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	grading := service.NewGradingService(
		repository.NewCourseRepository(db),
		repository.NewResultRepository(db),
		nil, nil, 0, logger.Log,
	)

	report, err := grading.DiagnoseAll()
	if err != nil {
		log.Fatalf("巡检失败: %v", err)
	}
	if len(report) == 0 {
		fmt.Println("全部学习项检查通过")
		return
	}

	ids := make([]string, 0, len(report))
	for id := range report {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("学习项 %s:\n", id)
		for _, msg := range report[id] {
			fmt.Printf("  - %s\n", msg)
		}
	}
	logger.Log.Sync()
	os.Exit(1)
}
