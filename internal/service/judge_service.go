package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/util"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// JudgeService 把练习代码转发给 Judge0 执行。练习运行不评分，也不写入结果
type JudgeService struct {
	config config.Judge0Config
	client *http.Client
	log    *zap.Logger
}

func NewJudgeService(cfg config.Judge0Config, log *zap.Logger) *JudgeService {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &JudgeService{config: cfg, client: &http.Client{Timeout: timeout}, log: log.Named("judge")}
}

type PracticeRunReq struct {
	SourceCode string `json:"sourceCode" binding:"required"`
	LanguageID int    `json:"languageId" binding:"required,min=1"`
	Stdin      string `json:"stdin"`
}

type judgeSubmission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin,omitempty"`
}

type PracticeRunResult struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Time          string `json:"time"`
	Memory        int    `json:"memory"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Run 同步提交代码（wait=true）并返回 Judge0 的执行结果
func (s *JudgeService) Run(ctx context.Context, req PracticeRunReq) (*PracticeRunResult, error) {
	if s.config.URL == "" {
		return nil, fmt.Errorf("judge0 url not configured: %w", util.ErrJudgeUnavailable)
	}

	body, err := json.Marshal(judgeSubmission{SourceCode: req.SourceCode, LanguageID: req.LanguageID, Stdin: req.Stdin})
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(s.config.URL, "/") + "/submissions?base64_encoded=false&wait=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		httpReq.Header.Set("X-RapidAPI-Key", s.config.APIKey)
	}
	if s.config.Host != "" {
		httpReq.Header.Set("X-RapidAPI-Host", s.config.Host)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.Warn("judge0 request failed", zap.Error(err))
		return nil, fmt.Errorf("%v: %w", err, util.ErrJudgeUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.log.Warn("judge0 returned error", zap.Int("status", resp.StatusCode), zap.ByteString("body", msg))
		return nil, fmt.Errorf("judge0 status %d: %w", resp.StatusCode, util.ErrJudgeUnavailable)
	}

	var result PracticeRunResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode judge0 response: %v: %w", err, util.ErrJudgeUnavailable)
	}
	return &result, nil
}
