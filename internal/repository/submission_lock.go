package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript 只删除自己持有的锁，超时后被他人重新获取的锁保持不动
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionLock 在评分期间占住 (学员, 学习项)，让重叠的重复请求尽早失败。
// 最终裁决仍是 results 表的唯一索引
type SubmissionLock struct {
	Redis *redis.Client
}

func NewSubmissionLock(rdb *redis.Client) *SubmissionLock {
	return &SubmissionLock{Redis: rdb}
}

func submissionLockKey(learnerID, itemID string) string {
	return fmt.Sprintf("submission:lock:%s:%s", learnerID, itemID)
}

// Acquire 成功时返回持有者令牌；ok 为 false 表示已有同一学员同一学习项的提交在处理中
func (l *SubmissionLock) Acquire(ctx context.Context, learnerID, itemID string, ttl time.Duration) (token string, ok bool, err error) {
	token = uuid.New().String()
	ok, err = l.Redis.SetNX(ctx, submissionLockKey(learnerID, itemID), token, ttl).Result()
	if err != nil || !ok {
		return "", ok, err
	}
	return token, true, nil
}

// Release 仅当锁仍由 token 持有时删除，返回是否真正删除
func (l *SubmissionLock) Release(ctx context.Context, learnerID, itemID, token string) (bool, error) {
	n, err := releaseScript.Run(ctx, l.Redis, []string{submissionLockKey(learnerID, itemID)}, token).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
