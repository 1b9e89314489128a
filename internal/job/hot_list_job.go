package job

import (
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/logger"
	"Pressroom/internal/pkg/redis"
	"Pressroom/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const hotListWarmTimeout = 2 * time.Minute

// HotListJob 定时预热热门榜单缓存，多实例部署时靠分布式锁保证只有一个实例执行
type HotListJob struct {
	hotListSvc service.HotListService

	tryLock func(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	unlock  func(ctx context.Context, key string, value interface{})
}

func NewHotListJob(hotListSvc service.HotListService) *HotListJob {
	return &HotListJob{
		hotListSvc: hotListSvc,
		tryLock:    redis.TryLock,
		unlock:     redis.UnLock,
	}
}

func (s *HotListJob) Run() {
	traceID := "job-hot-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), traceID), hotListWarmTimeout)
	defer cancel()

	lockValue := uuid.NewString()
	ok, err := s.tryLock(ctx, consts.HotListWarmLock, lockValue, hotListWarmTimeout, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire hot list lock error", "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "hot list warm skipped, another instance holds the lock")
		return
	}
	defer s.unlock(context.WithoutCancel(ctx), consts.HotListWarmLock, lockValue)

	start := time.Now()
	if err := s.hotListSvc.Warm(ctx); err != nil {
		log.ErrorContext(ctx, "warm hot list error", "err", err)
		return
	}
	log.InfoContext(ctx, "warm hot list success", "cost", time.Since(start))
}
