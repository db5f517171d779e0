package job

import (
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/logger"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const recommendLockExpiration = 5 * time.Minute

// RecommendJob 定时重算推荐问题
type RecommendJob struct {
	recommendSvc service.RecommendService
}

func NewRecommendJob(recommendSvc service.RecommendService) *RecommendJob {
	return &RecommendJob{recommendSvc: recommendSvc}
}

func (s *RecommendJob) Run() {
	traceID := "job-recommend-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	ok, err := redis.TryLock(ctx, consts.RecommendLock, traceID, recommendLockExpiration, 1)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.RecommendLock, traceID)

	start := time.Now()
	if err = s.recommendSvc.Refresh(ctx); err != nil {
		log.ErrorContext(ctx, "refresh recommend error", "err", err)
		return
	}
	log.InfoContext(ctx, "refresh recommend success", "cost", time.Since(start).String())
}
