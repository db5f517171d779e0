package job

import (
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/logger"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const viewLockExpiration = 50 * time.Second

// QuestionViewJob 把问题浏览数从 Redis 批量写回数据库
type QuestionViewJob struct {
	questionSvc service.QuestionService
}

func NewQuestionViewJob(questionSvc service.QuestionService) *QuestionViewJob {
	return &QuestionViewJob{questionSvc: questionSvc}
}

func (s *QuestionViewJob) Run() {
	traceID := "job-question-view-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)
	s.Sync(ctx)
}

// Sync 处理脏集合，上次中断遗留的 processing 集合优先处理
func (s *QuestionViewJob) Sync(ctx context.Context) {
	token := lockToken(ctx)
	ok, err := redis.TryLock(ctx, consts.QuestionViewLock, token, viewLockExpiration, 1)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.QuestionViewLock, token)

	processingKey := consts.QuestionViewDirtyKey + ":processing"
	leftover, err := redis.Exists(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "check question view processing set error", "err", err)
		return
	}
	if !leftover {
		// 脏集合不存在时 rename 报错，说明没有待处理的数据
		if err = redis.Rename(ctx, consts.QuestionViewDirtyKey, processingKey); err != nil {
			return
		}
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get question view dirty set error", "err", err)
		return
	}
	var total int64
	synced := 0
	for _, member := range members {
		qid, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			// 非法成员丢弃，不影响其余问题
			log.ErrorContext(ctx, "invalid question view member", "member", member, "err", err)
			continue
		}
		synced++
		delta, err := s.questionSvc.SyncViewCount(ctx, qid)
		if err != nil {
			log.ErrorContext(ctx, "sync question view count error", "qid", qid, "err", err)
			// 计数已归还，下次继续处理
			_ = redis.AddToSet(ctx, consts.QuestionViewDirtyKey, qid)
			continue
		}
		total += delta
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete question view processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync question views success",
		"question_count", synced,
		"view_count", total)
}

func lockToken(ctx context.Context) string {
	if id := logger.TraceID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
