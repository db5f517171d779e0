package cron

import (
	"Zheye/internal/api/config"
	"Zheye/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	cfg             config.CronConfig
	questionViewJob *job.QuestionViewJob
	recommendJob    *job.RecommendJob
}

func NewCronManager(cfg config.CronConfig, questionViewJob *job.QuestionViewJob, recommendJob *job.RecommendJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		cfg:             cfg,
		questionViewJob: questionViewJob,
		recommendJob:    recommendJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.cfg.QuestionView, s.questionViewJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.cfg.Recommend, s.recommendJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
