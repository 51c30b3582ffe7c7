package cron

import (
	"Creatr/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine              *cron.Cron
	publishSpec         string
	scheduledPublishJob *job.ScheduledPublishJob
}

func NewCronManager(publishSpec string, scheduledPublishJob *job.ScheduledPublishJob) *Manager {
	return &Manager{
		engine:              cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		publishSpec:         publishSpec,
		scheduledPublishJob: scheduledPublishJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.publishSpec, s.scheduledPublishJob); err != nil {
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
