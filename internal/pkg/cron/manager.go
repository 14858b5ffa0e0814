package cron

import (
	log "log/slog"

	"fluxo/internal/job"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	orphanCleanJob *job.OrphanCleanJob
}

func NewCronManager(orphanCleanJob *job.OrphanCleanJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		orphanCleanJob: orphanCleanJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.orphanCleanJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
