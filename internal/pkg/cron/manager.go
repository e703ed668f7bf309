package cron

import (
	"BiuBiuStar/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	eventStatusJob *job.EventStatusJob
}

func NewCronManager(eventStatusJob *job.EventStatusJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		eventStatusJob: eventStatusJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("0 * * * * *", s.eventStatusJob); err != nil {
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
