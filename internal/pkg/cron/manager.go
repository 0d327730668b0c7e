package cron

import (
	"Bobmap/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine              *cron.Cron
	pollSchedule        string
	notificationPollJob *job.NotificationPollJob
}

func NewCronManager(pollSchedule string, notificationPollJob *job.NotificationPollJob) *Manager {
	return &Manager{
		engine:              cron.New(cron.WithSeconds()),
		pollSchedule:        pollSchedule,
		notificationPollJob: notificationPollJob,
	}
}

// Start 注册定时任务并启动引擎
func (s *Manager) Start() error {
	if _, err := s.engine.AddJob(s.pollSchedule, s.notificationPollJob); err != nil {
		return err
	}
	log.Info("Cron 定时任务引擎启动", "schedule", s.pollSchedule)
	s.engine.Start()
	return nil
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
