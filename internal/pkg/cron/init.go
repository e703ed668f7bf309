package cron

import log "log/slog"

func InitCron(mgr *Manager) error {
	log.Info("定时任务启动中...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
