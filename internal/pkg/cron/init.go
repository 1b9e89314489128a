package cron

import log "log/slog"

// InitCron 注册并启动定时任务，启动时先预热一次热门榜单
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	go mgr.hotListJob.Run()
	mgr.Start()
	return nil
}
