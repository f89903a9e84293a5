package app

import "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/logger"

// ConfigureLogging initialises the global zap logger from server settings.
func ConfigureLogging(cfg ServerConfig) error {
	return logger.Init(cfg.LogLevel, cfg.Development)
}
