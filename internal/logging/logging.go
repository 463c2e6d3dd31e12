package logging

import (
	"GasEmissions/internal/config"

	"github.com/sirupsen/logrus"
)

// New 按配置创建 logrus 日志器，级别非法时回退到 info
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if err != nil && cfg.Level != "" {
		logger.Warnf("未知日志级别 %q，使用 info", cfg.Level)
	}
	return logger
}
