package bootstrap

import (
	"log/slog"

	"github.com/harukigames/gamecore/internal/config"
	"github.com/harukigames/gamecore/internal/logger"
)

// SetupLogger installs the default slog logger from application config and
// emits the startup banner.
func SetupLogger(cfg *config.Config) {
	logger.Init(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		false,
	))

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStartingServer,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"port", cfg.Port)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"content_dir", cfg.ContentDir,
		"skill_points_per_level", cfg.SkillPointsPerLevel)
}
