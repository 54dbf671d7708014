package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide logger. Production config (JSON, ISO8601
// timestamps) unless APP_ENV is dev, in which case the console encoder
// is friendlier.
func New(env, service string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return log.With(zap.String("service", service)), nil
}
