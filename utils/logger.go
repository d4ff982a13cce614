package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var appLogger *zap.Logger

// InitLogger builds the process-wide zap logger. Production gets JSON
// output, everything else gets the colored development console encoder.
func InitLogger(environment string) (*zap.Logger, error) {
	var err error
	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		appLogger, err = cfg.Build(zap.Fields(
			zap.String("service", "artisan-registry"),
		))
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		appLogger, err = cfg.Build()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(appLogger)
	return appLogger, nil
}

// Logger returns the global logger instance.
func Logger() *zap.Logger {
	if appLogger == nil {
		appLogger = zap.NewNop()
	}
	return appLogger
}
