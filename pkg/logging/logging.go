// Package logging builds the ectologger.Logger used across sprout, backed by zap.
package logging

import (
	"reflect"

	"github.com/Gobusters/ectologger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	AppName string
	Level   string
	Pretty  bool
}

// New returns a logger writing through zap, and a sync func to flush it on exit.
func New(config Config) (ectologger.Logger, func(), error) {
	zapLogger, err := newZap(config)
	if err != nil {
		return nil, nil, err
	}

	sink := func(msg ectologger.EctoLogMessage) {
		level, message := describe(msg)
		if entry := zapLogger.Check(level, message); entry != nil {
			entry.Write(zap.Any("entry", msg))
		}
	}

	return ectologger.NewEctoLogger(sink), func() { _ = zapLogger.Sync() }, nil
}

// Nop returns a logger that discards every message.
func Nop() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newZap(config Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if config.Pretty {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(config.Level))
	zapConfig.DisableStacktrace = true

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	if config.AppName != "" {
		logger = logger.Named(config.AppName)
	}
	return logger, nil
}

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}

// describe pulls the level and message out of a log message when it exposes
// them as string fields; anything else is logged at info.
func describe(msg any) (zapcore.Level, string) {
	level, message := zapcore.InfoLevel, ""

	value := reflect.ValueOf(msg)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return level, message
	}

	if field := value.FieldByName("Level"); field.IsValid() && field.Kind() == reflect.String {
		level = parseLevel(field.String())
	}
	if field := value.FieldByName("Message"); field.IsValid() && field.Kind() == reflect.String {
		message = field.String()
	}
	return level, message
}
