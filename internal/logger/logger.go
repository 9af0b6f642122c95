package logger

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level       string
	Development bool
	// File enables an additional rotating log file when set.
	File string
}

type Logger struct {
	l *zap.SugaredLogger
}

func New(conf Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(conf.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", conf.Level, err)
	}

	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(encoderConf)
	if conf.Development {
		encoderConf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConf)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if conf.File != "" {
		//nolint:exhaustruct,gomnd
		rotating := &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotating),
			level,
		))
	}

	return &Logger{l: zap.New(zapcore.NewTee(cores...)).Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{l: zap.NewNop().Sugar()}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Errorf(format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Infof(format, v...)
}

func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{l: l.l.With(keysAndValues...)}
}

// Std adapts the logger for APIs that want a *log.Logger, such as http.Server.
func (l *Logger) Std() *log.Logger {
	return zap.NewStdLog(l.l.Desugar())
}

func (l *Logger) Sync() error {
	return l.l.Sync() //nolint:wrapcheck
}
