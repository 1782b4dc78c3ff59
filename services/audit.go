package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Auditor records one human-readable line per mutation.
type Auditor interface {
	Printf(format string, args ...interface{})
}

// AuditLog appends "[<ISO-8601 UTC>] message" lines to a file.
type AuditLog struct {
	logger *zap.Logger
	file   *os.File
}

func NewAuditLog(path string) (*AuditLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	return &AuditLog{
		logger: zap.New(newAuditCore(zapcore.Lock(file))),
		file:   file,
	}, nil
}

func newAuditCore(out zapcore.WriteSyncer) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.UTC().Format("2006-01-02T15:04:05.000Z") + "]")
		},
	})
	return zapcore.NewCore(encoder, out, zapcore.InfoLevel)
}

func (a *AuditLog) Printf(format string, args ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, args...))
}

func (a *AuditLog) Close() error {
	_ = a.logger.Sync()
	return a.file.Close()
}
