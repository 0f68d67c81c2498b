package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init 初始化全局日志（level: debug/info/warn/error）
func Init(level string) error {
    lv := zapcore.InfoLevel
    if err := lv.UnmarshalText([]byte(level)); err != nil && level != "" {
        return err
    }
    cfg := zap.NewProductionConfig()
    cfg.Level = zap.NewAtomicLevelAt(lv)
    cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    l, err := cfg.Build(zap.AddCallerSkip(1))
    if err != nil {
        return err
    }
    log = l
    return nil
}

// L 返回底层 zap.Logger
func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Sync 刷新缓冲日志
func Sync() { _ = log.Sync() }
