package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vidprocc/vidpro/pkg/config"
)

// Logger 封装logrus，统一日志出口
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

// NewLogger 根据配置创建日志器
func NewLogger(cfg *config.Config) *Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	}

	logger := &Logger{entry: l}

	switch cfg.Log.Output {
	case "file":
		if f, ferr := os.OpenFile(cfg.Log.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
			logger.file = f
			l.SetOutput(f)
		} else {
			l.SetOutput(os.Stdout)
			l.Warnf("failed to open log file %s, falling back to stdout: %v", cfg.Log.Filename, ferr)
		}
	case "both":
		if f, ferr := os.OpenFile(cfg.Log.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
			logger.file = f
			l.SetOutput(io.MultiWriter(os.Stdout, f))
		} else {
			l.SetOutput(os.Stdout)
		}
	default:
		l.SetOutput(os.Stdout)
	}

	return logger
}

// Close 关闭日志文件句柄
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(logrus.DebugLevel, msg, fields...)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(logrus.InfoLevel, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(logrus.WarnLevel, msg, fields...)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(logrus.ErrorLevel, msg, fields...)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *Logger) Fatal(msg string)                          { l.entry.Fatal(msg) }

func (l *Logger) log(level logrus.Level, msg string, fields ...map[string]interface{}) {
	if len(fields) > 0 && fields[0] != nil {
		l.entry.WithFields(logrus.Fields(fields[0])).Log(level, msg)
		return
	}
	l.entry.Log(level, msg)
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// SetGlobalLogger 设置全局日志器（启动阶段调用一次）
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

func global() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}
	// 未初始化时兜底到stderr，避免启动早期丢日志
	fallback := logrus.New()
	fallback.SetOutput(os.Stderr)
	return &Logger{entry: fallback}
}

// 包级便捷函数，组件内直接使用 logger.Infof(...) 风格

func Debug(msg string, fields ...map[string]interface{}) { global().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]interface{})  { global().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]interface{})  { global().Warn(msg, fields...) }

func Debugf(format string, args ...interface{}) { global().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { global().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { global().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { global().Errorf(format, args...) }

// Fatal 记录日志后退出
func Fatal(msg string) { global().Fatal(msg) }

// Errorw 带error的便捷错误日志
func Errorw(msg string, err error) {
	global().Errorf("%s error=%v", msg, err)
}
