package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It starts as a no-op so packages can log
// before Init runs (tests, early command setup).
var Logger = zap.NewNop()

// Options controls where log output goes
type Options struct {
	File  string // rotating log file; empty disables the file sink
	Debug bool   // also write human-readable output to stderr
}

// Init builds the global logger
func Init(opts Options) error {
	var cores []zapcore.Core

	if opts.File != "" {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, zap.InfoLevel))
	}

	if opts.Debug {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), zap.DebugLevel))
	}

	if len(cores) == 0 {
		Logger = zap.NewNop()
		return nil
	}

	Logger = zap.New(zapcore.NewTee(cores...))
	return nil
}

// With attaches fields to every subsequent log line
func With(fields ...zap.Field) {
	Logger = Logger.With(fields...)
}

func Sync() {
	_ = Logger.Sync()
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	Logger.Error(msg, fields...)
}
