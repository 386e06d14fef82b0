package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger. With a file path the log goes to a rotating
// JSON file, which keeps the terminal free for the chat UI; without one it
// falls back to a development console logger on stderr.
func New(filePath string) *zap.Logger {
	if filePath == "" {
		return zap.Must(zap.NewDevelopment())
	}

	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, zap.InfoLevel)
	return zap.New(core)
}

// NewConsole is the plain stderr logger used before the UI takes over the
// terminal, e.g. for startup failures.
func NewConsole() *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stderr), zap.InfoLevel)
	return zap.New(core)
}
