package logger

import (
	"io"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"NodeDashboard/config"
)

var (
	// Logger 在 Init 之前是 no-op，库代码和测试可以直接使用
	Logger   = zap.NewNop()
	logClose io.Closer
)

var hlogLevels = map[zapcore.Level]hlog.Level{
	zapcore.DebugLevel: hlog.LevelDebug,
	zapcore.InfoLevel:  hlog.LevelInfo,
	zapcore.WarnLevel:  hlog.LevelWarn,
	zapcore.ErrorLevel: hlog.LevelError,
}

// Init 初始化全局 logger，component 区分 server / worker / scheduler / gen
// 每条日志都带 service、component、version 三个字段
func Init(component string) {
	cfg := config.Cfg
	level := zap.NewAtomicLevelAt(levelOf(cfg.LoggerLevel))

	ws, closer, openErr := openOutput(cfg.LoggerOutputPath)
	logClose = closer

	hzLogger := hertzzap.NewLogger(
		hertzzap.WithCoreEnc(newEncoder(useText(cfg))),
		hertzzap.WithCoreWs(ws),
		hertzzap.WithCoreLevel(level),
		hertzzap.WithZapOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
			zap.Fields(baseFields(cfg, component)...),
		),
	)
	hlog.SetLogger(hzLogger)
	hlog.SetLevel(hlogLevel(level.Level()))

	Logger = hzLogger.Logger()
	if openErr != nil {
		Logger.Warn("Failed to open log file, writing to stdout",
			zap.String("path", cfg.LoggerOutputPath),
			zap.Error(openErr),
		)
	}
	Logger.Info("Logger initialized",
		zap.Stringer("level", level.Level()),
		zap.String("format", cfg.LoggerFormat),
		zap.String("environment", cfg.Environment),
	)
}

// ForRun 带渲染 ID 和触发方式的子 logger
func ForRun(runID int64, trigger string) *zap.Logger {
	return Logger.With(zap.Int64("run_id", runID), zap.String("trigger", trigger))
}

func Sync() {
	_ = Logger.Sync()

	if logClose != nil {
		_ = logClose.Close()
	}
}

func baseFields(cfg config.Config, component string) []zap.Field {
	return []zap.Field{
		zap.String("service", cfg.ServiceName),
		zap.String("component", component),
		zap.String("version", cfg.ServiceVersion),
	}
}

// useText 开发环境或显式配置 text 时输出彩色文本
func useText(cfg config.Config) bool {
	return cfg.IsDevelopment() || strings.EqualFold(cfg.LoggerFormat, "text")
}

func newEncoder(text bool) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if text {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// openOutput 文件打不开时退回 stdout，并把错误交给调用方记录
func openOutput(path string) (zapcore.WriteSyncer, io.Closer, error) {
	if path == "" || strings.EqualFold(path, "stdout") {
		return zapcore.AddSync(os.Stdout), nil, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zapcore.AddSync(os.Stdout), nil, err
	}
	return zapcore.AddSync(file), file, nil
}

// levelOf 大小写不敏感，无法识别时按 INFO
func levelOf(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}

func hlogLevel(level zapcore.Level) hlog.Level {
	if l, ok := hlogLevels[level]; ok {
		return l
	}
	return hlog.LevelInfo
}
