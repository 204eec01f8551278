// Package logger builds the zap logger of the command line tool.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Conf holds the logging options.
type Conf struct {
	Level      string `mapstructure:"level"`
	Output     string `mapstructure:"output"`
	Path       string `mapstructure:"path"`
	Filename   string `mapstructure:"filename"`
	RotateSize int    `mapstructure:"rotate_size"` // megabytes
	RotateNum  int    `mapstructure:"rotate_num"`
	KeepDays   int    `mapstructure:"keep_days"`
}

// SetDefaults returns the default options. Logs go to stderr so that query
// answers on stdout stay clean.
func SetDefaults() Conf {
	return Conf{
		Level:      "info",
		Output:     OutputStderr,
		Path:       "./logs",
		Filename:   "prefixidx.log",
		RotateSize: 100,
		RotateNum:  10,
		KeepDays:   7,
	}
}

// Validate checks the options and fills zero rotation settings.
func (c *Conf) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	switch c.Output {
	case OutputStdout, OutputStderr:
	case OutputFile:
		if c.Path == "" || c.Filename == "" {
			return fmt.Errorf("log path and filename are required when output is %q", OutputFile)
		}
		if c.RotateSize <= 0 {
			c.RotateSize = 100
		}
		if c.RotateNum <= 0 {
			c.RotateNum = 10
		}
		if c.KeepDays <= 0 {
			c.KeepDays = 7
		}
	default:
		return fmt.Errorf("unknown log output %q", c.Output)
	}

	return nil
}

// New builds a console logger for the options.
func New(conf Conf) (*zap.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}

	level, _ := zapcore.ParseLevel(conf.Level)

	var ws zapcore.WriteSyncer

	switch conf.Output {
	case OutputStdout:
		ws = zapcore.Lock(os.Stdout)
	case OutputStderr:
		ws = zapcore.Lock(os.Stderr)
	case OutputFile:
		ws = zapcore.AddSync(fileWriter(conf))
	}

	core := zapcore.NewCore(newEncoder(), ws, level)

	return zap.New(core, zap.AddCaller()), nil
}

func fileWriter(conf Conf) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(conf.Path, conf.Filename),
		MaxSize:    conf.RotateSize,
		MaxBackups: conf.RotateNum,
		MaxAge:     conf.KeepDays,
		Compress:   true,
	}
}

func newEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()

	cfg.TimeKey = "time"
	cfg.LevelKey = "level"
	cfg.CallerKey = "caller"
	cfg.MessageKey = "msg"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = timeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	return zapcore.NewConsoleEncoder(cfg)
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}

// Outputs lists the accepted output names.
func Outputs() string {
	return strings.Join([]string{OutputStdout, OutputStderr, OutputFile}, "|")
}
