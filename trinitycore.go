// Package trinitycore carries the shared binary codec for the game
// wire protocol: the packet byte buffer in the bytebuffer subpackage,
// the gated network trace logging it reports through, and size-class
// instrumentation for the buffer growth tiers.
//
// Message definitions, dispatch, sockets and encryption live with their
// owning subsystems; this module only moves bytes.
package trinitycore

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/CooperArea/TrinityCore/bytebuffer"
)

// Version is the last tagged version of the package
const Version = "1.0.0"

var logging bool
var logWriters = []zapcore.WriteSyncer{os.Stdout}
var logger *zap.Logger
var zapEncoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
}

func initLogging() {
	logging = false
	initializeLogger()
}

// EnableLogging enables network trace logging if true is passed
// and disables it if false is passed. While disabled, buffer dumps
// short-circuit before doing any formatting work.
func EnableLogging(enable bool) {
	logging = enable
}

// AddLogWriter adds a new io.Writer as a target for writing
// logs.
func AddLogWriter(writer io.Writer) {
	logWriters = append(logWriters, zapcore.AddSync(writer))
	initializeLogger()
}

// SetLogWriters will set the passed io.Writer instances as targets for
// writing logs.
func SetLogWriters(writers ...io.Writer) {
	writesyncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		writesyncers = append(writesyncers, zapcore.AddSync(w))
	}

	logWriters = writesyncers
	initializeLogger()
}

func initializeLogger() {
	ws := zap.CombineWriteSyncers(logWriters...)
	logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zapEncoderConfig),
		ws, zapcore.DebugLevel,
	))
}

// networkTrace adapts the package logger to the trace capability the
// buffer queries before formatting a dump
type networkTrace struct{}

func (networkTrace) Enabled() bool { return logging }

func (networkTrace) Trace(msg string) {
	logger.Debug(msg, zap.String("module", "network"))
}

// init maintains a central location of all things that happen when the
// package is initialized instead of everything being scattered in
// multiple source files
func init() {
	initLogging()
	initConfig()
	bytebuffer.SetTraceSink(networkTrace{})
}
