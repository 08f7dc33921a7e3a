package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/fitnease/tracking/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const sentryFlushTimeout = 2 * time.Second

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned func flushes pending
// sentry events and closes the log file, call it once on shutdown.
func Setup(params LoggerSetupParams) func() {
	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetFormatter(formatter(params.LogFormatJSON))

	sentryOn := params.SentryEnabled && setupSentry(params)

	out, logFile := output(params)
	logrus.SetOutput(out)

	return func() {
		if sentryOn {
			sentry.Flush(sentryFlushTimeout)
		}
		if logFile != nil {
			if err := logFile.Close(); err != nil {
				logrus.SetOutput(os.Stderr)
				logrus.Errorf("close log file: %s", err)
			}
		}
	}
}

func formatter(asJSON bool) logrus.Formatter {
	if asJSON {
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func setupSentry(params LoggerSetupParams) bool {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              params.SentryDSN,
		Environment:      params.Environment,
		ServerName:       params.SentryServerName,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return false
	}

	logrus.AddHook(NewSentryHook(
		[]logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel},
		sentry.CurrentHub(),
	))
	logrus.Infoln("sentry set up")
	return true
}

// output picks the log destination: stdout alone, a rotated file, or both.
func output(params LoggerSetupParams) (io.Writer, io.Closer) {
	if params.LogFileName == "" {
		return os.Stdout, nil
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    50, // megabytes
		MaxBackups: 30,
		MaxAge:     90, // days
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewTeeWriter(os.Stdout, rotated), rotated
	}
	return rotated, rotated
}

// GetLevel parses a level name, falling back to info for anything unknown.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
