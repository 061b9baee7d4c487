package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Usable before InitLoggers runs; until then everything goes to stdout only.
var (
	InfoLogger  = newLogger(logrus.InfoLevel)
	WarnLogger  = newLogger(logrus.WarnLevel)
	ErrorLogger = newLogger(logrus.ErrorLevel)
)

// InitLoggers sets up the application loggers. Each level writes to its own
// rotated file under logs/ and mirrors to stdout.
func InitLoggers() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	attachRotation(InfoLogger, filepath.Join(logDir, "info.log"))
	attachRotation(WarnLogger, filepath.Join(logDir, "warn.log"))
	attachRotation(ErrorLogger, filepath.Join(logDir, "error.log"))
}

func newLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetOutput(os.Stdout)

	return l
}

func attachRotation(l *logrus.Logger, path string) {
	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotated))
}
