package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// New создает логгер сервиса: JSON для сборщиков логов, text для локального запуска
func New(logLevel, format string) *logrus.Logger {
	return newLogger(logLevel, format, os.Stdout)
}

func newLogger(logLevel, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // некорректный уровень не роняет сервис
	}
	log.SetLevel(level)
	return log
}
