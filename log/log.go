package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func InitLog(logPath, level string) error {
	if logPath == "" {
		logPath = "./tmp_log.log"
	}

	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	file, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("open log file %s is err: %w", logPath, err)
	}
	mw := io.MultiWriter(os.Stdout, file)
	logrus.SetOutput(mw)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
