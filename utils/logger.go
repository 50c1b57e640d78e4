package utils

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

var logger *logrus.Logger
var once sync.Once

// GetLogger returns the standard logrus logger set up with the easy formatter,
// so packages logging through the logrus globals share its output
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = createLogger()
	})
	return logger
}

// SetLogLevel parses level and applies it to the logger
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "parsing log level %q", level)
	}
	GetLogger().SetLevel(lvl)
	return nil
}

func createLogger() *logrus.Logger {
	l := logrus.StandardLogger()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&easy.Formatter{
		TimestampFormat: "15:04:05",
		LogFormat:       "[%lvl%]: %time% - %msg%\n",
	})
	return l
}
