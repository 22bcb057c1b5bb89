package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init is called and
// writes text at info level until configured.
var Log = logrus.New()

// Init configures Log from the environment. LOG_LEVEL selects the level
// (default "info") and LOG_FORMAT=json switches to the JSON formatter.
// Call it once from main.
func Init() {
	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence discards all log output. Tests and the simulate command use it to
// keep stdout reserved for results.
func Silence() {
	Log.SetOutput(io.Discard)
}
