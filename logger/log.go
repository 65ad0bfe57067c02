package logger

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
)

const debugEnv = "FLEXMAP_DEBUG"

var logger *zap.SugaredLogger

func init() {
	Init(false)
}

// Init rebuilds the global logger. Debug output is also enabled by the FLEXMAP_DEBUG environment variable.
func Init(debug bool) {
	if !debug {
		envDebug := os.Getenv(debugEnv)
		if len(envDebug) > 0 && !(strings.ToLower(envDebug) == "disable" || strings.ToLower(envDebug) == "false") {
			debug = true
		}
	}

	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	l, err := config.Build()
	if err != nil {
		log.Fatal(err)
	}

	zap.ReplaceGlobals(l)
	logger = zap.S()
}

// Get returns the global sugared logger.
func Get() *zap.SugaredLogger {
	return logger
}

func Debugw(msg string, keysAndValues ...interface{}) {
	logger.Debugw(msg, keysAndValues...)
}

func Debugf(template string, args ...interface{}) {
	logger.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	logger.Infof(template, args...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	logger.Warnw(msg, keysAndValues...)
}

func Sync() {
	_ = logger.Sync()
}
