package core

import (
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/jcelliott/lumber"
)

var log = lumber.NewConsoleLogger(lumber.DEBUG)

func init() {
	log.TimeFormat("2006-01-02 15:04:05.000")
	log.Prefix("Discordbot")
}

// SetLogLevel takes one of the lumber level constants.
func SetLogLevel(lvl int) {
	log.Level(lvl)
}

func IsLogDebug() bool {
	return log.IsDebug()
}

func IsLogInfo() bool {
	return log.IsInfo()
}

type logSink struct {
	enabled func() bool
	write   func(format string, v ...interface{})
}

var (
	debugSink = logSink{log.IsDebug, log.Debug}
	infoSink  = logSink{log.IsInfo, log.Info}
	warnSink  = logSink{log.IsWarn, log.Warn}
	errorSink = logSink{log.IsError, log.Error}
	fatalSink = logSink{func() bool { return true }, log.Fatal}
)

func LogDebugF(format string, v ...interface{}) { debugSink.printf(format, v...) }
func LogInfoF(format string, v ...interface{})  { infoSink.printf(format, v...) }
func LogWarnF(format string, v ...interface{})  { warnSink.printf(format, v...) }
func LogErrorF(format string, v ...interface{}) { errorSink.printf(format, v...) }

func LogDebug(v ...interface{}) { debugSink.print(v...) }
func LogInfo(v ...interface{})  { infoSink.print(v...) }
func LogWarn(v ...interface{})  { warnSink.print(v...) }
func LogError(v ...interface{}) { errorSink.print(v...) }

// LogFatalF logs and exits the process with status 2.
func LogFatalF(format string, v ...interface{}) {
	fatalSink.printf(format, v...)
	os.Exit(2)
}

func LogFatal(v ...interface{}) {
	fatalSink.print(v...)
	os.Exit(2)
}

func (s logSink) printf(format string, v ...interface{}) {
	if s.enabled() {
		s.emit(fmt.Sprintf(format, v...))
	}
}

func (s logSink) print(v ...interface{}) {
	if s.enabled() {
		s.emit(fmt.Sprint(v...))
	}
}

// emit is always three frames below the public Log* call.
func (s logSink) emit(msg string) {
	_, fn, line, _ := runtime.Caller(3)
	s.write("%s:%d | %s", path.Base(fn), line, msg)
}
