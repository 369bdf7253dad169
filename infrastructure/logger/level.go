package logger

import (
	"strings"
	"time"
)

// Level is the level at which a logger is configured. All messages sent
// to a level which is below the current level are filtered.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelTags = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

var levelsByName = map[string]Level{
	"trace":    LevelTrace,
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warn":     LevelWarn,
	"error":    LevelError,
	"critical": LevelCritical,
	"off":      LevelOff,
}

// LevelFromString accepts a level name ("debug") or its three letter tag
// ("dbg"), in any case. Anything else yields LevelInfo and false.
func LevelFromString(s string) (l Level, ok bool) {
	s = strings.ToLower(s)
	if level, ok := levelsByName[s]; ok {
		return level, true
	}
	for level, tag := range levelTags {
		if s == strings.ToLower(tag) {
			return Level(level), true
		}
	}
	return LevelInfo, false
}

// String returns the tag of the level as printed in log lines.
func (l Level) String() string {
	if l >= LevelOff {
		return levelTags[LevelOff]
	}
	return levelTags[l]
}

// LogAndMeasureExecutionTime logs "<functionName> start" at trace level and
// returns a function that logs the elapsed time at debug level.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Tracef("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}
