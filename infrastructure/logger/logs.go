package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggersMutex sync.Mutex
	subsystemLoggers      = make(map[string]*Logger)
)

// RegisterSubSystem returns the logger for the given subsystem tag, creating
// it on first use.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// InitLog attaches a log file and an error log file to the backend log and
// starts it. Either path may be empty to skip that file.
func InitLog(logFile, errLogFile string) {
	if logFile != "" {
		err := BackendLog.AddLogFile(logFile, LevelTrace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
			os.Exit(1)
		}
	}
	if errLogFile != "" {
		err := BackendLog.AddLogFile(errLogFile, LevelWarn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
			os.Exit(1)
		}
	}
	err := BackendLog.AddStderr(LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stderr to the logger: %s", err)
		os.Exit(1)
	}

	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// SetLogLevel sets the logging level for the provided subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func SetLogLevels(logLevel string) {
	subsystemLoggersMutex.Lock()
	ids := make([]string, 0, len(subsystemLoggers))
	for id := range subsystemLoggers {
		ids = append(ids, id)
	}
	subsystemLoggersMutex.Unlock()

	for _, id := range ids {
		SetLogLevel(id, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the registered subsystems.
func SupportedSubsystems() []string {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetLogLevels parses a debug level spec, either a single level
// ("debug") or a comma separated list of subsystem=level pairs
// ("RPCS=debug,SIMP=trace"), and applies it.
func ParseAndSetLogLevels(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if _, ok := LevelFromString(debugLevel); !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		SetLogLevels(debugLevel)
		return nil
	}

	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]",
				logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		subsystemLoggersMutex.Lock()
		_, exists := subsystemLoggers[subsysID]
		subsystemLoggersMutex.Unlock()
		if !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- supported subsystems %v",
				subsysID, SupportedSubsystems())
		}
		if _, ok := LevelFromString(logLevel); !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
		}
		SetLogLevel(subsysID, logLevel)
	}
	return nil
}
