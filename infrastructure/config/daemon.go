package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/halsimplicity/halsimplicity/domain/signer"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	// DefaultListenPort is the port the daemon listens on when none is given.
	DefaultListenPort = "28579"

	defaultListenHost     = "127.0.0.1"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "halsimplicity.log"
	defaultErrLogFilename = "halsimplicity_err.log"
	defaultConfigFilename = "halsimplicity.conf"
)

// DefaultAppDir is the directory holding the default config and log files.
var DefaultAppDir = defaultAppDir()

func defaultAppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".halsimplicity"
	}
	return filepath.Join(home, ".halsimplicity")
}

// DaemonFlags defines the configuration options of the JSON-RPC daemon.
type DaemonFlags struct {
	Listen     string `long:"listen" short:"l" description:"Listen for JSON-RPC connections on address:port"`
	ConfigFile string `long:"configfile" short:"C" description:"Path to configuration file"`
	LogDir     string `long:"logdir" description:"Directory to log output"`
	LogLevel   string `long:"loglevel" short:"d" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	Signer     string `long:"signer" description:"Signature oracle {secp256k1, btcec}"`
	Profile    string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65535"`
	NetworkFlags
}

// LogFile returns the path of the main log file.
func (cfg *DaemonFlags) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the error log file.
func (cfg *DaemonFlags) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// DefaultDaemonFlags returns the daemon configuration before any command
// line or file options are applied.
func DefaultDaemonFlags() *DaemonFlags {
	return &DaemonFlags{
		Listen:     net.JoinHostPort(defaultListenHost, DefaultListenPort),
		ConfigFile: filepath.Join(DefaultAppDir, defaultConfigFilename),
		LogDir:     filepath.Join(DefaultAppDir, defaultLogDirname),
		LogLevel:   defaultLogLevel,
		Signer:     signer.DefaultOracleName,
	}
}

// ApplyConfigFile loads options from the INI config file named by
// cfg.ConfigFile and re-applies args on top of them, so that command line
// options take precedence. A missing config file is not an error.
func (cfg *DaemonFlags) ApplyConfigFile(args []string) error {
	parser := flags.NewParser(cfg, flags.IgnoreUnknown)
	err := flags.NewIniParser(parser).ParseFile(cfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return errors.Wrapf(err, "error parsing config file %s", cfg.ConfigFile)
		}
	}

	_, err = parser.ParseArgs(args)
	if err != nil {
		return err
	}
	return cfg.Validate(parser)
}

// Validate normalizes the listen address, resolves the network and checks
// the signer name and the profile port.
func (cfg *DaemonFlags) Validate(parser *flags.Parser) error {
	cfg.Listen = NormalizeAddress(cfg.Listen, DefaultListenPort)
	if _, err := signer.ByName(cfg.Signer); err != nil {
		return err
	}
	if cfg.Profile != "" {
		profilePort, err := strconv.Atoi(cfg.Profile)
		if err != nil || profilePort < 1024 || profilePort > 65535 {
			return errors.Errorf("the profile port must be between 1024 and 65535")
		}
	}
	return cfg.ResolveNetwork(parser)
}

// NormalizeAddress returns addr with the passed default port appended if
// there is not already a port specified.
func NormalizeAddress(addr, defaultPort string) string {
	_, _, err := net.SplitHostPort(addr)
	if err != nil {
		return net.JoinHostPort(addr, defaultPort)
	}
	return addr
}
