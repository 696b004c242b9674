package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/qcl/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for qcl
	EnvConfigDir = "QCL_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for qcl
	EnvStateDir = "QCL_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for qcl-specific files
	AppDirName = "qcl"

	// SnippetsFile is the name of the default snippet file
	SnippetsFile = "snippets.yaml"

	// ConfigFile is the name of the application config file
	ConfigFile = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "qcl.log"
)

// Paths provides centralized path management for qcl
type Paths interface {
	ConfigDir() string
	StateDir() string
	DefaultSnippetsPath() string
	ConfigFilePath() string
	LogFilePath() string
}

type paths struct {
	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgState is the XDG state directory
	xdgState string
}

// New creates a new Paths instance, respecting environment overrides.
func New() (Paths, error) {
	p := &paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = ExpandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.xdgConfig, &p.xdgState} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ConfigDir returns the config directory for qcl
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the state directory for qcl
func (p *paths) StateDir() string {
	return p.xdgState
}

// DefaultSnippetsPath returns the path of the snippet file loaded on every run
func (p *paths) DefaultSnippetsPath() string {
	return filepath.Join(p.xdgConfig, SnippetsFile)
}

// ConfigFilePath returns the path of the optional application config file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFile)
}

// LogFilePath returns the default log file location
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
