package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/logging"
	"github.com/arthur-debert/qcl/pkg/paths"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QCL_"

// Interface modes
const (
	ModeCLI = "cli"
	ModeTUI = "tui"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config holds the resolved qcl settings.
type Config struct {
	Shell   string   `koanf:"shell"`
	Mode    string   `koanf:"mode"`
	Files   []string `koanf:"files"`
	Display Display  `koanf:"display"`
	Log     Log      `koanf:"log"`
}

// Display controls how choices are shown.
type Display struct {
	Separator string `koanf:"separator"`
	Height    int    `koanf:"height"`
}

// Log controls the log file.
type Log struct {
	File string `koanf:"file"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// DefaultContent returns the embedded default configuration.
func DefaultContent() string {
	return string(defaultConfig)
}

// Load reads the configuration. configPath may be empty or point to a missing
// file; overrides are dotted keys such as "display.height" and win over
// every other source.
func Load(configPath string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
					WithDetail(errors.DetailPath, configPath)
			}
			logger.Debug().Str("path", configPath).Msg("Loaded user config")
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcess(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads the configuration from the standard config file.
func LoadDefault(p paths.Paths, overrides map[string]interface{}) (*Config, error) {
	return Load(p.ConfigFilePath(), overrides)
}

func postProcess(cfg *Config) error {
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if cfg.Mode == "" {
		cfg.Mode = ModeCLI
	}
	if cfg.Mode != ModeCLI && cfg.Mode != ModeTUI {
		return errors.Newf(errors.ErrConfigValid, "mode must be %q or %q, got %q", ModeCLI, ModeTUI, cfg.Mode)
	}

	if strings.TrimSpace(cfg.Shell) == "" {
		cfg.Shell = "sh"
	}
	if cfg.Display.Height < 0 {
		return errors.Newf(errors.ErrConfigValid, "display.height must not be negative, got %d", cfg.Display.Height)
	}

	files := cfg.Files[:0]
	for _, f := range cfg.Files {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, paths.ExpandHome(f))
		}
	}
	cfg.Files = files

	if cfg.Log.File != "" {
		cfg.Log.File = paths.ExpandHome(cfg.Log.File)
	}
	return nil
}
