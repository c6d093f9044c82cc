package statusman

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cloudradar-monitoring/toml"
	log "github.com/sirupsen/logrus"
)

const (
	ColorModeAuto   = "auto"
	ColorModeAlways = "always"
	ColorModeNever  = "never"
)

var DefaultCfgPath string
var defaultLogPath string
var defaultOrdersDir string
var defaultOutputDir string

func init() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	switch runtime.GOOS {
	case "windows":
		DefaultCfgPath = filepath.Join(exPath, "./statusman.conf")
		defaultLogPath = filepath.Join(exPath, "./statusman.log")
		defaultOrdersDir = filepath.Join(exPath, "./orders")
		defaultOutputDir = filepath.Join(exPath, "./output")
	case "darwin":
		DefaultCfgPath = os.Getenv("HOME") + "/.statusman/statusman.conf"
		defaultLogPath = os.Getenv("HOME") + "/.statusman/statusman.log"
		defaultOrdersDir = os.Getenv("HOME") + "/.statusman/orders"
		defaultOutputDir = os.Getenv("HOME") + "/.statusman/output"
	default:
		DefaultCfgPath = "/etc/statusman/statusman.conf"
		defaultLogPath = "/var/log/statusman/statusman.log"
		defaultOrdersDir = "/var/lib/statusman/orders"
		defaultOutputDir = "/var/lib/statusman/output"
	}
}

// MinValuableConfig is the minimal valid config the tool can run with. It is
// also what gets written out when the config file does not exist yet.
type MinValuableConfig struct {
	LogLevel  LogLevel `toml:"log_level" comment:"\"debug\", \"info\", \"error\" – set the log level"`
	OrdersDir string   `toml:"orders_dir" comment:"Directory where the measurement subsystem keeps one file per order"`
	OutputDir string   `toml:"output_dir" comment:"Directory where the measurement subsystem persists the last result of each order"`
	ColorMode string   `toml:"color" comment:"\"auto\", \"always\" or \"never\" – colorize the report.\n\"auto\" colorizes only when stdout is an interactive terminal"`
}

type Config struct {
	MinValuableConfig

	LogFile string `toml:"log" commented:"true" comment:"Log file path. Logs always go to stderr as well"`
}

func NewMinimumConfig() *MinValuableConfig {
	mvc := &MinValuableConfig{
		LogLevel:  LogLevelInfo,
		ColorMode: ColorModeAuto,
	}

	mvc.applyEnv()

	if mvc.OrdersDir == "" {
		mvc.OrdersDir = defaultOrdersDir
	}
	if mvc.OutputDir == "" {
		mvc.OutputDir = defaultOutputDir
	}

	return mvc
}

// applyEnv fills empty fields from the environment. Values from a config
// file are applied later on top, so an explicit file value always wins.
func (mvc *MinValuableConfig) applyEnv() {
	if v, isSet := os.LookupEnv("STATUSMAN_ORDERS_DIR"); isSet && mvc.OrdersDir == "" {
		mvc.OrdersDir = v
	}

	if v, isSet := os.LookupEnv("STATUSMAN_OUTPUT_DIR"); isSet && mvc.OutputDir == "" {
		mvc.OutputDir = v
	}
}

func NewConfig() *Config {
	cfg := &Config{
		MinValuableConfig: *(NewMinimumConfig()),
		LogFile:           defaultLogPath,
	}

	return cfg
}

func (cfg *Config) DumpToml() string {
	buff := &bytes.Buffer{}

	err := toml.NewEncoder(buff).Encode(cfg)
	if err != nil {
		log.Errorf("DumpToml error: %s", err.Error())
		return ""
	}

	return buff.String()
}

// TryUpdateConfigFromFile applies the values of the config file on top of
// the current values. The caller gets the os.Stat error back untouched so a
// missing file stays detectable with os.IsNotExist.
func (cfg *Config) TryUpdateConfigFromFile(configFilePath string) error {
	_, err := os.Stat(configFilePath)
	if err != nil {
		return err
	}

	_, err = toml.DecodeFile(configFilePath, cfg)
	if err != nil {
		return err
	}

	return cfg.validate()
}

func GenerateDefaultConfigFile(mvc *MinValuableConfig, configFilePath string) error {
	var err error

	if _, err = os.Stat(configFilePath); err == nil {
		return fmt.Errorf("config already exists at path: %s", configFilePath)
	}

	configDir := filepath.Dir(configFilePath)
	if err = os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create the config dir '%s': %s", configDir, err.Error())
	}

	f, err := os.Create(configFilePath)
	if err != nil {
		return fmt.Errorf("failed to create the default config file '%s': %s", configFilePath, err.Error())
	}
	defer f.Close()

	if err = toml.NewEncoder(f).Encode(mvc); err != nil {
		return err
	}

	return nil
}

// HandleAllConfigSetup prepares config for Statusman with parameters specified in file
// if config file not exists default one created in form of MinValuableConfig
func HandleAllConfigSetup(configFilePath string) (*Config, error) {
	cfg := NewConfig()

	err := cfg.TryUpdateConfigFromFile(configFilePath)
	if os.IsNotExist(err) {
		if err = GenerateDefaultConfigFile(&cfg.MinValuableConfig, configFilePath); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.OrdersDir == "" {
		return newEmptyFieldError("orders_dir")
	}
	if cfg.OutputDir == "" {
		return newEmptyFieldError("output_dir")
	}

	switch cfg.ColorMode {
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
	default:
		return newFieldError("color", fmt.Errorf("unknown mode \"%s\", must be one of \"auto\", \"always\", \"never\"", cfg.ColorMode))
	}

	return nil
}
