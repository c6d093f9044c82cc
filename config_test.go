package statusman

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudradar-monitoring/toml"
	"github.com/stretchr/testify/assert"
)

func TestNewMinimumConfig(t *testing.T) {
	envOrdersDir := "/tmp/statusman-orders"
	envOutputDir := "/tmp/statusman-output"

	t.Setenv("STATUSMAN_ORDERS_DIR", envOrdersDir)
	t.Setenv("STATUSMAN_OUTPUT_DIR", envOutputDir)

	mvc := NewMinimumConfig()

	assert.Equal(t, envOrdersDir, mvc.OrdersDir, "OrdersDir should be set from env")
	assert.Equal(t, envOutputDir, mvc.OutputDir, "OutputDir should be set from env")
	assert.Equal(t, LogLevelInfo, mvc.LogLevel)
	assert.Equal(t, ColorModeAuto, mvc.ColorMode)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, defaultLogPath, cfg.LogFile)
}

func TestNewMinimumConfigDefaults(t *testing.T) {
	mvc := NewMinimumConfig()

	assert.NotEmpty(t, mvc.OrdersDir)
	assert.NotEmpty(t, mvc.OutputDir)
}

func TestTryUpdateConfigFromFile(t *testing.T) {
	cfg := NewConfig()

	const sampleConfig = `
log_level = "debug"
orders_dir = "/nonstandard/orders"
color = "never"
`

	tmpFile := filepath.Join(t.TempDir(), "statusman.conf")
	err := os.WriteFile(tmpFile, []byte(sampleConfig), 0755)
	assert.Nil(t, err)

	err = cfg.TryUpdateConfigFromFile(tmpFile)
	assert.Nil(t, err)

	assert.Equal(t, LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, "/nonstandard/orders", cfg.OrdersDir)
	assert.Equal(t, ColorModeNever, cfg.ColorMode)

	// make sure default values are propagated
	assert.Equal(t, defaultOutputDir, cfg.OutputDir)
}

func TestTryUpdateConfigFromFileWinsOverEnv(t *testing.T) {
	t.Setenv("STATUSMAN_ORDERS_DIR", "/env/orders")
	t.Setenv("STATUSMAN_OUTPUT_DIR", "/env/output")

	cfg := NewConfig()

	const sampleConfig = `
orders_dir = "/spool/orders"
`

	tmpFile := filepath.Join(t.TempDir(), "statusman.conf")
	err := os.WriteFile(tmpFile, []byte(sampleConfig), 0755)
	assert.Nil(t, err)

	err = cfg.TryUpdateConfigFromFile(tmpFile)
	assert.Nil(t, err)

	// an explicit file value beats the env override, the env override beats
	// the built-in default
	assert.Equal(t, "/spool/orders", cfg.OrdersDir)
	assert.Equal(t, "/env/output", cfg.OutputDir)
}

func TestTryUpdateConfigFromFileMissing(t *testing.T) {
	cfg := NewConfig()

	err := cfg.TryUpdateConfigFromFile(filepath.Join(t.TempDir(), "statusman.conf"))

	assert.True(t, os.IsNotExist(err))
}

func TestTryUpdateConfigFromFileUnknownColorMode(t *testing.T) {
	cfg := NewConfig()

	const sampleConfig = `
color = "sometimes"
`

	tmpFile := filepath.Join(t.TempDir(), "statusman.conf")
	err := os.WriteFile(tmpFile, []byte(sampleConfig), 0755)
	assert.Nil(t, err)

	err = cfg.TryUpdateConfigFromFile(tmpFile)
	assert.Error(t, err)
}

func TestHandleAllConfigSetup(t *testing.T) {
	t.Run("config-file-does-exist", func(t *testing.T) {
		const sampleConfig = `
log_level = "info"
orders_dir = "/spool/orders"
output_dir = "/spool/output"
color = "always"
`

		tmpFile := filepath.Join(t.TempDir(), "statusman.conf")
		err := os.WriteFile(tmpFile, []byte(sampleConfig), 0755)
		assert.Nil(t, err)

		config, err := HandleAllConfigSetup(tmpFile)
		assert.Nil(t, err)

		assert.Equal(t, LogLevelInfo, config.LogLevel)
		assert.Equal(t, "/spool/orders", config.OrdersDir)
		assert.Equal(t, "/spool/output", config.OutputDir)
		assert.Equal(t, ColorModeAlways, config.ColorMode)
	})

	t.Run("config-file-does-not-exist", func(t *testing.T) {
		configFilePath := filepath.Join(t.TempDir(), "statusman.conf")

		_, err := HandleAllConfigSetup(configFilePath)
		assert.Nil(t, err)

		_, err = os.Stat(configFilePath)
		assert.Nil(t, err)

		mvc := NewMinimumConfig()
		loadedMVC := &MinValuableConfig{}
		_, err = toml.DecodeFile(configFilePath, loadedMVC)
		assert.Nil(t, err)

		if !assert.ObjectsAreEqual(*mvc, *loadedMVC) {
			t.Errorf("expected %+v, got %+v", *mvc, *loadedMVC)
		}
	})
}

func TestGenerateDefaultConfigFileRefusesExisting(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "statusman.conf")
	err := os.WriteFile(tmpFile, []byte("log_level = \"debug\"\n"), 0644)
	assert.Nil(t, err)

	err = GenerateDefaultConfigFile(NewMinimumConfig(), tmpFile)
	assert.Error(t, err)

	// the existing file stays untouched
	data, readErr := os.ReadFile(tmpFile)
	assert.Nil(t, readErr)
	assert.Equal(t, "log_level = \"debug\"\n", string(data))
}

func TestDumpToml(t *testing.T) {
	cfg := NewConfig()
	cfg.OrdersDir = "/spool/orders"

	dump := cfg.DumpToml()

	assert.Contains(t, dump, `orders_dir = "/spool/orders"`)
	assert.Contains(t, dump, `color = "auto"`)
}
