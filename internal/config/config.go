package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/skelgen/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the generator.
const (
	KeyOutputDir   = "output_dir"
	KeyOnCollision = "on_collision"
	KeyLayoutFile  = "layout_file"
	KeyQuiet       = "quiet"
)

// Settings is the typed view of the keys above.
type Settings struct {
	OutputDir   string
	OnCollision string
	LayoutFile  string
	Quiet       bool
}

func init() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, ".")
	v.SetDefault(KeyOnCollision, "overwrite")
	v.SetDefault(KeyLayoutFile, "")
	v.SetDefault(KeyQuiet, false)
}

// Dir returns the path to the config directory. SKELGEN_HOME overrides the
// default of ~/.skelgen/.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is the normal case.
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Current returns the effective settings after defaults, the config file,
// environment variables, and any bound flags are applied.
func Current() Settings {
	return Settings{
		OutputDir:   viper.GetString(KeyOutputDir),
		OnCollision: viper.GetString(KeyOnCollision),
		LayoutFile:  viper.GetString(KeyLayoutFile),
		Quiet:       viper.GetBool(KeyQuiet),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Reset clears all settings back to defaults. Tests use it to isolate viper's
// global state.
func Reset() {
	viper.Reset()
	setDefaults(viper.GetViper())
}
