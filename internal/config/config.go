// Package config loads the dockctl configuration from a TOML file and
// DOCKCTL_* environment variables.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/go-theft-auto/dockgui"
)

// EnvPrefix prefixes every environment override, e.g. DOCKCTL_STORE or
// DOCKCTL_RUNTIME_SPLITTER_THICKNESS.
const EnvPrefix = "DOCKCTL"

// Store backends.
const (
	StoreDir    = "dir"
	StoreSQLite = "sqlite"
)

// Config is the dockctl configuration.
type Config struct {
	// Store selects where named layouts live: "dir" or "sqlite".
	Store string `mapstructure:"store" toml:"store" json:"store" jsonschema:"enum=dir,enum=sqlite,default=dir"`
	// LayoutDir holds one .ini file per layout when Store is "dir".
	LayoutDir string `mapstructure:"layout_dir" toml:"layout_dir" json:"layout_dir"`
	// Database is the SQLite file used when Store is "sqlite".
	Database string `mapstructure:"database" toml:"database" json:"database"`
	// Display is the size layouts are resolved against when no window exists.
	Display dockgui.Vec2 `mapstructure:"display" toml:"display" json:"display"`
	Verbose bool         `mapstructure:"verbose" toml:"verbose" json:"verbose"`

	Runtime dockgui.Config `mapstructure:"runtime" toml:"runtime" json:"runtime"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	dir := "layouts"
	if base, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(base, "dockgui", "layouts")
	}
	return Config{
		Store:     StoreDir,
		LayoutDir: dir,
		Database:  filepath.Join(filepath.Dir(dir), "layouts.db"),
		Display:   dockgui.Vec2{X: 1280, Y: 720},
		Runtime:   dockgui.DefaultConfig(),
	}
}

// Load reads path (optional) on top of the defaults and applies environment
// overrides. A missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Seeding from the encoded defaults registers every key, which is what
	// lets AutomaticEnv override keys absent from the file.
	defaults, err := toml.Marshal(Default())
	if err != nil {
		return Config{}, fmt.Errorf("encode defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("read defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the store selection and the runtime tunables.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreDir:
		if c.LayoutDir == "" {
			errs = append(errs, errors.New("layout_dir is required for the dir store"))
		}
	case StoreSQLite:
		if c.Database == "" {
			errs = append(errs, errors.New("database is required for the sqlite store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.Display.X <= 0 || c.Display.Y <= 0 {
		errs = append(errs, fmt.Errorf("display must be positive, got %v", c.Display))
	}
	if err := c.Runtime.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", err))
	}
	return errors.Join(errs...)
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:   "toml",
		DoNotReference: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/go-theft-auto/dockgui/dockctl.schema.json"
	schema.Title = "dockctl configuration"
	schema.Description = "Configuration of dockctl, the dockgui layout tool"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
