// Package zconfig loads the project file `cmd/zilc` reads for its
// `build`/`run` subcommands. Adapted from
// lookbusy1344-arm_emulator/config's DefaultConfig/Load/LoadFrom/Save
// shape - a struct of TOML-tagged sections, a hardcoded default, and a
// loader that falls back to the default rather than erroring when the
// file is simply absent.
package zconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk project file (zilc.toml by convention).
type Config struct {
	Project struct {
		Version       uint8  `toml:"version"`
		ReleaseNumber uint16 `toml:"release_number"`
		Serial        string `toml:"serial"` // YYMMDD; the build command does not read it
		Output        string `toml:"output"`
	} `toml:"project"`

	Build struct {
		Optimize int  `toml:"optimize"` // 0-2, mirrors the assembler's optimize levels
		Strict   bool `toml:"strict"`   // not read by analyze, which takes --strict only as a flag
	} `toml:"build"`

	Run struct {
		Interpreter string `toml:"interpreter"` // path to an external interpreter binary
	} `toml:"run"`
}

// DefaultConfig returns a Config with conservative, widely compatible
// defaults: version 5 (the most common target for non-v3 games),
// release 1, output a.z5 in the working directory.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Project.Version = 5
	cfg.Project.ReleaseNumber = 1
	cfg.Project.Output = "a.z5"
	cfg.Build.Optimize = 1
	return cfg
}

// Load reads zilc.toml from the current directory, or returns
// DefaultConfig if it doesn't exist.
func Load() (*Config, error) {
	return LoadFrom("zilc.toml")
}

// LoadFrom reads the project file at path, returning DefaultConfig
// unmodified if the file is absent.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("zconfig: parsing %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes c to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("zconfig: creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("zconfig: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("zconfig: encoding %s: %w", path, err)
	}
	return nil
}
