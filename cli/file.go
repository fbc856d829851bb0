package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the fixture directory when --config is not given.
const ConfigFileName = ".asmfix.yaml"

// LoadFile reads a YAML config file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file '%s': %w", path, err)
	}
	return cfg, nil
}

// mergeConfigFile applies the config file to every setting whose flag was
// not given explicitly.
func mergeConfigFile(cfg *Config, flags *pflag.FlagSet) error {
	path := cfg.ConfigPath
	if path == "" {
		path = filepath.Join(cfg.Dir, ConfigFileName)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	fileCfg, err := LoadFile(path)
	if err != nil {
		return err
	}

	if !flags.Changed("ext") {
		cfg.Extension = fileCfg.Extension
	}
	if !flags.Changed("strip") {
		cfg.Strip = fileCfg.Strip
	}
	if !flags.Changed("exclude") {
		cfg.Exclude = fileCfg.Exclude
	}

	bools := []struct {
		flag string
		dst  *bool
		src  bool
	}{
		{"dry-run", &cfg.DryRun, fileCfg.DryRun},
		{"backup", &cfg.Backup, fileCfg.Backup},
		{"atomic", &cfg.Atomic, fileCfg.Atomic},
		{"keep-going", &cfg.KeepGoing, fileCfg.KeepGoing},
		{"record", &cfg.Record, fileCfg.Record},
		{"asmfmt", &cfg.AsmFmt, fileCfg.AsmFmt},
		{"reload-buffers", &cfg.ReloadBuffers, fileCfg.ReloadBuffers},
	}
	for _, b := range bools {
		if !flags.Changed(b.flag) {
			*b.dst = b.src
		}
	}
	return nil
}
