// Package config loads the .smtrs.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = ".smtrs.yaml"

// Config represents the project configuration.
type Config struct {
	Name string `yaml:"name"`
	// LeafPrefix prefixes the variables allocated for fresh leaves.
	LeafPrefix string `yaml:"leaf_prefix"`
	// Cond names the boolean variable that selects the left state at a join.
	Cond  string `yaml:"cond"`
	Log   Log    `yaml:"log"`
	Color bool   `yaml:"color"`
}

type Log struct {
	Development bool `yaml:"development"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Name:       "smtrs",
		LeafPrefix: "x",
		Cond:       "c",
		Color:      true,
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	config := Default()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, err
	}
	return config, config.Validate()
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.LeafPrefix == "" {
		return errors.New("leaf_prefix must not be empty")
	}
	if c.Cond == "" {
		return errors.New("cond must not be empty")
	}
	// leaves are named prefix0, prefix1, ...
	if rest, ok := strings.CutPrefix(c.Cond, c.LeafPrefix); ok && rest != "" {
		if _, err := strconv.Atoi(rest); err == nil {
			return fmt.Errorf("cond %q collides with a leaf variable", c.Cond)
		}
	}
	return nil
}

// Write creates or replaces the configuration file at path.
func Write(path string, config Config) error {
	if path == "" {
		path = DefaultPath
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
