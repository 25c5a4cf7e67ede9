// Package config loads named portal instances from the INI config file.
//
// The file holds one section per instance:
//
//	[instance:local]
//	urlbase = http://localhost:5000
//	apikey  = 29dc8b28d78g923basd43w
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/ckanta-io/ckanta-client/internal/constants"
)

// ConfigError reports a missing config file or a missing instance section.
type ConfigError struct {
	Path    string
	Section string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("config section not found: %s", e.Section)
	}

	return fmt.Sprintf("config file not found: %s", e.Path)
}

// Unwrap returns the cause, if any.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Instance is an immutable (urlbase, apikey) pair identifying one portal
// deployment.
type Instance struct {
	Name    string
	URLBase string
	APIKey  string
}

// File is a parsed instance config file.
type File struct {
	path string
	ini  *ini.File
}

// DefaultPath returns the per-user config file path, ~/.ckanta/config.ini.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)
	}

	return filepath.Join(home, constants.DefaultConfigDir, constants.DefaultConfigFile)
}

// Load reads the config file at path, expanding ~ and environment
// variables first.
func Load(path string) (*File, error) {
	path = expandPath(path)

	source, err := ini.Load(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return &File{path: path, ini: source}, nil
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	return os.ExpandEnv(path)
}

// Instance returns the configuration for the named instance.
func (f *File) Instance(name string) (Instance, error) {
	sectionName := constants.InstanceSectionPrefix + name

	section, err := f.ini.GetSection(sectionName)
	if err != nil {
		return Instance{}, &ConfigError{Path: f.path, Section: sectionName, Err: err}
	}

	return Instance{
		Name:    name,
		URLBase: section.Key("urlbase").String(),
		APIKey:  section.Key("apikey").String(),
	}, nil
}

// Instances lists the configured instance names.
func (f *File) Instances() []string {
	var names []string

	for _, section := range f.ini.Sections() {
		sectionName := section.Name()
		if len(sectionName) > len(constants.InstanceSectionPrefix) &&
			sectionName[:len(constants.InstanceSectionPrefix)] == constants.InstanceSectionPrefix {
			names = append(names, sectionName[len(constants.InstanceSectionPrefix):])
		}
	}

	return names
}

// SetAPIKey updates the named instance's apikey and saves the file. The
// instance section must already exist.
func (f *File) SetAPIKey(name, apikey string) error {
	sectionName := constants.InstanceSectionPrefix + name

	section, err := f.ini.GetSection(sectionName)
	if err != nil {
		return &ConfigError{Path: f.path, Section: sectionName, Err: err}
	}

	section.Key("apikey").SetValue(apikey)

	if err := f.ini.SaveTo(f.path); err != nil {
		return fmt.Errorf("saving config file: %w", err)
	}

	return nil
}
