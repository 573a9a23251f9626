// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrSettings is returned for a settings file which can't be read or
// parsed.
var ErrSettings = errors.New("cli: settings")

// Settings are the options of a run which may be given by a YAML file:
//
//	filters: ["parser.*", "lexer.*"]
//	color: false
//	progress: true
//	verbose: true
//	width: 60
//
// Command line flags override the values of a settings file.
type Settings struct {
	Filters  []string `yaml:"filters"`
	Color    bool     `yaml:"color"`
	Progress bool     `yaml:"progress"`
	Verbose  bool     `yaml:"verbose"`
	Width    int      `yaml:"width"`
}

// DefaultSettings returns the settings of a run without settings file
// and flags.
func DefaultSettings() *Settings {
	return &Settings{Color: true}
}

// LoadSettings reads the settings file at given path.  Keys which are
// missing in the file keep their default value, unknown keys are an
// error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettings, err)
	}
	s := DefaultSettings()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %s: %v", ErrSettings, path, err)
	}
	if s.Width < 0 {
		return nil, fmt.Errorf("%w: %s: negative width", ErrSettings, path)
	}
	return s, nil
}
