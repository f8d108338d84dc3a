// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// replConfig is .sigilrc.yaml's shape: a missing file is not an error, and
// every field defaults to the REPL's built-in behavior when absent. Prompt
// sets the REPL prompt and Core names a core file used when --core is not
// given; History is parsed but not used, as the REPL keeps no history file.
type replConfig struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
	Core    string `yaml:"core"`
}

func defaultConfig() replConfig {
	return replConfig{Prompt: "sigil=> "}
}

// loadConfig reads ~/.sigilrc.yaml, returning defaultConfig() unchanged if
// the file does not exist.
func loadConfig() (replConfig, error) {
	cfg := defaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	b, err := os.ReadFile(filepath.Join(home, ".sigilrc.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultConfig().Prompt
	}
	return cfg, nil
}
