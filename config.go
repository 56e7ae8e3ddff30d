// Copyright 2025 Poiesic Systems
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


package substrate

import (
	"fmt"

	"github.com/poiesic/substrate/storage"
	"github.com/spf13/viper"
)

// BackendSpec declares one backend to register at startup.
type BackendSpec struct {
	Type     string         `yaml:"type" mapstructure:"type"`
	Provider string         `yaml:"provider" mapstructure:"provider"`
	Name     string         `yaml:"name" mapstructure:"name"`
	Default  bool           `yaml:"default" mapstructure:"default"`
	Config   map[string]any `yaml:"config" mapstructure:"config"`
}

// Config is the declarative backend configuration:
//
//	backends:
//	  - type: vector_store
//	    provider: file
//	    name: main
//	    default: true
//	    config:
//	      path: /var/lib/substrate/vectors.json
type Config struct {
	Backends []BackendSpec `yaml:"backends" mapstructure:"backends"`
}

// LoadConfig reads a backend configuration document from path. The format
// is inferred from the file extension (YAML, JSON, and TOML are accepted).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config %s: %v", storage.ErrConfiguration, path, err)
	}
	return &cfg, nil
}

// Apply registers every declared backend with the registry, in order, and
// applies explicit defaults afterwards. A spec without a name registers
// under its provider name.
func (c *Config) Apply(registry *storage.Registry) error {
	for _, spec := range c.Backends {
		typ, err := storage.ParseBackendType(spec.Type)
		if err != nil {
			return err
		}

		name := spec.Name
		if name == "" {
			name = spec.Provider
		}
		if _, err := registry.RegisterBackend(typ, spec.Provider, name, storage.Config(spec.Config)); err != nil {
			return fmt.Errorf("registering backend %s/%s: %w", typ, name, err)
		}
		if spec.Default {
			if err := registry.SetDefault(typ, name); err != nil {
				return err
			}
		}
	}
	return nil
}
