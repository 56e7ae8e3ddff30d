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


package storage

import (
	"fmt"
	"maps"
)

// Config is an opaque mapping of configuration keys to values, interpreted
// only by the provider that consumes it. Each provider validates its own
// subset through the typed accessors, which wrap ErrConfiguration on
// missing or malformed keys. A Config handed to a constructor must be
// treated as read-only; the factory clones it before hand-off.
type Config map[string]any

// Clone returns a shallow copy of the config. A nil config clones to an
// empty one so providers can index it safely.
func (c Config) Clone() Config {
	if c == nil {
		return Config{}
	}
	return maps.Clone(c)
}

// String returns the string value for key.
// Returns ErrConfiguration if the key is absent, empty, or not a string.
func (c Config) String(key string) (string, error) {
	v, ok := c[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required key %q", ErrConfiguration, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q must be a string, got %T", ErrConfiguration, key, v)
	}
	if s == "" {
		return "", fmt.Errorf("%w: key %q must not be empty", ErrConfiguration, key)
	}
	return s, nil
}

// StringOr returns the string value for key, or fallback when absent.
// Returns ErrConfiguration if a present value is not a string.
func (c Config) StringOr(key, fallback string) (string, error) {
	v, ok := c[key]
	if !ok {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q must be a string, got %T", ErrConfiguration, key, v)
	}
	return s, nil
}

// BoolOr returns the boolean value for key, or fallback when absent.
// Returns ErrConfiguration if a present value is not a boolean.
func (c Config) BoolOr(key string, fallback bool) (bool, error) {
	v, ok := c[key]
	if !ok {
		return fallback, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: key %q must be a boolean, got %T", ErrConfiguration, key, v)
	}
	return b, nil
}

// IntOr returns the integer value for key, or fallback when absent.
// Whole-number floats are accepted since decoded JSON and YAML documents
// may carry numbers as float64.
// Returns ErrConfiguration if a present value is not a whole number.
func (c Config) IntOr(key string, fallback int) (int, error) {
	v, ok := c[key]
	if !ok {
		return fallback, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: key %q must be a whole number, got %v", ErrConfiguration, key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: key %q must be an integer, got %T", ErrConfiguration, key, v)
	}
}
