// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"os"
	"strings"

	"github.com/z5labs/tour/config/key"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
//
// Only variables starting with the prefix followed by an underscore are
// considered. The remainder is lower cased and split on double underscores
// into nested keys, e.g. with prefix "TOUR", TOUR_FETCH__TIMEOUT=5s sets
// fetch.timeout. Variables which would replace a section, or nest under
// a plain value, are ignored.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process.
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	prefix := src.prefix
	if prefix != "" {
		prefix += "_"
	}

	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(k, prefix)
		if !ok || name == "" {
			continue
		}

		var chain key.Chain
		for _, part := range strings.Split(strings.ToLower(name), "__") {
			if part == "" {
				continue
			}
			chain = append(chain, key.Name(part))
		}
		if len(chain) == 0 {
			continue
		}

		err := store.Set(chain, v)
		var uerr UnexpectedKeyValueTypeError
		if errors.As(err, &uerr) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
