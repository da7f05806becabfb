// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"bytes"
	_ "embed"
	"errors"
	"log/slog"
	"time"

	"github.com/z5labs/tour/config"
	"github.com/z5labs/tour/config/key"
	"github.com/z5labs/tour/features"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed default_config.yaml
var defaultConfig []byte

// EnvPrefix is the prefix of environment variables which override config,
// e.g. TOUR_FETCH__TIMEOUT=2s.
const EnvPrefix = "TOUR"

// Config is the complete configuration of the tour command.
type Config struct {
	Logging struct {
		Level  slog.Level `config:"level"`
		Format string     `config:"format"`
	} `config:"logging"`

	Trace struct {
		Enabled     bool   `config:"enabled"`
		ServiceName string `config:"serviceName"`
	} `config:"trace"`

	Strict bool `config:"strict"`

	HTTP struct {
		Retries            int           `config:"retries"`
		RetryWaitMin       time.Duration `config:"retryWaitMin"`
		RetryWaitMax       time.Duration `config:"retryWaitMax"`
		TripAfter          uint32        `config:"tripAfter"`
		OpenStateTimeout   time.Duration `config:"openStateTimeout"`
		HalfOpenRequests   uint32        `config:"halfOpenRequests"`
		CountResetInterval time.Duration `config:"countResetInterval"`
	} `config:"http"`

	Fetch features.FetchConfig `config:"fetch"`
	Files features.FilesConfig `config:"files"`
}

// Features returns the subset of config used by the routines.
func (cfg Config) Features() features.Config {
	return features.Config{
		Fetch: cfg.Fetch,
		Files: cfg.Files,
	}
}

// readConfig layers, lowest precedence first, the embedded defaults,
// the optional config file, environment variables and explicitly set flags.
func readConfig(fs afero.Fs, cmd *cobra.Command, f *flags) (Config, error) {
	var file config.Source
	if f.configPath != "" {
		var err error
		file, err = config.FromFile(fs, f.configPath)
		if err != nil {
			return Config{}, err
		}
	}

	m, err := config.Read(
		config.FromYaml(bytes.NewReader(defaultConfig)),
		file,
		config.FromEnv(EnvPrefix),
		flagSource(cmd, f),
	)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	err = m.Unmarshal(&cfg)
	return cfg, err
}

func flagSource(cmd *cobra.Command, f *flags) config.Source {
	return config.SourceFunc(func(store config.Store) error {
		set := func(name string, k key.Keyer, v any) error {
			if !cmd.Flags().Changed(name) {
				return nil
			}
			return store.Set(k, v)
		}

		return errors.Join(
			set("strict", key.Name("strict"), f.strict),
			set("trace", key.Chain{key.Name("trace"), key.Name("enabled")}, f.trace),
			set("url", key.Chain{key.Name("fetch"), key.Name("url")}, f.url),
			set("timeout", key.Chain{key.Name("fetch"), key.Name("timeout")}, f.timeout),
		)
	})
}
