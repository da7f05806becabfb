// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/z5labs/tour/config/key"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type fetchConfig struct {
	URL            string        `config:"url"`
	Timeout        time.Duration `config:"timeout"`
	RequireSuccess bool          `config:"requireSuccess"`
	MaxAttempts    int           `config:"maxAttempts"`
}

type testConfig struct {
	Strict bool        `config:"strict"`
	Level  slog.Level  `config:"level"`
	Fetch  fetchConfig `config:"fetch"`
}

func TestRead(t *testing.T) {
	t.Run("will override earlier sources with later ones", func(t *testing.T) {
		defaults := FromYaml(strings.NewReader(`
strict: false
level: info
fetch:
  url: http://foo.com/
  timeout: 10s
  requireSuccess: true
  maxAttempts: 1
`))
		file := FromToml(strings.NewReader(`
[fetch]
timeout = "2s"
maxAttempts = 3
`))
		env := Env{
			prefix: "TOUR",
			environ: func() []string {
				return []string{
					"TOUR_STRICT=true",
					"TOUR_FETCH__REQUIRESUCCESS=false",
					"OTHER_FETCH__URL=http://ignored/",
				}
			},
		}
		flags := Map{"level": "debug"}

		m, err := Read(defaults, file, env, flags)
		require.NoError(t, err)

		var cfg testConfig
		require.NoError(t, m.Unmarshal(&cfg))

		require.True(t, cfg.Strict)
		require.Equal(t, slog.LevelDebug, cfg.Level)
		require.Equal(t, "http://foo.com/", cfg.Fetch.URL)
		require.Equal(t, 2*time.Second, cfg.Fetch.Timeout)
		require.False(t, cfg.Fetch.RequireSuccess)
		require.Equal(t, 3, cfg.Fetch.MaxAttempts)
	})

	t.Run("will ignore environment variables", func(t *testing.T) {
		t.Run("if they collide with a section", func(t *testing.T) {
			defaults := FromYaml(strings.NewReader("fetch:\n  url: http://foo.com/\n"))
			env := Env{
				prefix: "TOUR",
				environ: func() []string {
					return []string{
						"TOUR_FETCH=x",
						"TOUR_FETCH__URL__HOST=y",
						"TOUR_STRICT=true",
					}
				},
			}

			m, err := Read(defaults, env)
			require.NoError(t, err)

			var cfg testConfig
			require.NoError(t, m.Unmarshal(&cfg))
			require.Equal(t, "http://foo.com/", cfg.Fetch.URL)
			require.True(t, cfg.Strict)
		})
	})

	t.Run("will read json sources", func(t *testing.T) {
		m, err := Read(FromJson(strings.NewReader(`{"fetch": {"maxAttempts": 4, "url": "http://example.com"}}`)))
		require.NoError(t, err)

		var cfg testConfig
		require.NoError(t, m.Unmarshal(&cfg))
		require.Equal(t, 4, cfg.Fetch.MaxAttempts)
		require.Equal(t, "http://example.com", cfg.Fetch.URL)
	})

	t.Run("will skip nil sources", func(t *testing.T) {
		m, err := Read(nil, Map{"strict": true})
		require.NoError(t, err)

		var cfg testConfig
		require.NoError(t, m.Unmarshal(&cfg))
		require.True(t, cfg.Strict)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the yaml is invalid", func(t *testing.T) {
			_, err := Read(Map{}, FromYaml(strings.NewReader("strict: [")))

			var serr SourceError
			require.ErrorAs(t, err, &serr)
			require.Equal(t, 1, serr.Index)

			var derr InvalidDocumentError
			require.ErrorAs(t, err, &derr)
			require.Equal(t, YAML, derr.Format)
		})

		t.Run("if the toml is invalid", func(t *testing.T) {
			_, err := Read(FromToml(strings.NewReader("strict = ")))

			var derr InvalidDocumentError
			require.ErrorAs(t, err, &derr)
			require.Equal(t, TOML, derr.Format)
		})

		t.Run("if the json is invalid", func(t *testing.T) {
			_, err := Read(FromJson(strings.NewReader("{")))

			var derr InvalidDocumentError
			require.ErrorAs(t, err, &derr)
			require.Equal(t, JSON, derr.Format)
		})

		t.Run("if a source fails", func(t *testing.T) {
			srcErr := errors.New("failed")
			_, err := Read(SourceFunc(func(Store) error {
				return srcErr
			}))
			require.ErrorIs(t, err, srcErr)
		})

		t.Run("if a section is replaced by a plain value", func(t *testing.T) {
			_, err := Read(Map{"fetch": map[string]any{"url": "http://foo.com/"}}, SourceFunc(func(s Store) error {
				return s.Set(key.Name("fetch"), "oops")
			}))

			var uerr UnexpectedKeyValueTypeError
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, "fetch", uerr.Key)
		})

		t.Run("if a value is nested under a non-map value", func(t *testing.T) {
			_, err := Read(Map{"fetch": "oops"}, SourceFunc(func(s Store) error {
				return s.Set(key.Parse("fetch.url"), "http://foo.com/")
			}))

			var uerr UnexpectedKeyValueTypeError
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, "fetch", uerr.Key)
		})
	})
}

func TestManager_Unmarshal(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a duration can not be parsed", func(t *testing.T) {
			m, err := Read(Map{"fetch": map[string]any{"timeout": "soon"}})
			require.NoError(t, err)

			var cfg testConfig
			require.Error(t, m.Unmarshal(&cfg))
		})
	})
}

func TestMap_Set(t *testing.T) {
	testCases := []struct {
		name      string
		key       key.Keyer
		expectErr error
	}{
		{
			name: "single name",
			key:  key.Name("strict"),
		},
		{
			name: "nested chain",
			key:  key.Parse("a.b.c"),
		},
		{
			name:      "empty chain",
			key:       key.Chain{},
			expectErr: EmptyKeyChainError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := make(Map)
			err := m.Set(tc.key, true)
			if tc.expectErr != nil {
				require.IsType(t, tc.expectErr, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFromFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "tour.yaml", []byte("strict: true\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "tour.toml", []byte("strict = true\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "tour.json", []byte(`{"strict": true}`), 0o644))

	t.Run("will pick the format by extension", func(t *testing.T) {
		for _, path := range []string{"tour.yaml", "tour.toml", "tour.json"} {
			t.Run(path, func(t *testing.T) {
				src, err := FromFile(fsys, path)
				require.NoError(t, err)

				m, err := Read(src)
				require.NoError(t, err)

				var cfg testConfig
				require.NoError(t, m.Unmarshal(&cfg))
				require.True(t, cfg.Strict)
			})
		}
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the extension is unknown", func(t *testing.T) {
			_, err := FromFile(fsys, "tour.ini")

			var uerr UnsupportedFormatError
			require.ErrorAs(t, err, &uerr)
		})

		t.Run("if the file does not exist", func(t *testing.T) {
			src, err := FromFile(fsys, "missing.yaml")
			require.NoError(t, err)

			_, err = Read(src)
			require.ErrorIs(t, err, fs.ErrNotExist)
		})
	})
}

func TestFileReader_Close(t *testing.T) {
	t.Run("will not fail", func(t *testing.T) {
		t.Run("if the file was never opened", func(t *testing.T) {
			r := NewFileReader(afero.NewMemMapFs(), "never-opened.yaml")
			require.NoError(t, r.Close())
		})
	})
}
