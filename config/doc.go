// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides layered configuration for the tour.
//
// A [Source] knows how to write its key value pairs into a [Store].
// [Read] applies any number of sources, in order, to a single in-memory
// store so later sources override earlier ones. The resulting [Manager]
// decodes the merged values into a struct using the "config" struct tag.
//
// # Basic Usage
//
//	m, err := config.Read(
//	    config.FromYaml(bytes.NewReader(defaults)),
//	    config.FromToml(f),
//	    config.FromEnv("TOUR"),
//	    config.Map{"strict": true},
//	)
//	if err != nil {
//	    return err
//	}
//
//	var cfg Config
//	err = m.Unmarshal(&cfg)
package config
