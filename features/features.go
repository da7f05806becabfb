// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package features contains the demonstration routines run by the tour
// and the catalog listing them in run order.
package features

import (
	"net/http"

	"github.com/z5labs/tour"
	"github.com/z5labs/tour/fileio"
)

// Routine names in catalog order.
const (
	HTTPClient          = "http-client"
	CollectionFactories = "collection-factories"
	StringUtilities     = "string-utilities"
	FileUtilities       = "file-utilities"
	PredicateNot        = "predicate-not"
	ToArray             = "to-array"
	VarType             = "var-type"
)

// FilesConfig configures the [Files] routine. Relative paths are
// resolved against the working directory.
type FilesConfig struct {
	ReadPath  string `config:"readPath"`
	WritePath string `config:"writePath"`
	Content   string `config:"content"`
}

// Config configures every routine in the catalog.
type Config struct {
	Fetch FetchConfig `config:"fetch"`
	Files FilesConfig `config:"files"`
}

// Catalog returns every routine in the fixed order they are run.
func Catalog(cfg Config, client *http.Client, files *fileio.Files) []tour.Descriptor {
	return []tour.Descriptor{
		{Name: HTTPClient, Routine: Fetch(client, cfg.Fetch)},
		{Name: CollectionFactories, Routine: tour.RoutineFunc(Collections)},
		{Name: StringUtilities, Routine: tour.RoutineFunc(Strings)},
		{Name: FileUtilities, Routine: Files(files, cfg.Files)},
		{Name: PredicateNot, Routine: tour.RoutineFunc(NotBlankLines)},
		{Name: ToArray, Routine: tour.RoutineFunc(Arrays)},
		{Name: VarType, Routine: tour.RoutineFunc(Inference)},
	}
}
