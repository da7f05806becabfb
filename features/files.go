// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package features

import (
	"context"
	"fmt"
	"io"

	"github.com/z5labs/tour"
	"github.com/z5labs/tour/fileio"
)

// Files returns a routine which prints the content of one file and then
// overwrites another.
func Files(files *fileio.Files, cfg FilesConfig) tour.Routine {
	return tour.RoutineFunc(func(ctx context.Context, w io.Writer) error {
		content, err := files.ReadString(cfg.ReadPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s:\n%s\n", cfg.ReadPath, content)

		err = files.WriteString(cfg.WritePath, cfg.Content)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "wrote %q to %s\n", cfg.Content, cfg.WritePath)
		return err
	})
}
