// Package discovery lists the candidate transcript files in a source
// directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/errors"
)

// Extension is the suffix every transcript file carries.
const Extension = ".txt"

// List returns the paths of all *.txt regular files directly inside dir,
// sorted by file name. Hidden files are included; callers decide what to
// skip. A missing or non-directory dir yields ErrMissingSourceDirectory.
func List(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingSourceDirectory, dir)
		}
		return nil, fmt.Errorf("checking source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", apperrors.ErrMissingSourceDirectory, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
