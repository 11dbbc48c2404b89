// Package files locates the contact-log workbook under the fixed data
// directory. The tool expects exactly one workbook per run; anything else is
// an operator error that aborts the run.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrContactFileMissing is returned when the data directory holds no workbook.
	ErrContactFileMissing = errors.New("contact history file is missing from the data directory")
	// ErrMultipleContactFiles is returned when more than one workbook is present.
	ErrMultipleContactFiles = errors.New("multiple contact history files are in the data directory")
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExcelFiles finds all Excel files in the specified directory
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		// Excel leaves "~$..." lock files behind while a workbook is open
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.HasSuffix(strings.ToLower(name), ".xlsx") ||
			strings.HasSuffix(strings.ToLower(name), ".xls") {
			info, err := entry.Info()
			if err != nil {
				continue
			}

			files = append(files, FileInfo{
				Path:    filepath.Join(fullPath, name),
				Name:    name,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindContactWorkbook returns the single contact-log workbook in dir.
// Zero candidates yields ErrContactFileMissing, more than one yields
// ErrMultipleContactFiles; both are unrecoverable for the run.
func (d *Discovery) FindContactWorkbook(dir string) (FileInfo, error) {
	files, err := d.FindExcelFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}

	switch len(files) {
	case 0:
		return FileInfo{}, ErrContactFileMissing
	case 1:
		return files[0], nil
	default:
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		return FileInfo{}, fmt.Errorf("%w: %s", ErrMultipleContactFiles, strings.Join(names, ", "))
	}
}
