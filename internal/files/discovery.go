package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides read-only file discovery over a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindCSVFiles finds all CSV files in the specified directory, oldest first.
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
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
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}

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

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// FindSourceFile returns the most recent CSV export in dir whose name starts
// with the source name, e.g. "store1" matches "store1_june.csv". Returns an
// error when no export matches.
func (d *Discovery) FindSourceFile(dir, sourceName string) (FileInfo, error) {
	files, err := d.FindCSVFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}

	prefix := strings.ToLower(sourceName)
	var matched []FileInfo
	for _, f := range files {
		if strings.HasPrefix(strings.ToLower(f.Name), prefix) {
			matched = append(matched, f)
		}
	}

	if len(matched) == 0 {
		return FileInfo{}, fmt.Errorf("no CSV export for source %s in %s", sourceName, dir)
	}

	// FindCSVFiles sorts oldest first.
	return matched[len(matched)-1], nil
}
