// ABOUTME: Discovers sample membrane calibration tables on disk
// ABOUTME: Looks in ./calibration or LN2_SIZER_CALIBRATION_DIR

package samples

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirEnv overrides the sample directory
const DirEnv = "LN2_SIZER_CALIBRATION_DIR"

// SampleFile represents a discovered calibration file
type SampleFile struct {
	Name string // Filename (e.g., "mnh-1522a-35c.yaml")
	Path string // Full path to the file
}

// calibrationExts are the formats the calibration loader accepts
var calibrationExts = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// Discover finds all calibration files in the given directory, sorted by name
func Discover(dir string) ([]SampleFile, error) {
	if dir == "" {
		return []SampleFile{}, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SampleFile{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := []SampleFile{}
	for _, entry := range entries {
		if entry.IsDir() || !calibrationExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, SampleFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// FindSamplesDir locates the sample calibration directory.
// Checks in order:
// 1. LN2_SIZER_CALIBRATION_DIR environment variable
// 2. ./calibration/ relative to given base path
func FindSamplesDir(basePath string) string {
	if envPath := os.Getenv(DirEnv); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	samplesDir := filepath.Join(basePath, "calibration")
	if _, err := os.Stat(samplesDir); err == nil {
		return samplesDir
	}

	return ""
}
