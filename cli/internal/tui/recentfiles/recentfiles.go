// ABOUTME: Remembers recently loaded calibration tables for the TUI picker
// ABOUTME: Stores absolute paths as YAML in the XDG config directory

package recentfiles

import (
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// MaxRecentFiles is the maximum number of recent files to keep
const MaxRecentFiles = 5

// appDir is the directory name under the user config root
const appDir = "ln2-sizer"

// RecentFiles manages the list of recently used calibration files
type RecentFiles struct {
	configDir string
	files     []string
}

type recentData struct {
	Calibrations []string `yaml:"calibrations"`
}

// New creates a new RecentFiles manager with the given config directory
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG conventions
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

func (rf *RecentFiles) configFile() string {
	return filepath.Join(rf.configDir, "recent.yaml")
}

// Load reads the list from disk, dropping files that no longer exist.
// A corrupt list is treated as empty.
func (rf *RecentFiles) Load() ([]string, error) {
	data, err := os.ReadFile(rf.configFile())
	if os.IsNotExist(err) {
		rf.files = []string{}
		return rf.files, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := yaml.Unmarshal(data, &recent); err != nil {
		rf.files = []string{}
		return rf.files, nil
	}

	rf.files = make([]string, 0, len(recent.Calibrations))
	for _, path := range recent.Calibrations {
		if _, err := os.Stat(path); err == nil {
			rf.files = append(rf.files, path)
		}
	}
	return rf.files, nil
}

// Save writes the list to disk, keeping at most MaxRecentFiles entries
func (rf *RecentFiles) Save(files []string) error {
	if err := os.MkdirAll(rf.configDir, 0o755); err != nil {
		return err
	}

	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	rf.files = files

	data, err := yaml.Marshal(recentData{Calibrations: files})
	if err != nil {
		return err
	}
	return os.WriteFile(rf.configFile(), data, 0o644)
}

// Add records path as the most recent entry. Relative paths are made absolute
// so the list stays valid from any working directory.
func (rf *RecentFiles) Add(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if rf.files == nil {
		if _, err := rf.Load(); err != nil {
			rf.files = []string{}
		}
	}

	files := append([]string{path}, slices.DeleteFunc(slices.Clone(rf.files), func(f string) bool {
		return f == path
	})...)
	return rf.Save(files)
}

// List returns the current list of recent files
func (rf *RecentFiles) List() []string {
	if rf.files == nil {
		if _, err := rf.Load(); err != nil {
			return nil
		}
	}
	return rf.files
}
