package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the directories the tools write to. Relative directories are
// anchored on BaseDir.
type Paths struct {
	BaseDir    string
	ReportsDir string
}

// GetPaths resolves the configured directories against baseDir. An empty
// baseDir means the working directory.
func GetPaths(baseDir string, cfg ExportConfig) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	return &Paths{
		BaseDir:    baseDir,
		ReportsDir: anchor(baseDir, cfg.Dir, DefaultReportsDir),
	}, nil
}

func anchor(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates the output directories
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.ReportsDir, err)
	}
	return nil
}

// ReportPath returns the path of a report file
func (p *Paths) ReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}
