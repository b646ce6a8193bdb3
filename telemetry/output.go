package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/wormlab/nematode/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	trackFile *os.File

	trackHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	trackPath := filepath.Join(dir, "track.csv")
	f, err := os.Create(trackPath)
	if err != nil {
		return nil, fmt.Errorf("creating track.csv: %w", err)
	}
	om.trackFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTrack appends records to track.csv, writing the header once.
func (om *OutputManager) WriteTrack(records []TickRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}

	if !om.trackHeaderWritten {
		if err := gocsv.Marshal(records, om.trackFile); err != nil {
			return fmt.Errorf("writing track: %w", err)
		}
		om.trackHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.trackFile); err != nil {
			return fmt.Errorf("writing track: %w", err)
		}
	}

	return nil
}

// WriteSummary saves per-agent run statistics as summary.csv.
func (om *OutputManager) WriteSummary(stats []RunStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}

	summaryPath := filepath.Join(om.dir, "summary.csv")
	f, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(stats, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	if om.trackFile != nil {
		return om.trackFile.Close()
	}
	return nil
}
