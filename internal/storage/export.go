package storage

import (
	"encoding/json"
	"os"

	"github.com/san-kum/sortviz/internal/trace"
)

// ExportData bundles a run's metadata with its full operation list for
// machine consumption.
type ExportData struct {
	Metadata RunMetadata `json:"metadata"`
	Ops      []trace.Op  `json:"operations"`
}

func (s *Store) exportData(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	ops, err := s.LoadOps(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Metadata: *meta, Ops: ops}, nil
}

// ExportJSON writes a run as indented JSON to path.
func (s *Store) ExportJSON(runID, path string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout writes a run as indented JSON to standard output.
func (s *Store) ExportJSONStdout(runID string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
