package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/sortviz/internal/stats"
	"github.com/san-kum/sortviz/internal/trace"
)

// Store persists recorded traces as one directory per run: metadata.json
// (algorithm, seed, counts, snapshots) plus ops.csv with one row per
// operation.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Algorithm   string    `json:"algorithm"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Size        int       `json:"size"`
	Initial     []int     `json:"initial"`
	Final       []int     `json:"final"`
	Operations  int       `json:"operations"`
	Comparisons int       `json:"comparisons"`
	Swaps       int       `json:"swaps"`
	Writes      int       `json:"writes"`
}

func (s *Store) Save(algorithm string, seed int64, tr *trace.Trace) (string, error) {
	runID := fmt.Sprintf("%s_%d", algorithm, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	counts := stats.FromTrace(tr)
	initial := tr.Initial()
	meta := RunMetadata{
		ID:          runID,
		Algorithm:   algorithm,
		Timestamp:   time.Now(),
		Seed:        seed,
		Size:        len(initial),
		Initial:     initial,
		Final:       tr.Replay(),
		Operations:  tr.Len(),
		Comparisons: counts.Comparisons,
		Swaps:       counts.Swaps,
		Writes:      counts.Writes,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "ops.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"seq", "kind", "i", "j", "value", "label", "lo", "hi"}); err != nil {
		return "", err
	}
	for seq, op := range tr.Ops() {
		row := []string{
			strconv.Itoa(seq),
			op.Kind.String(),
			strconv.Itoa(op.I),
			strconv.Itoa(op.J),
			strconv.Itoa(op.Value),
			op.Label,
			strconv.Itoa(op.Lo),
			strconv.Itoa(op.Hi),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List scans the base directory and returns metadata for every readable run.
// Unreadable or malformed runs are skipped, not fatal.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func parseKind(s string) (trace.Kind, error) {
	switch s {
	case "compare":
		return trace.Compare, nil
	case "swap":
		return trace.Swap, nil
	case "write":
		return trace.Write, nil
	case "mark":
		return trace.Mark, nil
	case "settle":
		return trace.Settle, nil
	}
	return 0, fmt.Errorf("storage: unknown op kind %q", s)
}

// LoadOps reads ops.csv back into operations, skipping the header row.
func (s *Store) LoadOps(runID string) ([]trace.Op, error) {
	csvPath := filepath.Join(s.baseDir, runID, "ops.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []trace.Op{}, nil
	}

	ops := make([]trace.Op, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 8 {
			continue
		}
		kind, err := parseKind(record[1])
		if err != nil {
			return nil, err
		}
		op := trace.Op{Kind: kind, Label: record[5]}
		op.I, _ = strconv.Atoi(record[2])
		op.J, _ = strconv.Atoi(record[3])
		op.Value, _ = strconv.Atoi(record[4])
		op.Lo, _ = strconv.Atoi(record[6])
		op.Hi, _ = strconv.Atoi(record[7])
		ops = append(ops, op)
	}

	return ops, nil
}
