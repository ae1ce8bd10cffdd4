package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sortviz/internal/trace"
)

func recordedTrace(t *testing.T) *trace.Trace {
	t.Helper()
	b := trace.NewBuilder([]int{3, 1, 2})
	b.Cmp(0, 1)
	b.Swap(0, 1)
	b.Write(2, 7)
	b.Mark("i", 1)
	b.Settle(0, 2)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return tr
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	tr := recordedTrace(t)
	runID, err := st.Save("bubble", 42, tr)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == "" {
		t.Fatal("Save returned empty run ID")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Algorithm != "bubble" || meta.Seed != 42 {
		t.Fatalf("metadata = %+v", meta)
	}
	if meta.Size != 3 || meta.Operations != tr.Len() {
		t.Fatalf("metadata = %+v", meta)
	}
	if meta.Comparisons != 1 || meta.Swaps != 1 || meta.Writes != 1 {
		t.Fatalf("metadata counts = %+v", meta)
	}
	if len(meta.Initial) != 3 || meta.Initial[0] != 3 {
		t.Fatalf("initial = %v, want [3 1 2]", meta.Initial)
	}

	ops, err := st.LoadOps(runID)
	if err != nil {
		t.Fatalf("LoadOps: %v", err)
	}
	if len(ops) != tr.Len() {
		t.Fatalf("got %d ops, want %d", len(ops), tr.Len())
	}
	for i, want := range tr.Ops() {
		if ops[i] != want {
			t.Errorf("op %d = %v, want %v", i, ops[i], want)
		}
	}

	rebuilt := trace.New(meta.Initial, ops)
	got := rebuilt.Replay()
	for i, want := range meta.Final {
		if got[i] != want {
			t.Fatalf("rebuilt replay = %v, want %v", got, meta.Final)
		}
	}
}

func TestListSkipsMalformedRuns(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if _, err := st.Save("merge", 1, recordedTrace(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Directory without metadata, directory with broken metadata, stray file.
	if err := os.MkdirAll(filepath.Join(dir, "empty_run"), 0755); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken_run")
	if err := os.MkdirAll(broken, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(broken, "metadata.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1: %+v", len(runs), runs)
	}
	if runs[0].Algorithm != "merge" {
		t.Fatalf("run = %+v", runs[0])
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never_created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("got %d runs, want 0", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing_123"); err == nil {
		t.Fatal("expected error for unknown run")
	}
	if _, err := st.LoadOps("missing_123"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want trace.Kind
	}{
		{"compare", trace.Compare},
		{"swap", trace.Swap},
		{"write", trace.Write},
		{"mark", trace.Mark},
		{"settle", trace.Settle},
	}
	for _, tt := range tests {
		got, err := parseKind(tt.in)
		if err != nil {
			t.Errorf("parseKind(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := parseKind("rotate"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	runID, err := st.Save("quicksort", 7, recordedTrace(t))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := filepath.Join(t.TempDir(), "run.json")
	if err := st.ExportJSON(runID, out); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Metadata RunMetadata `json:"metadata"`
		Ops      []struct {
			Kind string `json:"kind"`
		} `json:"operations"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.Metadata.Algorithm != "quicksort" {
		t.Fatalf("metadata = %+v", decoded.Metadata)
	}
	if len(decoded.Ops) != 5 || decoded.Ops[0].Kind != "compare" {
		t.Fatalf("operations = %+v", decoded.Ops)
	}
}
