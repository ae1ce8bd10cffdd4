package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/audio"
	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/gui"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/stats"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
	"github.com/san-kum/sortviz/internal/tui"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	dataDir    string
	size       int
	seed       int64
	maxValue   int
	speed      float64
	valuesFlag string
	frameRate  int
	themeName  string
	audioOn    bool
	configFile string
	preset     string
	// export-svg
	step    int
	outFile string
	// sweep
	sizeMin  int
	sizeMax  int
	numSteps int
	// bench
	numTrials int
	parallel  bool
	// trace
	dumpOps bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sortviz",
		Short: "sorting algorithm visualization lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive picker when no command given
			registry := algorithms.NewRegistry()
			cfg := config.DefaultConfig()
			cfg.Seed = time.Now().UnixNano()
			picked, ok, err := tui.Pick(registry.List(), cfg)
			if err != nil || !ok {
				return err
			}
			return launchLive(registry, picked)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sortviz", "data directory")

	addRunFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&size, "size", config.DefaultSize, "array size")
		cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
		cmd.Flags().IntVar(&maxValue, "max-value", config.DefaultMaxValue, "value ceiling")
		cmd.Flags().StringVar(&valuesFlag, "values", "", "explicit array, comma separated")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "record a sorting run",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecord,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [algorithm]",
		Short: "play a run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed factor")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	liveCmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme")
	liveCmd.Flags().BoolVar(&audioOn, "audio", false, "sonify operations")

	guiCmd := &cobra.Command{
		Use:   "gui [algorithm]",
		Short: "play a run in the graphical window",
		Args:  cobra.ExactArgs(1),
		RunE:  runGUI,
	}
	addRunFlags(guiCmd)
	guiCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed factor")
	guiCmd.Flags().BoolVar(&audioOn, "audio", false, "sonify operations")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot disorder over the run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run operations to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one playback frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&step, "step", -1, "operation index (-1 for final)")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (stdout if empty)")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare all algorithms on the same array",
		RunE:  compareAlgorithms,
	}
	compareCmd.Flags().IntVar(&size, "size", config.DefaultSize, "array size")
	compareCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	compareCmd.Flags().IntVar(&maxValue, "max-value", config.DefaultMaxValue, "value ceiling")

	sweepCmd := &cobra.Command{
		Use:   "sweep [algorithm]",
		Short: "record an algorithm across array sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sizeMin, "min", 8, "smallest size")
	sweepCmd.Flags().IntVar(&sizeMax, "max", 128, "largest size")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 6, "number of sizes")
	sweepCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "repeated randomized trials",
		Args:  cobra.ExactArgs(1),
		RunE:  benchAlgorithm,
	}
	benchCmd.Flags().IntVar(&size, "size", config.DefaultSize, "array size")
	benchCmd.Flags().IntVar(&numTrials, "trials", 20, "number of trials")
	benchCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for wall clock)")
	benchCmd.Flags().BoolVar(&parallel, "parallel", false, "record trials concurrently")

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print the recorded operation sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  printTrace,
	}
	addRunFlags(traceCmd)
	traceCmd.Flags().BoolVar(&dumpOps, "dump", false, "dump full operation structs")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, showCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, sweepCmd,
		benchCmd, presetsCmd, traceCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file, and flags. Precedence is flags
// over config file over preset over defaults, matching Changed checks.
func resolveConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Algorithm = algorithm
	cfg.Size = size
	cfg.Seed = seed
	cfg.MaxValue = maxValue

	if preset != "" {
		p := config.GetPreset(algorithm, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(algorithm))
		}
		*cfg = *p
		cfg.Algorithm = algorithm
		if cfg.MaxValue == 0 {
			cfg.MaxValue = config.DefaultMaxValue
		}
		if cfg.Speed == 0 {
			cfg.Speed = config.DefaultSpeed
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *fileCfg
		cfg.Algorithm = algorithm
	}

	if cmd.Flags().Changed("size") {
		cfg.Size = size
		cfg.Values = nil
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("max-value") {
		cfg.MaxValue = maxValue
	}
	if cmd.Flags().Changed("values") {
		vals, err := parseValues(valuesFlag)
		if err != nil {
			return nil, err
		}
		cfg.Values = vals
	}
	if f := cmd.Flags().Lookup("speed"); f != nil && f.Changed {
		cfg.Speed = speed
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.FrameRate = frameRate
	}
	if f := cmd.Flags().Lookup("theme"); f != nil && f.Changed {
		cfg.Theme = themeName
	}
	if f := cmd.Flags().Lookup("audio"); f != nil && f.Changed {
		cfg.Audio = audioOn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseValues(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	algorithm := args[0]

	cfg, err := resolveConfig(cmd, algorithm)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := algorithms.NewRegistry()
	values := cfg.InitValues()

	fmt.Printf("recording %s over %d values...\n", algorithm, len(values))
	start := time.Now()
	tr, _, err := registry.Record(algorithm, values)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(algorithm, cfg.Seed, tr)
	if err != nil {
		return err
	}

	counts := stats.FromTrace(tr)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("operations: %d\n", tr.Len())
	fmt.Println("\ncounts:")
	fmt.Printf("  comparisons: %d\n", counts.Comparisons)
	fmt.Printf("  swaps: %d (%d self)\n", counts.Swaps, counts.SelfSwaps)
	fmt.Printf("  writes: %d\n", counts.Writes)
	fmt.Printf("  marks: %d\n", counts.Marks)
	fmt.Printf("  settles: %d\n", counts.Settles)

	return nil
}

func launchLive(registry *algorithms.Registry, cfg *config.Config) error {
	values := cfg.InitValues()
	tr, _, err := registry.Record(cfg.Algorithm, values)
	if err != nil {
		return err
	}

	p := player.New()
	p.Load(tr, values)
	if err := p.SetSpeed(cfg.Speed); err != nil {
		return err
	}

	if cfg.Audio {
		son := audio.NewSonifier(cfg.MaxValue)
		if err := son.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "%v (continuing without audio)\n", err)
		} else {
			p.AddObserver(son)
			defer son.Stop()
		}
	}

	viz.SetTheme(cfg.Theme)
	m := viz.NewModel(p, cfg.Algorithm, cfg.FrameRate)
	prog := tea.NewProgram(m)
	_, err = prog.Run()
	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	return launchLive(algorithms.NewRegistry(), cfg)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := algorithms.NewRegistry()
	values := cfg.InitValues()
	tr, _, err := registry.Record(cfg.Algorithm, values)
	if err != nil {
		return err
	}

	p := player.New()
	p.Load(tr, values)
	if err := p.SetSpeed(cfg.Speed); err != nil {
		return err
	}

	if cfg.Audio {
		son := audio.NewSonifier(cfg.MaxValue)
		if err := son.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "%v (continuing without audio)\n", err)
		} else {
			p.AddObserver(son)
			defer son.Stop()
		}
	}

	gui.Run(p, cfg.Algorithm)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tOPS\tCMP\tSWAP\tWRITE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Operations,
			run.Comparisons,
			run.Swaps,
			run.Writes,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func loadTrace(st *storage.Store, runID string) (*storage.RunMetadata, *trace.Trace, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	ops, err := st.LoadOps(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, trace.New(meta.Initial, ops), nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tr, err := loadTrace(st, args[0])
	if err != nil {
		return err
	}

	curve := stats.InversionCurve(tr)
	if len(curve) < 2 {
		return fmt.Errorf("no mutations to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("mutations: %d\n\n", len(curve)-1)

	graph := asciigraph.Plot(curve,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("inversions remaining"),
	)
	fmt.Println(graph)

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ops, err := st.LoadOps(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"seq", "kind", "i", "j", "value", "label", "lo", "hi"}); err != nil {
		return err
	}
	for seq, op := range ops {
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
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSONStdout(args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tr, err := loadTrace(st, args[0])
	if err != nil {
		return err
	}

	target := step
	if target < 0 || target > tr.Len() {
		target = tr.Len()
	}

	p := player.New()
	p.Load(tr, meta.Initial)
	p.Seek(target)

	svg := export.FrameToSVG(p.Frame(), 960, 540)
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	registry := algorithms.NewRegistry()

	cfg := config.DefaultConfig()
	cfg.Size = size
	cfg.Seed = seed
	cfg.MaxValue = maxValue
	values := cfg.InitValues()

	fmt.Printf("comparing algorithms (n=%d, seed=%d)\n\n", len(values), seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tOPS\tCMP\tSWAP\tWRITE\tMOVES\tTIME")

	for _, name := range registry.List() {
		start := time.Now()
		tr, _, err := registry.Record(name, values)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		c := stats.FromTrace(tr)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%v\n",
			name, tr.Len(), c.Comparisons, c.Swaps, c.Writes, c.Moves(), elapsed)
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	registry := algorithms.NewRegistry()
	sweep := &automation.SizeSweep{
		Algorithm: args[0],
		SizeMin:   sizeMin,
		SizeMax:   sizeMax,
		NumSteps:  numSteps,
		Seed:      seed,
	}

	results, err := automation.RunSweep(sweep, registry)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tCMP\tSWAP\tWRITE\tMOVES")
	curve := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n",
			r.Size, r.Counts.Comparisons, r.Counts.Swaps, r.Counts.Writes, r.Counts.Moves())
		curve = append(curve, float64(r.Counts.Comparisons))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(curve) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(curve,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("comparisons vs size step"),
		))
	}

	return nil
}

func benchAlgorithm(cmd *cobra.Command, args []string) error {
	registry := algorithms.NewRegistry()
	cfg := &automation.TrialConfig{
		Algorithm: args[0],
		Size:      size,
		NumTrials: numTrials,
		Seed:      seed,
	}

	var results []automation.TrialResult
	var err error
	if parallel {
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		results, err = automation.NewEnsemble(registry, *cfg).Run(cmd.Context())
	} else {
		results, err = automation.RunTrials(cfg, registry)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tCMP\tSWAP\tWRITE\tSORTED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%v\n",
			r.TrialID, r.Seed, r.Counts.Comparisons, r.Counts.Swaps, r.Counts.Writes, r.Sorted)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sorted, unsorted := automation.TrialStats(results)
	fmt.Printf("\n%d/%d trials sorted", sorted, sorted+unsorted)
	if unsorted > 0 {
		fmt.Printf(" (%d FAILED)", unsorted)
	}
	fmt.Println()

	return nil
}

func printTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := algorithms.NewRegistry()
	values := cfg.InitValues()
	tr, _, err := registry.Record(cfg.Algorithm, values)
	if err != nil {
		return err
	}

	fmt.Printf("initial: %v\n", values)
	fmt.Printf("final:   %v\n\n", tr.Replay())

	if dumpOps {
		litter.Config.HidePrivateFields = true
		litter.Dump(tr.Ops())
		return nil
	}
	for seq, op := range tr.Ops() {
		fmt.Printf("%4d  %s\n", seq, op)
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, err := automation.RunScenario(scenario, algorithms.NewRegistry(), st)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tCMP\tSWAP\tWRITE\tSORTED\tSAVED")
	for _, r := range results {
		saved := "-"
		if r.RunID != "" {
			saved = r.RunID
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%v\t%s\n",
			r.Algorithm, r.Size, r.Counts.Comparisons, r.Counts.Swaps, r.Counts.Writes, r.Sorted, saved)
	}
	return w.Flush()
}
