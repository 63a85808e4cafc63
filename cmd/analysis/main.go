// Command analysis runs windowed raster analysis over a grid stored as CSV:
// GLCM texture statistics, majority-vote smoothing, resampling, or SAR
// backscatter unit conversion. Results are written back as CSV and can
// optionally be recorded in a SQLite run store.
//
// CSV is a transport convenience of this tool only; the analysis packages
// operate on in-memory grids and carry no file-format dependency.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/tellus-data/surface.report/internal/config"
	"github.com/tellus-data/surface.report/internal/db"
	"github.com/tellus-data/surface.report/internal/majority"
	"github.com/tellus-data/surface.report/internal/raster"
	"github.com/tellus-data/surface.report/internal/resample"
	"github.com/tellus-data/surface.report/internal/texture"
	"github.com/tellus-data/surface.report/internal/units"
	"github.com/tellus-data/surface.report/internal/version"
)

var (
	inputPath   = flag.String("input", "", "Input grid CSV (required)")
	outputPath  = flag.String("output", "", "Output grid CSV (required)")
	op          = flag.String("op", "texture", "Operation: texture, majority, resample, to-db, to-natural")
	configPath  = flag.String("config", "", "Optional tuning JSON; flags override config values")
	property    = flag.String("property", "", "Texture property: entropy, dissimilarity, homogeneity")
	window      = flag.String("window", "", "Window size as ROWSxCOLS, e.g. 7x7")
	grayLevels  = flag.Int("gray-levels", 0, "Gray levels for texture quantization")
	normed      = flag.Bool("normed", true, "Normalize co-occurrence matrices")
	failFast    = flag.Bool("fail-fast", false, "Abort on a degenerate texture tile instead of writing NaN")
	preserve    = flag.Int("preserve-class", 0, "Majority filter class exempt from voting (default 1)")
	factor      = flag.Float64("factor", 1.0, "Resample scale factor (>1 upsamples)")
	method      = flag.String("method", "average", "Resample method: nearest, bilinear, average")
	workers     = flag.Int("workers", 0, "Worker pool size (0 = all CPUs)")
	dbPath      = flag.String("db", "", "Optional SQLite run store; records run metadata and a grid snapshot")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("analysis %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.EmptyTuningConfig()
	if *configPath != "" {
		loaded, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.TuningConfig) error {
	start := time.Now()

	var store *db.DB
	if *dbPath != "" {
		var err error
		store, err = db.Open(*dbPath)
		if err != nil {
			return fmt.Errorf("failed to open run store: %w", err)
		}
		defer store.Close()
	}

	switch *op {
	case "texture":
		return runTexture(ctx, cfg, store, start)
	case "majority":
		return runMajority(ctx, cfg, store, start)
	case "resample":
		return runResample(store, start)
	case "to-db", "to-natural":
		return runConvert(*op)
	}
	return fmt.Errorf("unknown operation %q", *op)
}

func runTexture(ctx context.Context, cfg *config.TuningConfig, store *db.DB, start time.Time) error {
	grid, err := readGridCSV(*inputPath)
	if err != nil {
		return err
	}

	propName := cfg.GetTextureProperty()
	if *property != "" {
		propName = *property
	}
	prop, err := texture.ParseProperty(propName)
	if err != nil {
		return err
	}

	wy, wx := cfg.GetTextureWindow()
	if *window != "" {
		if wy, wx, err = parseWindow(*window); err != nil {
			return err
		}
	}
	levels := cfg.GetGrayLevels()
	if *grayLevels != 0 {
		levels = *grayLevels
	}
	policy := texture.DegenerateSentinel
	if cfg.GetDegeneratePolicy() == "fail" || *failFast {
		policy = texture.DegenerateFail
	}

	params := texture.Params{
		WindowRows: wy,
		WindowCols: wx,
		GrayLevels: levels,
		Normed:     *normed,
		Degenerate: policy,
		Workers:    effectiveWorkers(cfg),
	}

	out, err := texture.Compute(ctx, grid, prop, params)
	if err != nil {
		return err
	}
	if err := writeGridCSV(*outputPath, out); err != nil {
		return err
	}
	log.Printf("texture: %dx%d -> %dx%d property=%s window=%dx%d levels=%d in %v",
		grid.Rows, grid.Cols, out.Rows, out.Cols, prop, wy, wx, levels, time.Since(start))

	return recordRun(store, &db.AnalysisRun{
		Operation:  "texture",
		Property:   prop.String(),
		WindowRows: wy,
		WindowCols: wx,
		GrayLevels: levels,
		SourceRows: grid.Rows,
		SourceCols: grid.Cols,
		Duration:   time.Since(start),
	}, out)
}

func runMajority(ctx context.Context, cfg *config.TuningConfig, store *db.DB, start time.Time) error {
	grid, err := readClassGridCSV(*inputPath)
	if err != nil {
		return err
	}

	wy, wx := cfg.GetMajorityWindow()
	if *window != "" {
		if wy, wx, err = parseWindow(*window); err != nil {
			return err
		}
	}
	preserveClass := cfg.GetPreserveClass()
	if *preserve != 0 {
		preserveClass = *preserve
	}

	params := majority.Params{
		WindowRows:    wy,
		WindowCols:    wx,
		PreserveClass: preserveClass,
		Workers:       effectiveWorkers(cfg),
	}

	out, err := majority.Filter(ctx, grid, params)
	if err != nil {
		return err
	}
	if err := writeClassGridCSV(*outputPath, out); err != nil {
		return err
	}
	log.Printf("majority: %dx%d window=%dx%d preserve=%d in %v",
		grid.Rows, grid.Cols, wy, wx, preserveClass, time.Since(start))

	return recordRun(store, &db.AnalysisRun{
		Operation:  "majority",
		WindowRows: wy,
		WindowCols: wx,
		SourceRows: grid.Rows,
		SourceCols: grid.Cols,
		OutputRows: out.Rows,
		OutputCols: out.Cols,
		Duration:   time.Since(start),
	}, nil)
}

func runResample(store *db.DB, start time.Time) error {
	grid, err := readGridCSV(*inputPath)
	if err != nil {
		return err
	}
	m, err := resample.ParseMethod(*method)
	if err != nil {
		return err
	}
	out, err := resample.Grid(grid, *factor, m)
	if err != nil {
		return err
	}
	if err := writeGridCSV(*outputPath, out); err != nil {
		return err
	}
	log.Printf("resample: %dx%d -> %dx%d factor=%g method=%s in %v",
		grid.Rows, grid.Cols, out.Rows, out.Cols, *factor, m, time.Since(start))

	return recordRun(store, &db.AnalysisRun{
		Operation:  "resample",
		WindowRows: 1,
		WindowCols: 1,
		SourceRows: grid.Rows,
		SourceCols: grid.Cols,
		Duration:   time.Since(start),
	}, out)
}

func runConvert(op string) error {
	grid, err := readGridCSV(*inputPath)
	if err != nil {
		return err
	}
	for i, v := range grid.Data {
		if op == "to-db" {
			grid.Data[i] = units.NaturalToDB(v)
		} else {
			grid.Data[i] = units.DBToNatural(v)
		}
	}
	return writeGridCSV(*outputPath, grid)
}

// recordRun fills in output shape and stats from out (when present) and
// inserts the run plus a grid snapshot into the store. A nil store is a
// no-op.
func recordRun(store *db.DB, run *db.AnalysisRun, out *raster.Grid) error {
	if store == nil {
		return nil
	}
	if out != nil {
		run.OutputRows = out.Rows
		run.OutputCols = out.Cols
		if min, max, ok := out.MinMax(); ok {
			run.OutputMin = min
			run.OutputMax = max
			run.OutputMean = out.Mean()
		}
		for _, v := range out.Data {
			if math.IsNaN(v) {
				run.DegenerateTiles++
			}
		}
	}
	runID, err := store.RecordRun(run)
	if err != nil {
		return err
	}
	if out != nil {
		if _, err := store.InsertGridSnapshot(runID, out); err != nil {
			return err
		}
	}
	log.Printf("recorded run %s", runID)
	return nil
}

func effectiveWorkers(cfg *config.TuningConfig) int {
	if *workers != 0 {
		return *workers
	}
	return cfg.GetWorkers()
}

// parseWindow parses "ROWSxCOLS", e.g. "7x7".
func parseWindow(s string) (rows, cols int, err error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid window %q: expected ROWSxCOLS", s)
	}
	if rows, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, fmt.Errorf("invalid window rows %q: %w", parts[0], err)
	}
	if cols, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, fmt.Errorf("invalid window cols %q: %w", parts[1], err)
	}
	return rows, cols, nil
}
