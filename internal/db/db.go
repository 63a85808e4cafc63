// Package db persists analysis runs and their output grids to SQLite.
//
// The store records the parameters and summary statistics of each texture or
// majority run, plus optional gzip-compressed gob snapshots of the output
// grids, so long-running batch analyses can be audited and resumed without
// re-reading the source rasters. Raster file formats stay out of scope; the
// store holds run metadata and opaque grid blobs only.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tellus-data/surface.report/internal/raster"
)

// DB wraps the SQLite connection used by the run store.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the run store at path and applies all pending
// schema migrations.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db := &DB{conn}
	if err := db.MigrateUp(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// AnalysisRun is one recorded engine invocation.
type AnalysisRun struct {
	RunID           string
	Operation       string // "texture", "majority", "resample"
	Property        string // texture property name, empty for other operations
	WindowRows      int
	WindowCols      int
	GrayLevels      int
	SourceRows      int
	SourceCols      int
	OutputRows      int
	OutputCols      int
	DegenerateTiles int
	Duration        time.Duration
	OutputMin       float64
	OutputMax       float64
	OutputMean      float64
	CreatedAt       time.Time
}

// RecordRun inserts a run row. A missing RunID is filled with a fresh UUID;
// the (possibly generated) ID is returned.
func (db *DB) RecordRun(run *AnalysisRun) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	_, err := db.Exec(`
		INSERT INTO analysis_runs (
			run_id, operation, property,
			window_rows, window_cols, gray_levels,
			source_rows, source_cols, output_rows, output_cols,
			degenerate_tiles, duration_ms,
			output_min, output_max, output_mean
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Operation, run.Property,
		run.WindowRows, run.WindowCols, run.GrayLevels,
		run.SourceRows, run.SourceCols, run.OutputRows, run.OutputCols,
		run.DegenerateTiles, float64(run.Duration)/float64(time.Millisecond),
		run.OutputMin, run.OutputMax, run.OutputMean,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return run.RunID, nil
}

// GetRun loads one run by ID.
func (db *DB) GetRun(runID string) (*AnalysisRun, error) {
	row := db.QueryRow(`
		SELECT run_id, operation, property,
		       window_rows, window_cols, gray_levels,
		       source_rows, source_cols, output_rows, output_cols,
		       degenerate_tiles, duration_ms,
		       output_min, output_max, output_mean, created_at
		FROM analysis_runs WHERE run_id = ?`, runID)

	var run AnalysisRun
	var durationMs float64
	err := row.Scan(
		&run.RunID, &run.Operation, &run.Property,
		&run.WindowRows, &run.WindowCols, &run.GrayLevels,
		&run.SourceRows, &run.SourceCols, &run.OutputRows, &run.OutputCols,
		&run.DegenerateTiles, &durationMs,
		&run.OutputMin, &run.OutputMax, &run.OutputMean, &run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis run %s: %w", runID, err)
	}
	run.Duration = time.Duration(durationMs * float64(time.Millisecond))
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*AnalysisRun, error) {
	rows, err := db.Query(`
		SELECT run_id, operation, property,
		       window_rows, window_cols, gray_levels,
		       source_rows, source_cols, output_rows, output_cols,
		       degenerate_tiles, duration_ms,
		       output_min, output_max, output_mean, created_at
		FROM analysis_runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		var durationMs float64
		if err := rows.Scan(
			&run.RunID, &run.Operation, &run.Property,
			&run.WindowRows, &run.WindowCols, &run.GrayLevels,
			&run.SourceRows, &run.SourceCols, &run.OutputRows, &run.OutputCols,
			&run.DegenerateTiles, &durationMs,
			&run.OutputMin, &run.OutputMax, &run.OutputMean, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		run.Duration = time.Duration(durationMs * float64(time.Millisecond))
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// InsertGridSnapshot stores a compressed copy of an output grid for the
// given run.
func (db *DB) InsertGridSnapshot(runID string, grid *raster.Grid) (int64, error) {
	blob, err := serializeGrid(grid.Data)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize grid for run %s: %w", runID, err)
	}
	res, err := db.Exec(`
		INSERT INTO grid_snapshots (run_id, rows, cols, grid_blob)
		VALUES (?, ?, ?, ?)`,
		runID, grid.Rows, grid.Cols, blob)
	if err != nil {
		return 0, fmt.Errorf("failed to insert grid snapshot for run %s: %w", runID, err)
	}
	return res.LastInsertId()
}

// LoadGridSnapshot restores the most recent snapshot stored for a run.
func (db *DB) LoadGridSnapshot(runID string) (*raster.Grid, error) {
	row := db.QueryRow(`
		SELECT rows, cols, grid_blob FROM grid_snapshots
		WHERE run_id = ? ORDER BY snapshot_id DESC LIMIT 1`, runID)

	var rows, cols int
	var blob []byte
	if err := row.Scan(&rows, &cols, &blob); err != nil {
		return nil, fmt.Errorf("failed to load grid snapshot for run %s: %w", runID, err)
	}
	data, err := deserializeGrid(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize grid snapshot for run %s: %w", runID, err)
	}
	return raster.GridFromSlice(rows, cols, data)
}
