// Package storage provides SQLite-based persistence for search run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrInvalidRun is returned when a run is missing required fields.
var ErrInvalidRun = errors.New("storage: invalid run")

// timeLayout is how created_at is stored; it sorts lexically.
const timeLayout = "2006-01-02 15:04:05.000000"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Mode is how a run was driven.
type Mode string

const (
	ModeAnimated Mode = "animated" // stepped on a timer in the visualizer
	ModeInstant  Mode = "instant"  // drained at once from the visualizer
	ModeBatch    Mode = "batch"    // drained from the command line
)

// Run represents a single finished search.
type Run struct {
	ID          string
	MazeID      string
	Heuristic   string
	Diagonal    bool
	TieBreak    string
	Found       bool
	PathLength  int
	PathCost    float64
	Expanded    int
	Steps       int
	MaxFrontier int
	Walls       int
	Mode        Mode
	Session     string // SSH user, empty for local runs
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			maze_id TEXT NOT NULL,
			heuristic TEXT NOT NULL,
			diagonal INTEGER NOT NULL DEFAULT 0,
			tie_break TEXT NOT NULL,
			found INTEGER NOT NULL DEFAULT 0,
			path_length INTEGER NOT NULL DEFAULT 0,
			path_cost REAL NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			max_frontier INTEGER NOT NULL DEFAULT 0,
			walls INTEGER NOT NULL DEFAULT 0,
			mode TEXT NOT NULL,
			session TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_maze_id ON runs(maze_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(maze_id, found DESC, path_cost, expanded);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished search. A missing ID is filled with a new
// UUID and a zero CreatedAt with the current time.
// Returns the ID of the stored run.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.MazeID == "" {
		return "", fmt.Errorf("%w: maze id is empty", ErrInvalidRun)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.Mode == "" {
		run.Mode = ModeBatch
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, maze_id, heuristic, diagonal, tie_break, found, path_length, path_cost,
		  expanded, steps, max_frontier, walls, mode, session, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.MazeID,
		run.Heuristic,
		run.Diagonal,
		run.TieBreak,
		run.Found,
		run.PathLength,
		run.PathCost,
		run.Expanded,
		run.Steps,
		run.MaxFrontier,
		run.Walls,
		string(run.Mode),
		run.Session,
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

const runColumns = `id, maze_id, heuristic, diagonal, tie_break, found, path_length, path_cost,
	expanded, steps, max_frontier, walls, mode, session, created_at`

// bestOrder ranks solved runs first, then cheaper paths, then less work.
const bestOrder = `found DESC, path_cost ASC, expanded ASC, seq ASC`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var mode string
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.MazeID,
		&r.Heuristic,
		&r.Diagonal,
		&r.TieBreak,
		&r.Found,
		&r.PathLength,
		&r.PathCost,
		&r.Expanded,
		&r.Steps,
		&r.MaxFrontier,
		&r.Walls,
		&mode,
		&r.Session,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Mode = Mode(mode)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RecentRuns retrieves the most recent runs across all mazes.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsForMaze retrieves the best runs for the given maze.
// Solved runs come first, ordered by path cost then by cells expanded.
func (s *Store) RunsForMaze(mazeID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE maze_id = ?
		 ORDER BY `+bestOrder+`
		 LIMIT ?`,
		mazeID, limit,
	)
}

// BestRun returns the top-ranked run for the given maze.
// Returns nil if the maze has no runs.
func (s *Store) BestRun(mazeID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE maze_id = ?
		 ORDER BY `+bestOrder+`
		 LIMIT 1`,
		mazeID,
	)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &r, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// ClearRuns deletes all runs for the given maze, or every run when
// mazeID is empty. Returns the number of deleted runs.
func (s *Store) ClearRuns(mazeID string) (int64, error) {
	var res sql.Result
	var err error
	if mazeID == "" {
		res, err = s.db.Exec("DELETE FROM runs")
	} else {
		res, err = s.db.Exec("DELETE FROM runs WHERE maze_id = ?", mazeID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// MazeStats contains aggregated statistics for a maze.
type MazeStats struct {
	MazeID      string
	Runs        int
	Solved      int
	BestCost    float64 // cheapest solved path, 0 when none
	AvgExpanded float64
	LastRun     time.Time
}

// GetMazeStats retrieves aggregated statistics for a specific maze.
func (s *Store) GetMazeStats(mazeID string) (*MazeStats, error) {
	stats := &MazeStats{MazeID: mazeID}

	var lastRun sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(found), 0),
		        COALESCE(MIN(CASE WHEN found THEN path_cost END), 0),
		        COALESCE(AVG(expanded), 0),
		        MAX(created_at)
		 FROM runs WHERE maze_id = ?`,
		mazeID,
	).Scan(&stats.Runs, &stats.Solved, &stats.BestCost, &stats.AvgExpanded, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get maze stats: %w", err)
	}
	if lastRun.Valid {
		stats.LastRun = parseTime(lastRun.String)
	}

	return stats, nil
}

// GetAllMazeStats retrieves statistics for every maze that has runs.
func (s *Store) GetAllMazeStats() (map[string]*MazeStats, error) {
	rows, err := s.db.Query(
		`SELECT maze_id,
		        COUNT(*),
		        COALESCE(SUM(found), 0),
		        COALESCE(MIN(CASE WHEN found THEN path_cost END), 0),
		        AVG(expanded),
		        MAX(created_at)
		 FROM runs
		 GROUP BY maze_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all maze stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MazeStats)
	for rows.Next() {
		var ms MazeStats
		var lastRun string
		if err := rows.Scan(&ms.MazeID, &ms.Runs, &ms.Solved, &ms.BestCost, &ms.AvgExpanded, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ms.LastRun = parseTime(lastRun)
		stats[ms.MazeID] = &ms
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
