// Package persistence provides a SQLite ledger of generation runs, used to
// compare seeds and tuning parameters across many runs.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/continents/internal/landmass"
	"github.com/talgya/continents/internal/mapgen"
)

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn *sqlx.DB
}

// Run is one recorded generation run.
type Run struct {
	ID         string    `db:"id"`
	Seed       int64     `db:"seed"`
	Width      int       `db:"width"`
	Height     int       `db:"height"`
	Backend    string    `db:"backend"`
	Attempts   int       `db:"attempts"`
	Accepted   bool      `db:"accepted"`
	FellBack   bool      `db:"fell_back"`
	LandTiles  int       `db:"land_tiles"`
	Biggest    int       `db:"biggest"`
	Eroded     int       `db:"eroded"`
	Islands    int       `db:"islands"`
	ConfigJSON string    `db:"config_json"`
	CreatedAt  time.Time `db:"created_at"`
}

// Rejection is one discarded landmass attempt of a run.
type Rejection struct {
	RunID   string `db:"run_id"`
	Attempt int    `db:"attempt"`
	Reason  string `db:"reason"`
	Chopped int    `db:"chopped"`
	Biggest int    `db:"biggest"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		backend TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		accepted INTEGER NOT NULL,
		fell_back INTEGER NOT NULL,
		land_tiles INTEGER NOT NULL,
		biggest INTEGER NOT NULL,
		eroded INTEGER NOT NULL,
		islands INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rejections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		attempt INTEGER NOT NULL,
		reason TEXT NOT NULL,
		chopped INTEGER NOT NULL,
		biggest INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rejections_run ON rejections(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunFromMap builds the ledger record for a generated map.
func RunFromMap(m *mapgen.Map) (Run, []Rejection) {
	cfgJSON, _ := json.Marshal(m.Config)
	run := Run{
		ID:         m.RunID.String(),
		Seed:       m.Seed,
		Width:      m.Grid.Width,
		Height:     m.Grid.Height,
		Backend:    string(m.Config.Backend),
		Attempts:   m.Landmass.Attempts,
		Accepted:   m.Landmass.Accepted,
		FellBack:   m.Landmass.FellBack,
		LandTiles:  m.Grid.LandCount(),
		Biggest:    m.Landmass.Biggest,
		Eroded:     m.Erosion[0].Eroded + m.Erosion[1].Eroded,
		Islands:    m.Islands,
		ConfigJSON: string(cfgJSON),
		CreatedAt:  time.Now().UTC(),
	}
	return run, rejectionsFor(run.ID, m.Landmass.Rejections)
}

func rejectionsFor(runID string, rs []landmass.Rejection) []Rejection {
	out := make([]Rejection, 0, len(rs))
	for _, r := range rs {
		out = append(out, Rejection{
			RunID:   runID,
			Attempt: r.Attempt,
			Reason:  r.Reason.String(),
			Chopped: r.Chopped,
			Biggest: r.Biggest,
		})
	}
	return out
}

// SaveRun writes a run and its rejections in one transaction.
func (db *DB) SaveRun(run Run, rejections []Rejection) error {
	if _, err := uuid.Parse(run.ID); err != nil {
		return fmt.Errorf("run id %q: %w", run.ID, err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, seed, width, height, backend, attempts, accepted, fell_back,
		 land_tiles, biggest, eroded, islands, config_json, created_at)
		VALUES (:id, :seed, :width, :height, :backend, :attempts, :accepted, :fell_back,
		 :land_tiles, :biggest, :eroded, :islands, :config_json, :created_at)`, run)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for _, r := range rejections {
		_, err := tx.Exec(
			"INSERT INTO rejections (run_id, attempt, reason, chopped, biggest) VALUES (?, ?, ?, ?, ?)",
			run.ID, r.Attempt, r.Reason, r.Chopped, r.Biggest,
		)
		if err != nil {
			return fmt.Errorf("insert rejection %d: %w", r.Attempt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run saved", "run", run.ID, "rejections", len(rejections))
	return nil
}

// RecentRuns returns the most recent N runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// Rejections returns the rejections recorded for a run, in attempt order.
func (db *DB) Rejections(runID string) ([]Rejection, error) {
	var rs []Rejection
	err := db.conn.Select(&rs,
		"SELECT run_id, attempt, reason, chopped, biggest FROM rejections WHERE run_id = ? ORDER BY attempt",
		runID,
	)
	return rs, err
}
