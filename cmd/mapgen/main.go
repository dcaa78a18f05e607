// Command mapgen generates two-continent maps and optionally records each
// run in a SQLite ledger for comparing seeds and parameters.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/talgya/continents/internal/mapgen"
	"github.com/talgya/continents/internal/noise"
	"github.com/talgya/continents/internal/persistence"
	"github.com/talgya/continents/internal/world"
)

func main() {
	cfg := mapgen.DefaultConfig()

	width := flag.Int("width", envIntOrDefault("CONTINENTS_WIDTH", cfg.Width), "map width in cells")
	height := flag.Int("height", envIntOrDefault("CONTINENTS_HEIGHT", cfg.Height), "map height in cells")
	seed := flag.Int64("seed", int64(envIntOrDefault("CONTINENTS_SEED", 0)), "random seed (0 = random)")
	backend := flag.String("noise", envOrDefault("CONTINENTS_NOISE", string(noise.BackendSimplex)), "noise backend: simplex or perlin")
	players := flag.Int("players", cfg.Players, "start sectors to reserve")
	runs := flag.Int("runs", 1, "number of consecutive seeds to generate")
	dbPath := flag.String("db", envOrDefault("CONTINENTS_DB", ""), "SQLite ledger path (empty = no ledger)")
	history := flag.Int("history", 0, "list the N most recent ledger runs and exit")
	ascii := flag.Bool("ascii", true, "print the generated map")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Ledger ────────────────────────────────────────────────────────
	var db *persistence.DB
	if *dbPath != "" {
		if dir := filepath.Dir(*dbPath); dir != "." {
			os.MkdirAll(dir, 0755)
		}
		var err error
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open ledger", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("ledger opened", "path", *dbPath)
	}

	if *history > 0 {
		if db == nil {
			slog.Error("-history requires -db")
			os.Exit(1)
		}
		if err := printHistory(db, *history); err != nil {
			slog.Error("failed to read ledger", "error", err)
			os.Exit(1)
		}
		return
	}

	// ── Config ────────────────────────────────────────────────────────
	b, err := noise.ParseBackend(*backend)
	if err != nil {
		slog.Error("bad noise backend", "error", err)
		os.Exit(1)
	}
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	cfg.Backend = b
	cfg.Players = *players

	// ── Generate ──────────────────────────────────────────────────────
	for i := 0; i < max(*runs, 1); i++ {
		m, err := mapgen.Generate(cfg)
		if err != nil {
			slog.Error("generation failed", "error", err)
			os.Exit(1)
		}

		logSummary(m)
		if *ascii {
			fmt.Print(m.ASCII())
		}

		if db != nil {
			run, rejections := persistence.RunFromMap(m)
			if err := db.SaveRun(run, rejections); err != nil {
				slog.Error("failed to record run", "run", run.ID, "error", err)
			}
		}

		// Next run continues from the seed actually used.
		cfg.Seed = m.Seed + 1
	}
}

func logSummary(m *mapgen.Map) {
	counts := m.Grid.Counts()
	terrains := make([]world.Terrain, 0, len(counts))
	for t := range counts {
		terrains = append(terrains, t)
	}
	sort.Slice(terrains, func(i, j int) bool { return terrains[i] < terrains[j] })

	total := m.Grid.Width * m.Grid.Height
	for _, t := range terrains {
		c := counts[t]
		slog.Info("terrain",
			"type", t.String(),
			"count", humanize.Comma(int64(c)),
			"share", humanize.FtoaWithDigits(float64(c)*100/float64(total), 1)+"%",
		)
	}
	slog.Info("run summary",
		"run", m.RunID,
		"seed", m.Seed,
		"attempts", m.Landmass.Attempts,
		"rejections", len(m.Landmass.Rejections),
		"fell_back", m.Landmass.FellBack,
		"biggest_continent", humanize.Comma(int64(m.Landmass.Biggest)),
		"west_land", m.Tags.WestLandmass,
		"east_land", m.Tags.EastLandmass,
		"islands", m.Tags.Islands,
	)
}

func printHistory(db *persistence.DB, limit int) error {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  seed=%-20d %dx%d %-7s attempts=%-3d fell_back=%-5t land=%s  (%s)\n",
			r.ID, r.Seed, r.Width, r.Height, r.Backend, r.Attempts, r.FellBack,
			humanize.Comma(int64(r.LandTiles)), humanize.Time(r.CreatedAt))

		rejections, err := db.Rejections(r.ID)
		if err != nil {
			return err
		}
		for _, rj := range rejections {
			fmt.Printf("    attempt %d: %s (chopped=%d biggest=%d)\n", rj.Attempt, rj.Reason, rj.Chopped, rj.Biggest)
		}
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
