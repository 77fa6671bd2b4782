// Command bookreports is a terminal client for browsing a shared
// collection of book reviews pushed from a hosted realtime database.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/danielschneider22/bookreports/internal/cache"
	"github.com/danielschneider22/bookreports/internal/config"
	"github.com/danielschneider22/bookreports/internal/logging"
	"github.com/danielschneider22/bookreports/internal/review"
	"github.com/danielschneider22/bookreports/internal/rtdb"
	"github.com/danielschneider22/bookreports/internal/state"
	"github.com/danielschneider22/bookreports/internal/ui"
)

func main() {
	var (
		username  = flag.String("username", "", "restrict the initial view to one reviewer")
		dbURL     = flag.String("db-url", "", "realtime database URL (overrides config)")
		path      = flag.String("path", "", "collection path within the database (overrides config)")
		cachePath = flag.String("cache", "", "snapshot cache file (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}
	if *path != "" {
		cfg.Path = *path
	}
	if *cachePath != "" {
		cfg.CachePath = *cachePath
	}

	if err := logging.Init(); err != nil {
		// Logging is best-effort; the app works without it.
		log.Printf("Warning: logging disabled: %v", err)
	}
	defer logging.Close()

	ctx, cancel := context.WithCancel(context.Background())

	// Snapshot cache: open if possible, continue without it otherwise.
	st := openCache(cfg)
	if st != nil {
		defer st.Close()
	}

	ctrl := state.New()
	ctrl.SeedReviewer(*username)

	loadCache := func() tea.Cmd {
		return func() tea.Msg {
			if st == nil {
				return ui.CacheLoaded{}
			}
			reviews, err := st.Load()
			return ui.CacheLoaded{Reviews: reviews, Err: err}
		}
	}

	app := ui.New(ctrl, loadCache, cfg.UI.ItemLimit)
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Long-lived subscription: every push fully replaces the in-memory
	// snapshot. Context cancellation is the only stop mechanism.
	client := rtdb.NewClient(cfg.DatabaseURL)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := client.Subscribe(ctx, cfg.Path, func(col review.Collection) {
			reviews := review.Flatten(col)
			if st != nil {
				if err := st.Replace(reviews); err != nil {
					logging.Warn("failed to update snapshot cache", "error", err)
				}
			}
			program.Send(ui.SnapshotMsg{Reviews: reviews})
		})
		if err != nil && ctx.Err() == nil {
			logging.Error("subscription ended", "error", err)
		}
	}()

	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}

	// Graceful shutdown
	cancel()
	wg.Wait()
}

// openCache opens the snapshot cache, creating the data directory if
// needed. Returns nil when the cache is unavailable.
func openCache(cfg *config.Config) *cache.Cache {
	path := cfg.CachePath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dataDir := filepath.Join(homeDir, ".bookreports")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil
		}
		path = filepath.Join(dataDir, "bookreports.db")
	}

	st, err := cache.Open(path)
	if err != nil {
		logging.Warn("snapshot cache unavailable", "path", path, "error", err)
		return nil
	}
	return st
}
