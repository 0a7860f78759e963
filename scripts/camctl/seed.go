package main

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"surveillance-map/be/config"
	"surveillance-map/be/database"
	"surveillance-map/be/logging"
	"surveillance-map/be/models"
	"surveillance-map/be/seed"
	"surveillance-map/be/services"
	"surveillance-map/be/store"
)

var (
	seedPerthCSV    string
	seedEnforcement bool
	seedAI          bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load bundled datasets directly into the configured store",
	Long: `Seed reads the same environment as the server (STORE_BACKEND,
CAMERAS_DB_FILE, DB_*) and merges the selected datasets into the store.
Re-running replaces previously seeded records; user submitted cameras are
kept.`,
	Example: `  camctl seed --enforcement --ai
  camctl seed --perth perth_cameras_raw.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()
		logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

		sources := selectedSources()
		if len(sources) == 0 {
			return fmt.Errorf("choose at least one of --perth, --enforcement or --ai")
		}

		backend, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		var added map[string]int
		var applyErr error
		cameras, err := services.NewCameraService(backend, nil).Replace(cmd.Context(), func(existing []models.Camera) []models.Camera {
			merged, counts, err := seed.Apply(existing, sources...)
			if err != nil {
				applyErr = err
				return existing
			}
			added = counts
			return merged
		})
		if applyErr != nil {
			return applyErr
		}
		if err != nil {
			return err
		}

		names := make([]string, 0, len(added))
		for name := range added {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-12s %d cameras\n", name, added[name])
		}
		fmt.Printf("Store %s now holds %d cameras\n", backend.Name(), len(cameras))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedPerthCSV, "perth", "", "City of Perth CCTV CSV export")
	seedCmd.Flags().BoolVar(&seedEnforcement, "enforcement", false, "WA Police speed and red-light cameras")
	seedCmd.Flags().BoolVar(&seedAI, "ai", false, "WA Police AI detection cameras")
}

func selectedSources() []seed.Source {
	builtin := seed.Builtin()
	var sources []seed.Source
	if seedPerthCSV != "" {
		sources = append(sources, seed.PerthCSV(seedPerthCSV))
	}
	if seedEnforcement {
		sources = append(sources, builtin["enforcement"])
	}
	if seedAI {
		sources = append(sources, builtin["ai"])
	}
	return sources
}

func openStore(cfg *config.Config) (store.Backend, error) {
	if cfg.Store.Backend == "postgres" {
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		return store.NewGormBackend(db), nil
	}
	return store.Open(cfg.Store)
}
