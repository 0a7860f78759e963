package seed

import (
	"fmt"
	"os"

	"surveillance-map/be/logging"
	"surveillance-map/be/models"
)

// Merge drops every record matched by stale and appends fresh. User-submitted
// records are never dropped.
func Merge(existing []models.Camera, stale func(models.Camera) bool, fresh []models.Camera) []models.Camera {
	out := make([]models.Camera, 0, len(existing)+len(fresh))
	for _, c := range existing {
		if c.DataSource != models.DataSourceUserSubmitted && stale(c) {
			continue
		}
		out = append(out, c)
	}
	return append(out, fresh...)
}

// Source is a named dataset that can be merged into the collection.
type Source struct {
	Name    string
	Matches func(models.Camera) bool
	Cameras func() ([]models.Camera, error)
}

// Builtin returns the datasets compiled into the binary.
func Builtin() map[string]Source {
	return map[string]Source{
		"enforcement": {
			Name:    "enforcement",
			Matches: IsEnforcement,
			Cameras: func() ([]models.Camera, error) { return EnforcementCameras(), nil },
		},
		"ai": {
			Name:    "ai",
			Matches: IsAI,
			Cameras: func() ([]models.Camera, error) { return AICameras(), nil },
		},
	}
}

// Apply merges each source into cameras in order and reports how many
// records each one contributed.
func Apply(cameras []models.Camera, sources ...Source) ([]models.Camera, map[string]int, error) {
	added := make(map[string]int, len(sources))
	for _, src := range sources {
		fresh, err := src.Cameras()
		if err != nil {
			return nil, nil, err
		}
		cameras = Merge(cameras, src.Matches, fresh)
		added[src.Name] = len(fresh)
	}
	return cameras, added, nil
}

// PerthCSV is a Source backed by a City of Perth CSV export on disk.
func PerthCSV(path string) Source {
	return Source{
		Name:    "perth",
		Matches: IsPerth,
		Cameras: func() ([]models.Camera, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			res, err := ParsePerthCSV(f)
			if err != nil {
				return nil, err
			}
			if res.Skipped > 0 {
				logging.Warn().Int("skipped", res.Skipped).Str("file", path).Msg("Skipped unparseable CSV rows")
			}
			return res.Cameras, nil
		},
	}
}
