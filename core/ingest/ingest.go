// Package ingest loads catalog track data into the store. Tracks arrive as
// JSON files (one track object or an array of them) dropped into an import
// directory, either imported once via the CLI or continuously by the watcher.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"SqueezeFM/logger"
	"SqueezeFM/model"
	"SqueezeFM/repository"
)

// ImportFile loads one JSON file into the catalog and returns how many
// tracks were created. Facet fields in the payload may be scalar strings or
// arrays; the model normalizes both shapes during unmarshalling.
func ImportFile(path string, repo repository.TrackRepository) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read import file %s: %w", path, err)
	}

	var tracks []*model.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		var single model.Track
		if err := json.Unmarshal(data, &single); err != nil {
			return 0, fmt.Errorf("failed to parse import file %s: %w", path, err)
		}
		tracks = []*model.Track{&single}
	}

	created := 0
	for _, track := range tracks {
		if strings.TrimSpace(track.Title) == "" {
			logger.Warn("Skipping track with empty title", logger.String("file", path))
			continue
		}
		id, err := repo.CreateTrack(track)
		if err != nil {
			return created, fmt.Errorf("failed to import track %q: %w", track.Title, err)
		}
		track.ID = id
		created++
	}
	return created, nil
}

// ImportDir loads every .json file in a directory, non-recursively.
func ImportDir(dir string, repo repository.TrackRepository) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read import directory %s: %w", dir, err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		count, err := ImportFile(filepath.Join(dir, entry.Name()), repo)
		total += count
		if err != nil {
			return total, err
		}
		logger.Info("Imported catalog file",
			logger.String("file", entry.Name()),
			logger.Int("tracks", count))
	}
	return total, nil
}
