package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/warnodata/extractor/internal/config"
	"github.com/warnodata/extractor/internal/lookup"
	"github.com/warnodata/extractor/internal/ndf"
	"github.com/warnodata/extractor/internal/parser"
)

// ErrNoInputs is returned when no pattern matches a descriptor dump.
var ErrNoInputs = errors.New("no input files matched")

// expandInputs resolves doublestar patterns to .json and .kdl files. Files
// keep pattern order, sorted within each pattern, and appear once.
func expandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			switch filepath.Ext(m) {
			case ".json", ".kdl":
			default:
				continue
			}
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%v: %w", patterns, ErrNoInputs)
	}
	return files, nil
}

// loadCatalog decodes every file into one catalog. Later files override
// descriptors of the same name.
func loadCatalog(files []string, logger *slog.Logger) (*ndf.Catalog, error) {
	catalog := ndf.NewCatalog()
	for _, path := range files {
		nodes, err := ndf.LoadFile(path)
		if err != nil {
			return nil, err
		}
		catalog.Add(nodes...)
		logger.Debug("Loaded descriptor file", "path", path, "nodes", len(nodes))
	}

	logger.Info("Descriptor catalog loaded",
		"files", len(files),
		"units", len(catalog.Units),
		"ammunition", len(catalog.Ammo),
		"missiles", len(catalog.Missiles),
		"smoke", len(catalog.Smoke),
		"weaponManagers", len(catalog.WeaponManagers),
	)
	return catalog, nil
}

// buildParser loads the unit card table and speed modifiers named in the
// config and returns a parser over catalog.
func buildParser(catalog *ndf.Catalog, logger *slog.Logger) (*parser.Parser, error) {
	cards, err := lookup.LoadTable(config.GetString("unitCardsFile"))
	if err != nil {
		return nil, err
	}
	modifiers, err := config.LoadSpeedModifiers(config.GetString("speedModifiersFile"))
	if err != nil {
		return nil, err
	}

	logger.Debug("Lookup data loaded", "unitCards", cards.Len(), "speedModifiers", len(modifiers))
	return parser.NewParser(logger, catalog, cards, modifiers), nil
}
