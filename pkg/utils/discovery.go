package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdforge/lmpgen/pkg/deck"
	"github.com/mdforge/lmpgen/pkg/logger"
)

// DeckInfo contains information about a discovered deck file
type DeckInfo struct {
	Name       string
	Path       string
	Directives int
	RunSteps   int
	Violations int
}

// DiscoverDecks finds loadable deck documents in the given directories.
// Files that fail to parse are reported and skipped; results are sorted by
// path so listings stay stable.
func DiscoverDecks(dirs []string) ([]DeckInfo, error) {
	var decks []DeckInfo

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !isDeckFile(path) {
				return nil
			}

			d, err := deck.LoadFile(path)
			if err != nil {
				logger.Warnf("skipping %s: %v", path, err)
				return nil
			}

			_, violations := d.Validate()
			decks = append(decks, DeckInfo{
				Name:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
				Path:       path,
				Directives: len(d.Directives),
				RunSteps:   d.Runs(),
				Violations: len(violations),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(decks, func(i, j int) bool { return decks[i].Path < decks[j].Path })
	return decks, nil
}

func isDeckFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
