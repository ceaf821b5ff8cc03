package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wukongd/wukong/pkg/models"
)

// rulesFile is the on-disk schema for keyword overrides:
//
//	keywords:
//	  fix: [bug, crash, hotfix]
//	  feature: [add, build]
type rulesFile struct {
	Keywords map[string][]string `yaml:"keywords"`
}

// LoadKeywordRules reads a keyword override file. Tracks not listed in
// the file keep their built-in tables, so the returned map contains
// only the overridden tracks.
func LoadKeywordRules(path string) (map[models.Track][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	overrides := make(map[models.Track][]string, len(rf.Keywords))
	for name, words := range rf.Keywords {
		track := models.Track(name)
		if !track.Valid() {
			return nil, fmt.Errorf("rules file %s: unknown track %q", path, name)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("rules file %s: track %q has no keywords", path, name)
		}
		overrides[track] = words
	}

	return overrides, nil
}
