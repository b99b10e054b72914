// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package themes loads the watch-theme configuration and matches themes
// against item text. Matching is read-only per run: the loaded theme slice is
// passed explicitly into Match, never held as process state.
package themes

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/signal-triage/pkg/types"
)

// File is the on-disk representation of the theme configuration.
type File struct {
	ActiveThemes []types.Theme `json:"active_themes" yaml:"active_themes"`
}

// Load reads the theme configuration from path. A missing file is not an
// error: the pipeline runs with no themes and no theme boosts. A present but
// unparseable file is an error, since silently dropping every theme would be
// indistinguishable from a quiet config typo.
func Load(path string) ([]types.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading themes file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing themes file %s: %w", path, err)
	}
	return f.ActiveThemes, nil
}

// Summary returns the active theme names joined for display, capped at 160
// characters.
func Summary(ts []types.Theme) string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	s := strings.Join(names, ", ")
	// Cap on a rune boundary so a multi-byte theme name never gets split
	// into invalid UTF-8.
	if utf8.RuneCountInString(s) > 160 {
		s = string([]rune(s)[:160])
	}
	return s
}
