// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ValidationError reports a malformed item field. Items failing validation
// are excluded from scoring and counted as dropped, never silently zero-scored.
type ValidationError struct {
	// Field names the offending field (e.g. "title", "category").
	Field string

	// Msg describes what was wrong with it.
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item: %s: %s", e.Field, e.Msg)
}

// ConfigError reports a configuration the engine cannot run with, detected
// at load time.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Msg
}
