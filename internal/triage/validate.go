// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package triage

import (
	"fmt"
	"strings"

	"github.com/pdiddy/signal-triage/pkg/types"
)

// ValidateItem rejects items the scorer cannot handle. Invalid items are
// excluded from scoring and counted as dropped, never silently zero-scored.
func ValidateItem(item types.Item) error {
	if strings.TrimSpace(item.ID) == "" {
		return &types.ValidationError{Field: "id", Msg: "empty"}
	}
	if strings.TrimSpace(item.Title) == "" {
		return &types.ValidationError{Field: "title", Msg: "empty"}
	}
	// Category drives a scoring rule, so an unknown value is an error,
	// not a default.
	if !item.Category.Valid() {
		return &types.ValidationError{
			Field: "category",
			Msg:   fmt.Sprintf("unknown value %q", string(item.Category)),
		}
	}
	return nil
}
