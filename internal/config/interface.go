// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the file at path and translates it into the
	// format-agnostic project model. Implementations do not validate
	// cross references; callers run Project.Validate.
	Load(ctx context.Context, path string) (*Project, error)
}
