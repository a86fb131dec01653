// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"fmt"
	"strings"
)

// UnknownProfileError is returned when a profile name is not declared.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile '%s'", e.Name)
}

// UnknownTaskError is returned when a task name is not declared.
type UnknownTaskError struct {
	Name string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task '%s'", e.Name)
}

// ConfigError collects every problem found while validating a project.
// A build never starts when one is returned.
type ConfigError struct {
	Source   string
	Problems []string
}

func (e *ConfigError) Error() string {
	prefix := "invalid configuration"
	if e.Source != "" {
		prefix = fmt.Sprintf("invalid configuration in %s", e.Source)
	}
	return fmt.Sprintf("%s:\n- %s", prefix, strings.Join(e.Problems, "\n- "))
}
