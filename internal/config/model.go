// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file holds the format-agnostic build model. Loaders produce it whole;
// nothing downstream of loading mutates it.

package config

// DefaultProfile is the profile used when none is requested.
const DefaultProfile = "default"

// Project is the unified, format-agnostic representation of a build
// configuration file.
type Project struct {
	Name        string
	Description string
	Profiles    []*Profile
	Tasks       []*Task
	Extensions  []*Extension
	// Source is the file the project was loaded from, if any.
	Source string
}

// Profile is a named, ordered selection of tasks.
type Profile struct {
	Name        string
	Description string
	Tasks       []string
}

// Task is a named, ordered sequence of calls. Call order is preserved
// exactly as declared.
type Task struct {
	Name        string
	Description string
	Calls       []*Call
}

// Call is one configured unit of work. Type selects the handler.
type Call struct {
	Type         string
	Arguments    []string
	FailOnError  bool
	SuccessCodes []int
	Fileset      []string
	Options      Options
}

// Extension carries the settings an extension module receives at
// registration time.
type Extension struct {
	ID      string
	Options Options
}

// DefaultSuccessCodes is the success status code set used when a call does
// not declare its own.
func DefaultSuccessCodes() []int {
	return []int{0}
}

// Codes returns the call's success codes, falling back to the default set.
func (c *Call) Codes() []int {
	if len(c.SuccessCodes) == 0 {
		return DefaultSuccessCodes()
	}
	return c.SuccessCodes
}

// HasFileset reports whether the call declares at least one fileset pattern.
func (c *Call) HasFileset() bool {
	return len(c.Fileset) > 0
}
