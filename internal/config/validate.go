// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the eager project checks run once after loading.

package config

import "fmt"

// Validate checks the structural invariants of a project: a non-empty
// name, unique profile and task names, profile references that resolve,
// and well-formed calls. All problems are reported together.
func (p *Project) Validate() error {
	var problems []string

	if p.Name == "" {
		problems = append(problems, "project name is required")
	}

	tasks := make(map[string]struct{}, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.Name == "" {
			problems = append(problems, "task with an empty name")
			continue
		}
		if _, dup := tasks[t.Name]; dup {
			problems = append(problems, fmt.Sprintf("task '%s' is declared more than once", t.Name))
		}
		tasks[t.Name] = struct{}{}

		for i, c := range t.Calls {
			if c == nil || c.Type == "" {
				problems = append(problems, fmt.Sprintf("task '%s', call #%d: missing type", t.Name, i+1))
				continue
			}
			if c.SuccessCodes != nil && len(c.SuccessCodes) == 0 {
				problems = append(problems, fmt.Sprintf("task '%s', call #%d: success codes must not be empty", t.Name, i+1))
			}
		}
	}

	profiles := make(map[string]struct{}, len(p.Profiles))
	for _, prof := range p.Profiles {
		if prof.Name == "" {
			problems = append(problems, "profile with an empty name")
			continue
		}
		if _, dup := profiles[prof.Name]; dup {
			problems = append(problems, fmt.Sprintf("profile '%s' is declared more than once", prof.Name))
		}
		profiles[prof.Name] = struct{}{}

		for _, name := range prof.Tasks {
			if _, ok := tasks[name]; !ok {
				problems = append(problems, fmt.Sprintf("profile '%s' references unknown task '%s'", prof.Name, name))
			}
		}
	}

	exts := make(map[string]struct{}, len(p.Extensions))
	for _, ext := range p.Extensions {
		if _, dup := exts[ext.ID]; dup {
			problems = append(problems, fmt.Sprintf("extension '%s' is declared more than once", ext.ID))
		}
		exts[ext.ID] = struct{}{}
	}

	if len(problems) > 0 {
		return &ConfigError{Source: p.Source, Problems: problems}
	}
	return nil
}
