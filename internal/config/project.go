// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

// Profile returns the named profile.
func (p *Project) Profile(name string) (*Profile, error) {
	for _, prof := range p.Profiles {
		if prof.Name == name {
			return prof, nil
		}
	}
	return nil, &UnknownProfileError{Name: name}
}

// Task returns the named task.
func (p *Project) Task(name string) (*Task, error) {
	for _, t := range p.Tasks {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, &UnknownTaskError{Name: name}
}

// TaskNamesForProfile returns a copy of the profile's ordered task list.
func (p *Project) TaskNamesForProfile(name string) ([]string, error) {
	prof, err := p.Profile(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(prof.Tasks))
	copy(out, prof.Tasks)
	return out, nil
}

// Extension returns the settings declared for an extension, if any.
func (p *Project) Extension(id string) (*Extension, bool) {
	for _, ext := range p.Extensions {
		if ext.ID == id {
			return ext, true
		}
	}
	return nil, false
}
