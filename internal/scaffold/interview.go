package scaffold

import (
	"fmt"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/session"
)

// interview asks for the project's name and description and then runs the
// profile loop: profiles are defined until `default` is entered a second
// time, and a profile's tasks until an empty task name.
func interview(opts Options, p session.Prompter) (*config.Project, error) {
	if p == nil {
		return nil, fmt.Errorf("interactive init requires a prompter")
	}
	project := &config.Project{}

	var err error
	if project.Name, err = p.Ask("Project Name (<vendor>/<name>)", opts.Name); err != nil {
		return nil, err
	}
	if project.Description, err = p.Ask("Description", opts.Description); err != nil {
		return nil, err
	}

	define, err := p.Confirm("Would you like to define your profiles?", true)
	if err != nil || !define {
		return project, err
	}

	tasks := map[string]*config.Task{}
	for {
		name, err := p.Ask("Profile Name", config.DefaultProfile)
		if err != nil {
			return nil, err
		}
		if name == config.DefaultProfile {
			if _, err := project.Profile(name); err == nil {
				break
			}
		}
		prof := &config.Profile{Name: name}
		if prof.Description, err = p.Ask("Description", ""); err != nil {
			return nil, err
		}

		for {
			taskName, err := p.Ask("Task name", "")
			if err != nil {
				return nil, err
			}
			if taskName == "" {
				break
			}
			desc, err := p.Ask("Task Description", "")
			if err != nil {
				return nil, err
			}
			if t, ok := tasks[taskName]; ok {
				if desc != "" {
					t.Description = desc
				}
			} else {
				t := &config.Task{Name: taskName, Description: desc}
				tasks[taskName] = t
				project.Tasks = append(project.Tasks, t)
			}
			prof.Tasks = append(prof.Tasks, taskName)
		}

		if existing, err := project.Profile(name); err == nil {
			*existing = *prof
		} else {
			project.Profiles = append(project.Profiles, prof)
		}
	}
	return project, nil
}
