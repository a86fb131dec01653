package yamlconf

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Call keys with a meaning of their own; every other key is an option.
const (
	keyType         = "type"
	keyArguments    = "arguments"
	keyFailOnError  = "failOnError"
	keySuccessCodes = "successCodes"
	keyFileset      = "fileset"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and translates a single project file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Project, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.Parse(ctx, path, src)
}

// Parse translates YAML source into a project. filename is used in error
// messages and recorded as the project's source.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "file", filename)

	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}

	project := &config.Project{Source: filename}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		logger.Debug("YAML document is empty.")
		return project, nil
	}
	if err := decodeProject(doc.Content[0], project); err != nil {
		return nil, fmt.Errorf("in %s: %w", filename, err)
	}

	logger.Debug("YAML loading complete.", "profiles", len(project.Profiles), "tasks", len(project.Tasks), "extensions", len(project.Extensions))
	return project, nil
}

func decodeProject(root *yaml.Node, p *config.Project) error {
	return eachPair(root, "project", func(key string, val *yaml.Node) error {
		switch key {
		case "name":
			return decodeScalar(val, key, &p.Name)
		case "description":
			return decodeScalar(val, key, &p.Description)
		case "profiles":
			return eachPair(val, key, func(name string, body *yaml.Node) error {
				prof, err := decodeProfile(name, body)
				if err != nil {
					return err
				}
				p.Profiles = append(p.Profiles, prof)
				return nil
			})
		case "tasks":
			return eachPair(val, key, func(name string, body *yaml.Node) error {
				task, err := decodeTask(name, body)
				if err != nil {
					return err
				}
				p.Tasks = append(p.Tasks, task)
				return nil
			})
		case "extensions":
			return eachPair(val, key, func(id string, body *yaml.Node) error {
				opts, err := decodeOptions(body, nil)
				if err != nil {
					return fmt.Errorf("extension '%s': %w", id, err)
				}
				p.Extensions = append(p.Extensions, &config.Extension{ID: id, Options: opts})
				return nil
			})
		}
		return fmt.Errorf("line %d: unknown key '%s'", val.Line, key)
	})
}

func decodeProfile(name string, node *yaml.Node) (*config.Profile, error) {
	prof := &config.Profile{Name: name}
	// A bare list is shorthand for the profile's tasks.
	if node.Kind == yaml.SequenceNode {
		if err := node.Decode(&prof.Tasks); err != nil {
			return nil, fmt.Errorf("profile '%s': line %d: %w", name, node.Line, err)
		}
		return prof, nil
	}
	err := eachPair(node, "profile '"+name+"'", func(key string, val *yaml.Node) error {
		switch key {
		case "description":
			return decodeScalar(val, key, &prof.Description)
		case "tasks":
			if err := val.Decode(&prof.Tasks); err != nil {
				return fmt.Errorf("line %d: tasks must be a list of task names", val.Line)
			}
			return nil
		}
		return fmt.Errorf("line %d: unknown key '%s'", val.Line, key)
	})
	if err != nil {
		return nil, fmt.Errorf("profile '%s': %w", name, err)
	}
	return prof, nil
}

func decodeTask(name string, node *yaml.Node) (*config.Task, error) {
	task := &config.Task{Name: name}
	err := eachPair(node, "task '"+name+"'", func(key string, val *yaml.Node) error {
		switch key {
		case "description":
			return decodeScalar(val, key, &task.Description)
		case "calls":
			if isNull(val) {
				return nil
			}
			if val.Kind != yaml.SequenceNode {
				return fmt.Errorf("line %d: calls must be a list", val.Line)
			}
			for i, cn := range val.Content {
				c, err := decodeCall(deref(cn))
				if err != nil {
					return fmt.Errorf("call #%d: %w", i+1, err)
				}
				task.Calls = append(task.Calls, c)
			}
			return nil
		}
		return fmt.Errorf("line %d: unknown key '%s'", val.Line, key)
	})
	if err != nil {
		return nil, fmt.Errorf("task '%s', %w", name, err)
	}
	return task, nil
}
