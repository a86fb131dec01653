package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() *Project {
	return &Project{
		Name: "acme/app",
		Profiles: []*Profile{
			{Name: "default", Tasks: []string{"lint", "build"}},
			{Name: "ci", Tasks: []string{"build", "build"}},
		},
		Tasks: []*Task{
			{Name: "lint", Calls: []*Call{{Type: "exec", Arguments: []string{"go vet ./..."}}}},
			{Name: "build", Calls: []*Call{{Type: "exec", Arguments: []string{"go", "build"}}}},
		},
	}
}

func TestProject_Resolve(t *testing.T) {
	p := sampleProject()

	prof, err := p.Profile("ci")
	require.NoError(t, err)
	assert.Equal(t, "ci", prof.Name)

	task, err := p.Task("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "build"}, task.Calls[0].Arguments)

	_, err = p.Profile("nope")
	var profErr *UnknownProfileError
	require.True(t, errors.As(err, &profErr))
	assert.Equal(t, "nope", profErr.Name)

	_, err = p.Task("nope")
	var taskErr *UnknownTaskError
	require.True(t, errors.As(err, &taskErr))
}

func TestProject_TaskNamesForProfile(t *testing.T) {
	p := sampleProject()

	names, err := p.TaskNamesForProfile("default")
	require.NoError(t, err)
	assert.Equal(t, []string{"lint", "build"}, names)

	// The returned slice is a copy; the model stays untouched.
	names[0] = "mutated"
	again, _ := p.TaskNamesForProfile("default")
	assert.Equal(t, "lint", again[0])

	dups, err := p.TaskNamesForProfile("ci")
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "build"}, dups)
}

func TestCall_Codes(t *testing.T) {
	c := &Call{Type: "exec"}
	assert.Equal(t, []int{0}, c.Codes())

	c.SuccessCodes = []int{0, 2}
	assert.Equal(t, []int{0, 2}, c.Codes())
}

func TestProject_Validate(t *testing.T) {
	t.Run("valid project", func(t *testing.T) {
		require.NoError(t, sampleProject().Validate())
	})

	t.Run("all problems reported together", func(t *testing.T) {
		p := &Project{
			Source: ".bldr.yml",
			Profiles: []*Profile{
				{Name: "default", Tasks: []string{"missing"}},
				{Name: "default"},
			},
			Tasks: []*Task{
				{Name: "a", Calls: []*Call{{Type: ""}}},
				{Name: "a"},
			},
			Extensions: []*Extension{{ID: "x"}, {ID: "x"}},
		}

		err := p.Validate()
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, ".bldr.yml", cfgErr.Source)
		assert.Contains(t, cfgErr.Problems, "project name is required")
		assert.Contains(t, cfgErr.Problems, "task 'a' is declared more than once")
		assert.Contains(t, cfgErr.Problems, "task 'a', call #1: missing type")
		assert.Contains(t, cfgErr.Problems, "profile 'default' is declared more than once")
		assert.Contains(t, cfgErr.Problems, "profile 'default' references unknown task 'missing'")
		assert.Contains(t, cfgErr.Problems, "extension 'x' is declared more than once")
		assert.Contains(t, err.Error(), "invalid configuration in .bldr.yml")
	})

	t.Run("declared empty success codes", func(t *testing.T) {
		p := sampleProject()
		p.Tasks[0].Calls[0].SuccessCodes = []int{}

		err := p.Validate()
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, cfgErr.Problems, "task '"+p.Tasks[0].Name+"', call #1: success codes must not be empty")
	})
}
