package registry

import (
	"fmt"

	"github.com/vk/bldrgo/internal/config"
)

// Check resolves the type of every call in the project and reports those
// that would fail at execution time. It does not stop a build; the
// executor raises the same errors when it reaches the call.
func (r *Registry) Check(project *config.Project) []error {
	var errs []error
	seen := make(map[string]struct{})
	for _, task := range project.Tasks {
		for _, c := range task.Calls {
			if _, done := seen[c.Type]; done {
				continue
			}
			seen[c.Type] = struct{}{}
			if _, err := r.Resolve(c.Type); err != nil {
				errs = append(errs, fmt.Errorf("task '%s': %w", task.Name, err))
			}
		}
	}
	return errs
}
