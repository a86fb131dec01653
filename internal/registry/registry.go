package registry

import (
	"fmt"
	"sort"

	"github.com/vk/bldrgo/internal/call"
)

// entry is one registration. Entries are kept in registration order and
// searched by tag, so a lookup can observe more than one match.
type entry struct {
	tag     string
	module  string
	factory call.Factory
}

// Registry holds the call type registrations for a single application
// instance.
type Registry struct {
	entries []entry
	sealed  bool
	// module is the ID of the module currently registering, for messages.
	module string
}

// New creates an empty, unsealed Registry.
func New() *Registry {
	return &Registry{}
}

// Register associates tag with factory. It never overwrites: a tag that
// already has an entry yields a DuplicateRegistrationError and leaves the
// registry unchanged.
func (r *Registry) Register(tag string, factory call.Factory) error {
	if r.sealed {
		return fmt.Errorf("register '%s': %w", tag, ErrSealed)
	}
	if tag == "" {
		return fmt.Errorf("call type tag must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("call type '%s': factory must not be nil", tag)
	}
	for _, e := range r.entries {
		if e.tag == tag {
			return &DuplicateRegistrationError{Tag: tag, Module: e.module}
		}
	}
	r.entries = append(r.entries, entry{tag: tag, module: r.module, factory: factory})
	return nil
}

// Resolve returns the factory registered for tag.
func (r *Registry) Resolve(tag string) (call.Factory, error) {
	var matches []entry
	for _, e := range r.entries {
		if e.tag == tag {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &UnknownCallTypeError{Tag: tag}
	case 1:
		return matches[0].factory, nil
	default:
		return nil, &AmbiguousCallTypeError{Tag: tag, Count: len(matches)}
	}
}

// Seal ends the registration phase.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether registration has ended.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Tags returns every registered tag, sorted.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		tags = append(tags, e.tag)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	return len(r.entries)
}
