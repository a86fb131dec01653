package registry

import (
	"errors"
	"fmt"
)

// ErrSealed is returned when registering after the registry was sealed.
var ErrSealed = errors.New("registry is sealed")

// DuplicateRegistrationError is returned when a tag already has a live entry.
type DuplicateRegistrationError struct {
	Tag    string
	Module string
}

func (e *DuplicateRegistrationError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("call type '%s' is already registered by module '%s'", e.Tag, e.Module)
	}
	return fmt.Sprintf("call type '%s' is already registered", e.Tag)
}

// UnknownCallTypeError is returned when no handler is registered for a tag.
type UnknownCallTypeError struct {
	Tag string
}

func (e *UnknownCallTypeError) Error() string {
	return fmt.Sprintf("no call type found for '%s'", e.Tag)
}

// AmbiguousCallTypeError is returned when more than one live entry matches
// a tag.
type AmbiguousCallTypeError struct {
	Tag   string
	Count int
}

func (e *AmbiguousCallTypeError) Error() string {
	return fmt.Sprintf("%d handlers are registered for call type '%s'", e.Count, e.Tag)
}
