package testutil

import "github.com/vk/bldrgo/internal/call"

// Invocation records one Run of a spy handler.
type Invocation struct {
	Tag     string
	Task    string
	Args    []string
	Policy  call.Policy
	Fileset []string
}
