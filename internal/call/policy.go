package call

import (
	"slices"

	"github.com/vk/bldrgo/internal/config"
)

// Policy is a call's error and status-code policy.
type Policy struct {
	FailOnError  bool
	SuccessCodes []int
}

// PolicyFor builds the policy declared by a call.
func PolicyFor(c *config.Call) Policy {
	return Policy{
		FailOnError:  c.FailOnError,
		SuccessCodes: c.Codes(),
	}
}

// Accepts reports whether code counts as success. An empty code set
// means the default {0}.
func (p Policy) Accepts(code int) bool {
	if len(p.SuccessCodes) == 0 {
		return code == 0
	}
	return slices.Contains(p.SuccessCodes, code)
}

// Judge settles the success of a status-code outcome against the policy.
// Outcomes without a status code are returned unchanged.
func (p Policy) Judge(o Outcome) Outcome {
	if !o.HasCode {
		return o
	}
	o.Success = o.Err == nil && p.Accepts(o.Code)
	return o
}
