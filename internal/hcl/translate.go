package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/bldrgo/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateTask converts a task block into the agnostic model.
func translateTask(t *taskBlock, evalCtx *hcl.EvalContext) (*config.Task, error) {
	task := &config.Task{Name: t.Name, Description: t.Description}
	for i, cb := range t.Calls {
		c, err := translateCall(cb, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("task '%s', call #%d: %w", t.Name, i+1, err)
		}
		task.Calls = append(task.Calls, c)
	}
	return task, nil
}

// translateCall splits a call body into the reserved policy attributes and
// the free-form options.
func translateCall(cb *callBlock, evalCtx *hcl.EvalContext) (*config.Call, error) {
	attrs, err := evalAttributes(cb.Body, evalCtx)
	if err != nil {
		return nil, err
	}

	c := &config.Call{Type: cb.Type, Options: config.Options{}}
	for name, val := range attrs {
		switch name {
		case attrArguments:
			args, err := config.StringsFromValue(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			c.Arguments = args
		case attrFailOnError:
			b, err := convert.Convert(val, cty.Bool)
			if err != nil || b.IsNull() {
				return nil, fmt.Errorf("%s: expected a bool", name)
			}
			c.FailOnError = b.True()
		case attrSuccessCodes:
			codes, err := config.IntsFromValue(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if codes == nil {
				codes = []int{}
			}
			c.SuccessCodes = codes
		case attrFileset:
			patterns, err := config.StringsFromValue(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			c.Fileset = patterns
		default:
			c.Options[name] = val
		}
	}
	return c, nil
}

// evalAttributes evaluates every attribute of body. Nested blocks are not
// allowed inside calls or extensions.
func evalAttributes(body hcl.Body, evalCtx *hcl.EvalContext) (config.Options, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	out := make(config.Options, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		out[name] = val
	}
	return out, nil
}
