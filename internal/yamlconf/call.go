package yamlconf

import (
	"fmt"

	"github.com/vk/bldrgo/internal/config"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func decodeCall(node *yaml.Node) (*config.Call, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: a call must be a mapping", node.Line)
	}
	reserved := map[string]bool{
		keyType:         true,
		keyArguments:    true,
		keyFailOnError:  true,
		keySuccessCodes: true,
		keyFileset:      true,
	}
	c := &config.Call{}

	var err error
	c.Options, err = decodeOptions(node, reserved)
	if err != nil {
		return nil, err
	}

	err = eachPair(node, "call", func(key string, val *yaml.Node) error {
		switch key {
		case keyType:
			return decodeScalar(val, key, &c.Type)
		case keyArguments:
			v, err := nodeValue(val)
			if err != nil {
				return err
			}
			c.Arguments, err = config.StringsFromValue(v)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key, err)
			}
		case keyFailOnError:
			if err := val.Decode(&c.FailOnError); err != nil {
				return fmt.Errorf("line %d: %s must be a boolean", val.Line, key)
			}
		case keySuccessCodes:
			v, err := nodeValue(val)
			if err != nil {
				return err
			}
			codes, err := config.IntsFromValue(v)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key, err)
			}
			if codes == nil {
				codes = []int{}
			}
			c.SuccessCodes = codes
		case keyFileset:
			v, err := nodeValue(val)
			if err != nil {
				return err
			}
			c.Fileset, err = config.StringsFromValue(v)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// decodeOptions converts every pair of a mapping, except the skipped keys,
// into an option value. A null node yields no options.
func decodeOptions(node *yaml.Node, skip map[string]bool) (config.Options, error) {
	if isNull(node) {
		return nil, nil
	}
	opts := config.Options{}
	err := eachPair(node, "options", func(key string, val *yaml.Node) error {
		if skip[key] {
			return nil
		}
		v, err := nodeValue(val)
		if err != nil {
			return err
		}
		opts[key] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// nodeValue decodes a node generically and bridges it into cty.
func nodeValue(node *yaml.Node) (cty.Value, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return cty.NilVal, fmt.Errorf("line %d: %w", node.Line, err)
	}
	v, err := config.ValueFromNative(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v, nil
}
