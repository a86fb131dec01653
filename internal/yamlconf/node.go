package yamlconf

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// eachPair walks a mapping node in document order. A null node is treated
// as an empty mapping.
func eachPair(node *yaml.Node, what string, fn func(key string, val *yaml.Node) error) error {
	node = deref(node)
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", node.Line, what)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, deref(node.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func decodeScalar(node *yaml.Node, key string, out *string) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %s must be a string", node.Line, key)
	}
	*out = node.Value
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

// deref follows anchors so aliased sections behave like inline ones.
func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}
