package scaffold

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/bldrgo/internal/config"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// encodeYAML writes the project with profiles and tasks in declaration
// order. Tasks always carry a `calls` list, empty or not.
func encodeYAML(p *config.Project) ([]byte, error) {
	root := mapping()
	addScalar(root, "name", p.Name)
	if p.Description != "" {
		addScalar(root, "description", p.Description)
	}

	if len(p.Profiles) > 0 {
		profiles := mapping()
		for _, prof := range p.Profiles {
			body := mapping()
			if prof.Description != "" {
				addScalar(body, "description", prof.Description)
			}
			if len(prof.Tasks) > 0 {
				addNode(body, "tasks", stringSeq(prof.Tasks))
			}
			addNode(profiles, prof.Name, body)
		}
		addNode(root, "profiles", profiles)
	}

	if len(p.Tasks) > 0 {
		tasks := mapping()
		for _, t := range p.Tasks {
			body := mapping()
			if t.Description != "" {
				addScalar(body, "description", t.Description)
			}
			calls := &yaml.Node{Kind: yaml.SequenceNode}
			for _, c := range t.Calls {
				cn := mapping()
				addScalar(cn, "type", c.Type)
				if len(c.Arguments) > 0 {
					addNode(cn, "arguments", stringSeq(c.Arguments))
				}
				if c.FailOnError {
					addNode(cn, "failOnError", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
				}
				calls.Content = append(calls.Content, cn)
			}
			addNode(body, "calls", calls)
			addNode(tasks, t.Name, body)
		}
		addNode(root, "tasks", tasks)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

// str is a string scalar; the explicit tag makes the encoder quote values
// that would otherwise read back as numbers or booleans.
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func addNode(m *yaml.Node, key string, val *yaml.Node) {
	m.Content = append(m.Content, str(key), val)
}

func addScalar(m *yaml.Node, key, val string) {
	addNode(m, key, str(val))
}

func stringSeq(items []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, s := range items {
		seq.Content = append(seq.Content, str(s))
	}
	return seq
}

// encodeHCL writes the project as a `.bldr.hcl` document.
func encodeHCL(p *config.Project) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("name", cty.StringVal(p.Name))
	if p.Description != "" {
		body.SetAttributeValue("description", cty.StringVal(p.Description))
	}

	for _, prof := range p.Profiles {
		body.AppendNewline()
		pb := body.AppendNewBlock("profile", []string{prof.Name}).Body()
		if prof.Description != "" {
			pb.SetAttributeValue("description", cty.StringVal(prof.Description))
		}
		pb.SetAttributeValue("tasks", stringList(prof.Tasks))
	}

	for _, t := range p.Tasks {
		body.AppendNewline()
		tb := body.AppendNewBlock("task", []string{t.Name}).Body()
		if t.Description != "" {
			tb.SetAttributeValue("description", cty.StringVal(t.Description))
		}
		for _, c := range t.Calls {
			tb.AppendNewline()
			cb := tb.AppendNewBlock("call", []string{c.Type}).Body()
			if len(c.Arguments) > 0 {
				cb.SetAttributeValue("arguments", stringList(c.Arguments))
			}
			if c.FailOnError {
				cb.SetAttributeValue("fail_on_error", cty.True)
			}
		}
	}
	return f.Bytes()
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
