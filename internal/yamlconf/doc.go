// Package yamlconf implements config.Loader for YAML project files
// (`.bldr.yml` and `.bldr.yml.dist`).
//
// Documents are walked as yaml.Node trees rather than decoded into maps so
// that profiles and tasks keep the order in which they were declared.
package yamlconf
