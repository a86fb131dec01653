// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses `.bldr.hcl` project files and translates them into
// the format-agnostic config.Project model.
package hcl
