// Package config defines the format-agnostic project model for a build:
// the project, its profiles, tasks, calls and extension settings, together
// with the Loader interface implemented by the concrete file formats.
//
// A *Project is produced whole by a Loader, validated once, and treated as
// read-only for the rest of the build. The `executor` package only ever sees
// this model; it never touches HCL or YAML directly.
package config
