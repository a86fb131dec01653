// Package scaffold generates a starter project file for the `init`
// command, either from flags alone or by interviewing the user through a
// session.Prompter. Output is YAML (yaml.v3) or HCL (hclwrite).
package scaffold
