// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the command entry points (build, init and
// task inspection), decoupled from any specific entrypoint like a CLI.
package app
