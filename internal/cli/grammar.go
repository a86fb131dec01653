package cli

import "github.com/alecthomas/kong"

// Globals are flags accepted by every command.
type Globals struct {
	Config          string           `short:"c" help:"Path to the project file. Defaults to the first of .bldr.yml, .bldr.yml.dist, .bldr.hcl, .bldr.hcl.dist in the working directory." placeholder:"FILE"`
	Workdir         string           `short:"w" help:"Directory to run in (defaults to the current directory)." placeholder:"DIR"`
	LogLevel        string           `help:"Set the logging level." enum:"debug,info,warn,error" default:"warn"`
	LogFormat       string           `help:"Log output format." enum:"text,json" default:"text"`
	NoColor         bool             `help:"Disable colored console output."`
	HealthcheckPort int              `help:"Port for the HTTP health check server. 0 is disabled." default:"0"`
	Version         kong.VersionFlag `short:"V" help:"Print the version and exit."`
}

// grammar is the full command tree.
type grammar struct {
	Globals

	Build buildCmd `cmd:"" default:"withargs" help:"Run the tasks of a profile (the default command)."`
	Init  initCmd  `cmd:"" help:"Generate a starter project file."`
	Task  taskCmd  `cmd:"" help:"Inspect the tasks of the project."`
}

type buildCmd struct {
	Profile string   `short:"p" help:"Profile to run." default:"default"`
	Tasks   []string `short:"t" help:"Tasks to run instead of the profile's (repeatable or comma separated)." placeholder:"TASK"`
}

type initCmd struct {
	Name        string `help:"Name of the project (<vendor>/<name>)."`
	Description string `help:"Description of the project."`
	Delete      bool   `short:"d" help:"Delete an existing project file first."`
	Dist        bool   `help:"Create the .dist variant of the file."`
	Format      string `help:"File format." enum:"yaml,hcl" default:"yaml"`
	Interactive bool   `short:"i" help:"Ask for the project details and define profiles interactively."`
}

type taskCmd struct {
	List taskListCmd `cmd:"" help:"List the tasks of the project."`
	Info taskInfoCmd `cmd:"" help:"Show the calls of a task."`
}

type taskListCmd struct{}

type taskInfoCmd struct {
	Name string `arg:"" help:"Task name."`
}
