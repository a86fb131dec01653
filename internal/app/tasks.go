package app

import (
	"context"
	"fmt"
	"strings"
)

// ListTasks prints every task of the project in declaration order.
func (a *App) ListTasks(ctx context.Context) error {
	project, err := a.LoadProject(ctx)
	if err != nil {
		return err
	}
	a.console.Title(fmt.Sprintf("Tasks of %s", project.Name))
	if len(project.Tasks) == 0 {
		a.console.Comment("No tasks defined.")
		return nil
	}
	for _, t := range project.Tasks {
		a.console.Item(t.Name, t.Description)
	}
	if len(project.Profiles) > 0 {
		a.console.Title("Profiles")
		for _, p := range project.Profiles {
			a.console.Item(p.Name, strings.Join(p.Tasks, " → "))
		}
	}
	return nil
}

// TaskInfo prints the calls of one task.
func (a *App) TaskInfo(ctx context.Context, name string) error {
	project, err := a.LoadProject(ctx)
	if err != nil {
		return err
	}
	task, err := project.Task(name)
	if err != nil {
		return err
	}

	a.console.Title(fmt.Sprintf("Task %s", task.Name))
	if task.Description != "" {
		a.console.Comment("> " + task.Description)
	}
	for i, c := range task.Calls {
		a.console.Line(fmt.Sprintf("%d. %s %s", i+1, c.Type, strings.Join(c.Arguments, " ")))
		var details []string
		if c.FailOnError {
			details = append(details, "failOnError")
		}
		if len(c.SuccessCodes) > 0 {
			details = append(details, fmt.Sprintf("successCodes=%v", c.SuccessCodes))
		}
		if c.HasFileset() {
			details = append(details, "fileset="+strings.Join(c.Fileset, ","))
		}
		for _, key := range c.Options.Keys() {
			details = append(details, fmt.Sprintf("%s=%v", key, c.Options.Native(key)))
		}
		if len(details) > 0 {
			a.console.Comment("   " + strings.Join(details, " "))
		}
	}
	return nil
}
