package console

import (
	"fmt"
	"strings"

	"github.com/vk/bldrgo/internal/event"
)

// Handle implements event.Listener and renders build progress.
func (c *Console) Handle(e event.Event) {
	switch e.Kind {
	case event.BuildStarted:
		c.buildStarted(e)
	case event.TaskStarted:
		c.Title(fmt.Sprintf("Running the %s task", e.Task.Name))
		if e.Task.Description != "" {
			c.Comment("> " + e.Task.Description)
			c.println("")
		}
	case event.CallFinished:
		c.callFinished(e)
	case event.TaskFinished:
		if e.Aborted {
			c.Error(fmt.Sprintf("Task %s aborted.", e.Task.Name))
		}
	case event.BuildFinished:
		c.buildFinished(e)
	}
}

func (c *Console) buildStarted(e event.Event) {
	if e.Project != nil {
		lines := []string{e.Project.Name}
		if e.Project.Description != "" {
			lines = append(lines, e.Project.Description)
		}
		c.Block(BlockInfo, lines...)
	}
	if e.Profile != "" {
		c.Line(fmt.Sprintf("Using the '%s' profile", e.Profile))
	}
	if len(e.Tasks) > 0 {
		c.Comment("Tasks: " + strings.Join(e.Tasks, ", "))
	}
	c.Line(c.paint(styleMuted, "Build: "+e.BuildName))
}

func (c *Console) callFinished(e event.Event) {
	if e.Record == nil || e.Task == nil {
		return
	}
	rec := e.Record
	if !rec.Failed() {
		c.Section(e.Task.Name, fmt.Sprintf("%s %s", rec.Type, rec.Outcome.Describe()))
		return
	}
	msg := fmt.Sprintf("%s #%d %s", rec.Type, rec.CallIndex+1, rec.Outcome.Describe())
	c.Section(e.Task.Name, c.paint(styleError, msg))
}

func (c *Console) buildFinished(e event.Event) {
	if e.Outcome == nil {
		return
	}
	if e.Outcome.Succeeded() {
		c.Block(BlockSuccess, "Build Success!")
		return
	}
	lines := []string{"Build Failed!"}
	if e.Outcome.Fatal != nil {
		lines = append(lines, e.Outcome.Fatal.Error())
	}
	for _, rec := range e.Outcome.FailedCalls() {
		lines = append(lines, fmt.Sprintf("%s: %s #%d %s", rec.Task, rec.Type, rec.CallIndex+1, rec.Outcome.Describe()))
	}
	c.Block(BlockFailure, lines...)
}
