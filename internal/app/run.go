package app

import (
	"context"

	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/executor"
	"github.com/vk/bldrgo/internal/result"
	"github.com/vk/bldrgo/internal/session"
)

// BuildRequest selects what a build runs. Explicit Tasks override the
// profile's task list.
type BuildRequest struct {
	Profile string
	Tasks   []string
}

// Build loads the project and runs the requested tasks. The returned error
// is non-nil for configuration problems and build-fatal resolution errors;
// failed calls are reported through the outcome only.
func (a *App) Build(ctx context.Context, req BuildRequest) (*result.BuildOutcome, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Build method started.", "profile", req.Profile, "tasks", req.Tasks)

	project, err := a.LoadProject(ctx)
	if err != nil {
		return nil, err
	}

	profile := req.Profile
	taskNames := req.Tasks
	if len(taskNames) > 0 {
		profile = ""
		logger.Debug("Explicit task list overrides the profile.", "tasks", taskNames)
	} else {
		taskNames, err = project.TaskNamesForProfile(profile)
		if err != nil {
			return nil, err
		}
	}

	reg, err := a.newRegistry(ctx, project)
	if err != nil {
		return nil, err
	}

	workDir, err := a.WorkDir()
	if err != nil {
		return nil, err
	}
	s, err := session.New(project, session.Options{
		WorkDir:  workDir,
		In:       a.streams.In,
		Out:      a.streams.Out,
		Err:      a.streams.Err,
		Prompter: a.console,
		Printer:  a.console,
	})
	if err != nil {
		return nil, err
	}

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer a.closeHealthCheckServer()
	}

	exec := executor.New(s, reg, a.health, a.console).WithProfile(profile)
	outcome, err := exec.Run(ctx, taskNames)
	logger.Debug("App.Build method finished.", "status", outcome.Status)
	return outcome, err
}
