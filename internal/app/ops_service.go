package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/core/ops"
	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// DefaultSpawnAgent is spawned when a request names no agent.
const DefaultSpawnAgent = "codex"

// OpsServiceImpl implements the OpsService interface.
type OpsServiceImpl struct {
	runner   secondary.CommandRunner
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewOpsService creates a new OpsService with injected dependencies.
func NewOpsService(runner secondary.CommandRunner, logger *zap.Logger) *OpsServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpsServiceImpl{
		runner:   runner,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ListSessions runs `sessions list` and parses its table output.
func (s *OpsServiceImpl) ListSessions(ctx context.Context) ([]models.Session, error) {
	stdout, err := s.runner.Run(ctx, "sessions", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ops.ParseSessionsText(stdout), nil
}

// ListCronJobs runs `cron list --json`; non-JSON output falls back to line parsing.
func (s *OpsServiceImpl) ListCronJobs(ctx context.Context) ([]models.CronJob, error) {
	stdout, err := s.runner.Run(ctx, "cron", "list", "--json")
	if err != nil {
		return nil, fmt.Errorf("failed to list cron jobs: %w", err)
	}
	return ops.ParseCronOutput(stdout, s.now()), nil
}

// Status aggregates sessions and cron jobs. Each half is left empty when
// its command fails or prints something unparseable.
func (s *OpsServiceImpl) Status(ctx context.Context) (*primary.StatusSummary, error) {
	now := s.now()
	summary := &primary.StatusSummary{
		Status:    "online",
		Sessions:  []models.StatusSession{},
		CronJobs:  []models.StatusCronJob{},
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}

	if stdout, ok := s.runTolerant(ctx, "sessions", "list", "--json"); ok {
		sessions, err := ops.ParseStatusSessions(stdout)
		if err != nil {
			s.logger.Warn("unparseable session status", zap.Error(err))
		} else if sessions != nil {
			summary.Sessions = sessions
		}
	}

	if stdout, ok := s.runTolerant(ctx, "cron", "list", "--json"); ok {
		jobs, err := ops.ParseStatusCron(stdout, now)
		if err != nil {
			s.logger.Warn("unparseable cron status", zap.Error(err))
		} else if jobs != nil {
			summary.CronJobs = jobs
		}
	}

	return summary, nil
}

// runTolerant ignores stderr noise from a command that otherwise succeeded.
func (s *OpsServiceImpl) runTolerant(ctx context.Context, args ...string) (string, bool) {
	stdout, err := s.runner.Run(ctx, args...)
	if err == nil {
		return stdout, true
	}
	var cmdErr *secondary.CommandError
	if errors.As(err, &cmdErr) && cmdErr.StderrOnly() {
		return stdout, true
	}
	s.logger.Warn("gateway command failed", zap.Strings("args", args), zap.Error(err))
	return "", false
}

// Spawn runs `agent spawn <agent> --task <task>`.
func (s *OpsServiceImpl) Spawn(ctx context.Context, req primary.SpawnRequest) (*primary.SpawnResult, error) {
	req.Task = strings.TrimSpace(req.Task)
	req.Agent = strings.TrimSpace(req.Agent)
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidRequest(err)
	}
	if req.Agent == "" {
		req.Agent = DefaultSpawnAgent
	}
	if strings.HasPrefix(req.Agent, "-") || strings.ContainsAny(req.Agent, " \t\n") {
		return nil, fmt.Errorf("%w: invalid agent name %q", ErrInvalidRequest, req.Agent)
	}

	s.logger.Info("spawning agent", zap.String("agent", req.Agent), zap.String("task", req.Task))
	stdout, err := s.runner.Run(ctx, "agent", "spawn", req.Agent, "--task", req.Task)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn agent %s: %w", req.Agent, err)
	}

	return &primary.SpawnResult{
		Success: true,
		Message: fmt.Sprintf("Agent %s spawned successfully", req.Agent),
		Output:  stdout,
		Task:    req.Task,
	}, nil
}

// Ensure OpsServiceImpl implements the interface
var _ primary.OpsService = (*OpsServiceImpl)(nil)
