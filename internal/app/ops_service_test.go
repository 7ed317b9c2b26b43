package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/commandcenter/internal/ports/primary"
	"github.com/example/commandcenter/internal/ports/secondary"
)

func newTestOpsService() (*OpsServiceImpl, *mockRunner) {
	runner := newMockRunner()
	service := NewOpsService(runner, nil)
	service.now = func() time.Time { return fixedNow }
	return service, runner
}

const sessionsTable = `Sessions
KIND   KEY             AGE       MODEL          TOKENS        FLAGS
direct main-session    2m ago    claude opus    12k/200k (6%) system
group  ops-channel     3h ago    gpt            1k/128k (1%)
`

func TestOpsService_ListSessions(t *testing.T) {
	service, runner := newTestOpsService()
	runner.outputs["sessions list"] = sessionsTable

	sessions, err := service.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Name != "main-session" || sessions[0].Status != "active" {
		t.Errorf("unexpected first session: %+v", sessions[0])
	}
}

func TestOpsService_ListSessionsStderrFails(t *testing.T) {
	service, runner := newTestOpsService()
	runner.errs["sessions list"] = &secondary.CommandError{Args: []string{"sessions", "list"}, Stderr: "gateway offline"}

	if _, err := service.ListSessions(context.Background()); err == nil {
		t.Fatal("expected error when the CLI writes to stderr")
	}
}

func TestOpsService_ListCronJobs(t *testing.T) {
	service, runner := newTestOpsService()
	runner.outputs["cron list --json"] = `{"jobs":[{"id":"j1","name":"Backup","schedule":{"expr":"0 3 * * *"},"enabled":false}]}`

	jobs, err := service.ListCronJobs(context.Background())
	if err != nil {
		t.Fatalf("ListCronJobs failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Schedule != "0 3 * * *" || jobs[0].Status != "disabled" {
		t.Errorf("unexpected jobs: %+v", jobs)
	}
}

func TestOpsService_Status(t *testing.T) {
	service, runner := newTestOpsService()
	runner.outputs["sessions list --json"] = `{"sessions":[{"key":"main","kind":"direct","model":"opus","ageMs":0,"totalTokens":1234}]}`
	runner.outputs["cron list --json"] = `{"jobs":[{"id":"j1","name":"Backup","schedule":{"kind":"every"}}]}`
	runner.errs["cron list --json"] = &secondary.CommandError{Args: []string{"cron", "list", "--json"}, Stderr: "deprecation warning"}

	summary, err := service.Status(context.Background())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if summary.Status != "online" {
		t.Errorf("expected online, got %s", summary.Status)
	}
	if len(summary.Sessions) != 1 || summary.Sessions[0].Tokens != "1,234" || summary.Sessions[0].Age != "active" {
		t.Errorf("unexpected sessions: %+v", summary.Sessions)
	}
	if len(summary.CronJobs) != 1 || summary.CronJobs[0].Schedule != "every" {
		t.Errorf("expected stderr-only cron output to be used, got %+v", summary.CronJobs)
	}
}

func TestOpsService_StatusDegrades(t *testing.T) {
	service, runner := newTestOpsService()
	runner.errs["sessions list --json"] = &secondary.CommandError{Err: errors.New("exit status 1")}
	runner.outputs["cron list --json"] = "not json"

	summary, err := service.Status(context.Background())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if summary.Sessions == nil || len(summary.Sessions) != 0 {
		t.Errorf("expected empty sessions, got %v", summary.Sessions)
	}
	if summary.CronJobs == nil || len(summary.CronJobs) != 0 {
		t.Errorf("expected empty cron jobs, got %v", summary.CronJobs)
	}
}

func TestOpsService_Spawn(t *testing.T) {
	service, runner := newTestOpsService()
	runner.outputs["agent spawn codex --task fix the build"] = "spawned"

	res, err := service.Spawn(context.Background(), primary.SpawnRequest{Task: "fix the build"})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if !res.Success || res.Output != "spawned" || res.Task != "fix the build" {
		t.Errorf("unexpected result: %+v", res)
	}
	if !strings.Contains(res.Message, "codex") {
		t.Errorf("expected default agent in message, got %q", res.Message)
	}

	last := runner.calls[len(runner.calls)-1]
	if len(last) != 5 || last[4] != "fix the build" {
		t.Errorf("expected task passed as a single argument, got %q", last)
	}
}

func TestOpsService_SpawnValidation(t *testing.T) {
	tests := []struct {
		name string
		req  primary.SpawnRequest
	}{
		{"missing task", primary.SpawnRequest{Task: "  "}},
		{"flag as agent", primary.SpawnRequest{Task: "x", Agent: "--help"}},
		{"agent with spaces", primary.SpawnRequest{Task: "x", Agent: "two words"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, runner := newTestOpsService()
			_, err := service.Spawn(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if len(runner.calls) != 0 {
				t.Error("expected the CLI not to run")
			}
		})
	}
}

func TestOpsService_SpawnFailure(t *testing.T) {
	service, runner := newTestOpsService()
	runner.errs["agent spawn scout --task survey"] = &secondary.CommandError{Stderr: "unknown agent"}

	_, err := service.Spawn(context.Background(), primary.SpawnRequest{Task: "survey", Agent: "scout"})
	var cmdErr *secondary.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
}
