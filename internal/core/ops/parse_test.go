package ops

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/example/commandcenter/internal/models"
)

const sessionsTable = `Sessions (3)
KIND    KEY                 AGE       MODEL              TOKENS            FLAGS
direct  agent:main:main     2m ago    claude opus 4      12k/200k (6%)     system
group   agent:main:discord  12m ago   gpt-5              3k/128k (2%)
direct  agent:main:cron...  1h ago    gpt-5              1k/128k (1%)
direct  agent:scout         45s ago   gpt-5              900/128k (0%)     verbose thinking
garbage row
`

func TestParseSessionsText(t *testing.T) {
	got := ParseSessionsText(sessionsTable)

	if len(got) != 4 {
		t.Fatalf("expected 4 sessions (truncated key filtered), got %d: %+v", len(got), got)
	}

	tests := []struct {
		index  int
		name   string
		status string
		age    string
		model  string
		tokens string
		flags  string
		kind   string
	}{
		{0, "agent:main:main", "active", "2m ago", "claude opus 4", "12k/200k", "(6%) system", "direct"},
		{1, "agent:main:discord", "idle", "12m ago", "gpt-5", "3k/128k", "(2%)", "group"},
		{2, "agent:scout", "active", "45s ago", "gpt-5", "900/128k", "(0%) verbose thinking", "direct"},
	}
	for _, tt := range tests {
		s := got[tt.index]
		if s.Name != tt.name || s.Status != tt.status || s.LastActive != tt.age ||
			s.Model != tt.model || s.Tokens != tt.tokens || s.Flags != tt.flags || s.Kind != tt.kind {
			t.Errorf("session %d = %+v", tt.index, s)
		}
	}

	last := got[3]
	if last.Name != "garbage row" || last.Status != models.SessionStatusUnknown ||
		last.Model != Unknown || last.Tokens != DefaultTokens {
		t.Errorf("short row should degrade to placeholders, got %+v", last)
	}
}

func TestParseSessionsText_HeaderOnly(t *testing.T) {
	got := ParseSessionsText("Sessions (0)\nKIND KEY AGE MODEL TOKENS FLAGS\n")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestParseSessionsText_TruncatesByRune(t *testing.T) {
	row := strings.Repeat("é", 40)
	got := ParseSessionsText("Sessions (1)\nKIND KEY AGE MODEL TOKENS FLAGS\n" + row + "\n")

	if len(got) != 1 {
		t.Fatalf("expected 1 session, got %d", len(got))
	}
	name := got[0].Name
	if !utf8.ValidString(name) {
		t.Fatalf("expected valid UTF-8 name, got %q", name)
	}
	if n := utf8.RuneCountInString(name); n != 30 {
		t.Errorf("expected 30 runes, got %d", n)
	}
}

func TestSessionStatus(t *testing.T) {
	tests := []struct {
		age  string
		want string
	}{
		{"4m ago", models.SessionStatusActive},
		{"5m ago", models.SessionStatusIdle},
		{"30s ago", models.SessionStatusActive},
		{"2h ago", models.SessionStatusIdle},
		{"just now", models.SessionStatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.age, func(t *testing.T) {
			if got := sessionStatus(tt.age); got != tt.want {
				t.Errorf("sessionStatus(%q) = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

func TestParseCronOutput_JSON(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	stdout := `{"jobs":[
		{"id":"j1","name":"Morning brief","schedule":{"kind":"cron","expr":"0 7 * * *"},"state":{"nextRunAtMs":1700000600000},"enabled":true},
		{"id":"j2","schedule":{"kind":"every"},"enabled":false}
	]}`

	got := ParseCronOutput(stdout, now)

	if len(got) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(got))
	}
	if got[0].Name != "Morning brief" || got[0].Schedule != "0 7 * * *" || got[0].Status != "active" || got[0].NextRun != "in 10m" {
		t.Errorf("job 0 = %+v", got[0])
	}
	if got[1].Name != "Unnamed" || got[1].Schedule != "every" || got[1].Status != "disabled" || got[1].NextRun != "N/A" {
		t.Errorf("job 1 = %+v", got[1])
	}
}

func TestParseCronOutput_TextFallback(t *testing.T) {
	got := ParseCronOutput("0 9 * * * /usr/bin/backup --full\n\nlonely\n", time.Now())

	if len(got) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(got))
	}
	if got[0].ID != "cron-0" || got[0].Schedule != "0" || got[0].Command != "9 * * * /usr/bin/backup --full" {
		t.Errorf("job 0 = %+v", got[0])
	}
	if got[1].ID != "cron-1" || got[1].Schedule != "lonely" || got[1].Command != Unknown || got[1].NextRun != Unknown {
		t.Errorf("job 1 = %+v", got[1])
	}
}

func TestParseCronOutput_Empty(t *testing.T) {
	if got := ParseCronOutput("", time.Now()); got == nil || len(got) != 0 {
		t.Errorf("expected empty list, got %#v", got)
	}
}

func TestParseStatusSessions(t *testing.T) {
	got, err := ParseStatusSessions(`{"sessions":[{"key":"agent:main","model":"gpt-5","ageMs":125000,"totalTokens":1234567},{}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	want0 := models.StatusSession{Key: "agent:main", Kind: "direct", Model: "gpt-5", Age: "2m ago", Tokens: "1,234,567"}
	if got[0] != want0 {
		t.Errorf("session 0 = %+v, want %+v", got[0], want0)
	}
	want1 := models.StatusSession{Key: "unknown", Kind: "direct", Model: "unknown", Age: "active", Tokens: "N/A"}
	if got[1] != want1 {
		t.Errorf("session 1 = %+v, want %+v", got[1], want1)
	}

	if _, err := ParseStatusSessions("not json"); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestParseStatusCron(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	got, err := ParseStatusCron(`{"jobs":[{"id":"j1","schedule":{"expr":"*/5 * * * *"},"state":{"nextRunAtMs":1699999999000}}]}`, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.StatusCronJob{ID: "j1", Name: "Unnamed", Schedule: "*/5 * * * *", Next: "overdue", Status: "active"}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "active"},
		{999, "0s ago"},
		{59_000, "59s ago"},
		{60_000, "1m ago"},
		{3_599_000, "59m ago"},
		{3_600_000, "1h ago"},
		{86_400_000, "1d ago"},
		{3 * 86_400_000, "3d ago"},
	}
	for _, tt := range tests {
		if got := FormatAge(tt.ms); got != tt.want {
			t.Errorf("FormatAge(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFormatNextRun(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"past", now.Add(-time.Minute), "overdue"},
		{"minutes", now.Add(42 * time.Minute), "in 42m"},
		{"hours", now.Add(5*time.Hour + 10*time.Minute), "in 5h"},
		{"days", now.Add(50 * time.Hour), "Mar 16, 11:00 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNextRun(tt.at.UnixMilli(), now); got != tt.want {
				t.Errorf("FormatNextRun = %q, want %q", got, tt.want)
			}
		})
	}
	if got := FormatNextRun(0, now); got != "N/A" {
		t.Errorf("FormatNextRun(0) = %q, want N/A", got)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4500: "-4,500"}
	for in, want := range tests {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", in, got, want)
		}
	}
}
