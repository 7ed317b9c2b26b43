// Package ops parses the output of the agent gateway CLI into sessions and
// cron jobs. Malformed rows degrade to "unknown" placeholders; only the
// status JSON is strict.
package ops

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/example/commandcenter/internal/models"
)

// maxFallbackName caps, in runes, the name of a row that did not parse.
const maxFallbackName = 30

// Placeholder values for fields the CLI did not provide.
const (
	Unknown       = "unknown"
	DefaultTokens = "0/0 (0%)"
	sessionHeader = 2
	activeMinutes = 5

	cronActive   = "active"
	cronDisabled = "disabled"
)

// ParseSessionsText parses the table printed by `sessions list`.
// The first two lines are headers. Each row is
// "<kind> <key> <age...> <model...> <tokens> <flags...>".
func ParseSessionsText(stdout string) []models.Session {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) <= sessionHeader {
		return []models.Session{}
	}

	sessions := make([]models.Session, 0, len(lines)-sessionHeader)
	for i, line := range lines[sessionHeader:] {
		s := parseSessionLine(i, line)
		if s.Name == "" || strings.Contains(s.Name, "...") {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions
}

func parseSessionLine(index int, line string) models.Session {
	id := fmt.Sprintf("session-%d", index)
	parts := strings.Fields(line)

	if len(parts) < 6 {
		name := line
		if utf8.RuneCountInString(name) > maxFallbackName {
			name = string([]rune(name)[:maxFallbackName])
		}
		if name == "" {
			name = fmt.Sprintf("Session %d", index)
		}
		return models.Session{
			ID:         id,
			Name:       name,
			Status:     models.SessionStatusUnknown,
			LastActive: Unknown,
			Model:      Unknown,
			Tokens:     DefaultTokens,
		}
	}

	kind, key := parts[0], parts[1]
	age := parts[2] + " " + parts[3]

	// the model may contain spaces; tokens is the first field that looks like "12k/200k" or "(6%)"
	modelEnd := len(parts) - 2
	for i := 4; i < len(parts); i++ {
		if strings.ContainsAny(parts[i], "/(") {
			modelEnd = i
			break
		}
	}

	tokens := DefaultTokens
	if modelEnd < len(parts) {
		tokens = parts[modelEnd]
	}
	var flags string
	if modelEnd+1 < len(parts) {
		flags = strings.Join(parts[modelEnd+1:], " ")
	}

	return models.Session{
		ID:         id,
		Name:       key,
		Status:     sessionStatus(age),
		LastActive: age,
		Model:      strings.Join(parts[4:modelEnd], " "),
		Tokens:     tokens,
		Flags:      flags,
		Kind:       kind,
	}
}

// sessionStatus is active for ages under five minutes, idle otherwise.
func sessionStatus(age string) string {
	switch {
	case strings.Contains(age, "m ago"):
		if n, ok := leadingInt(age); ok && n < activeMinutes {
			return models.SessionStatusActive
		}
	case strings.Contains(age, "s ago"):
		return models.SessionStatusActive
	}
	return models.SessionStatusIdle
}

func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// cliCronJob is the JSON shape of `cron list --json`.
type cliCronJob struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Command  string `json:"command"`
	Enabled  *bool  `json:"enabled"`
	Schedule struct {
		Expr string `json:"expr"`
		Kind string `json:"kind"`
	} `json:"schedule"`
	State struct {
		NextRunAtMs int64 `json:"nextRunAtMs"`
		LastRunAtMs int64 `json:"lastRunAtMs"`
	} `json:"state"`
}

type cliCronList struct {
	Jobs []cliCronJob `json:"jobs"`
}

// ParseCronOutput parses `cron list --json`. Output that is not JSON is read
// as one job per line: a schedule token followed by the command.
func ParseCronOutput(stdout string, now time.Time) []models.CronJob {
	if jobs, err := decodeCronJSON(stdout); err == nil {
		out := make([]models.CronJob, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, models.CronJob{
				ID:       j.ID,
				Name:     firstNonEmpty(j.Name, "Unnamed"),
				Schedule: firstNonEmpty(j.Schedule.Expr, j.Schedule.Kind, "Unknown"),
				Command:  j.Command,
				Status:   cronStatus(j.Enabled),
				LastRun:  FormatLastRun(j.State.LastRunAtMs, now),
				NextRun:  FormatNextRun(j.State.NextRunAtMs, now),
			})
		}
		return out
	}

	var out []models.CronJob
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		job := models.CronJob{
			ID:       fmt.Sprintf("cron-%d", len(out)),
			Schedule: parts[0],
			Command:  strings.Join(parts[1:], " "),
			Status:   cronActive,
			LastRun:  Unknown,
			NextRun:  Unknown,
		}
		if job.Command == "" {
			job.Command = Unknown
		}
		out = append(out, job)
	}
	if out == nil {
		out = []models.CronJob{}
	}
	return out
}

// decodeCronJSON accepts either {"jobs":[...]} or a bare array.
func decodeCronJSON(stdout string) ([]cliCronJob, error) {
	data := []byte(strings.TrimSpace(stdout))
	var list cliCronList
	if err := json.Unmarshal(data, &list); err == nil {
		return list.Jobs, nil
	}
	var jobs []cliCronJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func cronStatus(enabled *bool) string {
	if enabled != nil && !*enabled {
		return cronDisabled
	}
	return cronActive
}

// ParseStatusCron maps `cron list --json` onto the status summary rows.
func ParseStatusCron(stdout string, now time.Time) ([]models.StatusCronJob, error) {
	jobs, err := decodeCronJSON(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron json: %w", err)
	}
	out := make([]models.StatusCronJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, models.StatusCronJob{
			ID:       j.ID,
			Name:     firstNonEmpty(j.Name, "Unnamed"),
			Schedule: firstNonEmpty(j.Schedule.Expr, j.Schedule.Kind, "Unknown"),
			Next:     FormatNextRun(j.State.NextRunAtMs, now),
			Status:   cronStatus(j.Enabled),
		})
	}
	return out, nil
}

type cliSessionList struct {
	Sessions []struct {
		Key         string `json:"key"`
		Kind        string `json:"kind"`
		Model       string `json:"model"`
		AgeMs       int64  `json:"ageMs"`
		TotalTokens *int64 `json:"totalTokens"`
	} `json:"sessions"`
}

// ParseStatusSessions maps `sessions list --json` onto the status summary rows.
func ParseStatusSessions(stdout string) ([]models.StatusSession, error) {
	var list cliSessionList
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &list); err != nil {
		return nil, fmt.Errorf("failed to parse sessions json: %w", err)
	}
	out := make([]models.StatusSession, 0, len(list.Sessions))
	for _, s := range list.Sessions {
		tokens := "N/A"
		if s.TotalTokens != nil {
			tokens = groupThousands(*s.TotalTokens)
		}
		out = append(out, models.StatusSession{
			Key:    firstNonEmpty(s.Key, Unknown),
			Kind:   firstNonEmpty(s.Kind, "direct"),
			Model:  firstNonEmpty(s.Model, Unknown),
			Age:    FormatAge(s.AgeMs),
			Tokens: tokens,
		})
	}
	return out, nil
}

// FormatAge renders a millisecond age as "42s ago", "5m ago", "3h ago" or "2d ago".
// Zero means the session is live.
func FormatAge(ms int64) string {
	if ms == 0 {
		return models.SessionStatusActive
	}
	seconds := ms / 1000
	if seconds < 60 {
		return fmt.Sprintf("%ds ago", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}

// FormatNextRun renders a future unix-millis instant relative to now.
func FormatNextRun(ms int64, now time.Time) string {
	if ms == 0 {
		return "N/A"
	}
	diff := time.UnixMilli(ms).Sub(now)
	switch {
	case diff < 0:
		return "overdue"
	case diff < time.Hour:
		return fmt.Sprintf("in %dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("in %dh", int(diff.Hours()))
	}
	return time.UnixMilli(ms).In(now.Location()).Format("Jan 2, 03:04 PM")
}

// FormatLastRun renders a past unix-millis instant as an age.
func FormatLastRun(ms int64, now time.Time) string {
	if ms == 0 {
		return "never"
	}
	age := now.Sub(time.UnixMilli(ms)).Milliseconds()
	if age <= 0 {
		return "just now"
	}
	return FormatAge(age)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
