package models

// Session is one agent gateway session as listed by the CLI.
type Session struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	LastActive string `json:"lastActive"`
	Model      string `json:"model"`
	Tokens     string `json:"tokens"`
	Flags      string `json:"flags"`
	Kind       string `json:"kind,omitempty"`
}

// Session status constants
const (
	SessionStatusActive  = "active"
	SessionStatusIdle    = "idle"
	SessionStatusUnknown = "unknown"
)

// CronJob is a scheduled job. Fields beyond ID are best effort: text output
// from the CLI only yields schedule and command.
type CronJob struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Schedule string `json:"schedule"`
	Command  string `json:"command,omitempty"`
	Status   string `json:"status"`
	LastRun  string `json:"lastRun,omitempty"`
	NextRun  string `json:"nextRun,omitempty"`
}

// StatusSession is the compact session row of the status summary.
type StatusSession struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Model  string `json:"model"`
	Age    string `json:"age"`
	Tokens string `json:"tokens"`
}

// StatusCronJob is the compact cron row of the status summary.
type StatusCronJob struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	Next     string `json:"next"`
	Status   string `json:"status"`
}

// MemoryFile is one markdown file of the assistant's memory.
type MemoryFile struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	HTML     string `json:"html,omitempty"`
	Modified string `json:"modified"`
	Size     int64  `json:"size"`
}

// ProjectInfo is an entry of the static project registry.
type ProjectInfo struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Status       string   `json:"status" yaml:"status"`
	Progress     int      `json:"progress" yaml:"progress"`
	URL          string   `json:"url,omitempty" yaml:"url"`
	Repo         string   `json:"repo" yaml:"repo"`
	LastCommit   string   `json:"lastCommit,omitempty" yaml:"lastCommit"`
	Branch       string   `json:"branch" yaml:"branch"`
	BuildStatus  string   `json:"buildStatus" yaml:"buildStatus"`
	Technologies []string `json:"technologies" yaml:"technologies"`
}
