package kanban

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/example/commandcenter/internal/models"
)

// minTitleLength is the shortest title (in runes) that becomes a task.
const minTitleLength = 3

var (
	bulletRe   = regexp.MustCompile(`^[-*]\s+`)
	checkboxRe = regexp.MustCompile(`^[-*]?\s*\[\s*([xX]?)\s*\]\s*`)

	highWordRe   = regexp.MustCompile(`\b(HIGH|URGENT)\b`)
	mediumWordRe = regexp.MustCompile(`\bMEDIUM\b`)
	lowWordRe    = regexp.MustCompile(`\bLOW\b`)

	priorityWordRe = regexp.MustCompile(`(?i)\b(HIGH|MEDIUM|LOW|URGENT)\b`)
	spacesRe       = regexp.MustCompile(`\s{2,}`)
)

// Priority markers; the warning sign may or may not carry the emoji variation selector.
const (
	markerHigh    = "🔥"
	markerMedium  = "⚠️"
	markerWarning = "⚠"
	markerLow     = "📝"
)

var decorations = strings.NewReplacer(
	markerHigh, "",
	markerMedium, "",
	markerWarning, "",
	markerLow, "",
)

// projectKeywords is checked in order; the first project with a matching keyword wins.
var projectKeywords = []struct {
	project  models.Project
	keywords []string
}{
	{models.ProjectLessonCraft, []string{"LessonCraft"}},
	{models.ProjectJDGallery, []string{"JD Gallery", "Gallery"}},
	{models.ProjectInfrastructure, []string{"Infrastructure", "Command Center"}},
	{models.ProjectContent, []string{"Content", "Gospel Tuned"}},
}

// extractor is the line-by-line state of a markdown scan. Project and priority
// act as section headers: once seen they apply to every following bullet.
type extractor struct {
	source          models.Source
	currentProject  models.Project
	currentPriority models.Priority
}

// ExtractMarkdown scans a note document and returns one candidate per open
// bullet or checkbox line. source must be SourceTodo or SourceActiveContext.
// This is a heuristic: ambiguous markdown can yield false positives or misses.
func ExtractMarkdown(content string, source models.Source) []Candidate {
	x := &extractor{
		source:          source,
		currentProject:  models.ProjectOther,
		currentPriority: models.PriorityMedium,
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var out []Candidate
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		x.observe(line)

		body, checked, ok := stripMarker(line)
		if !ok || checked {
			continue
		}

		title := cleanTitle(body)
		if utf8.RuneCountInString(title) < minTitleLength {
			continue
		}

		status := models.StatusBacklog
		if source == models.SourceActiveContext {
			upper := strings.ToUpper(line)
			switch {
			case containsAny(upper, "WORKING ON", "IN PROGRESS", "DOING"):
				status = models.StatusInProgress
			case containsAny(upper, "BLOCKED", "WAITING"):
				status = models.StatusInProgress
				title = "[BLOCKED] " + title
			}
		}

		c := Candidate{
			Title:    title,
			Status:   status,
			Priority: x.currentPriority,
			Project:  x.currentProject,
			Source:   source,
		}
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "  ") {
			c.Description = strings.TrimSpace(lines[i+1])
		}
		out = append(out, c)
	}
	return out
}

// observe updates the running project and priority from any line.
func (x *extractor) observe(line string) {
	for _, pk := range projectKeywords {
		if containsAny(line, pk.keywords...) {
			x.currentProject = pk.project
			break
		}
	}

	switch {
	case strings.Contains(line, markerHigh) || highWordRe.MatchString(line):
		x.currentPriority = models.PriorityHigh
	case strings.Contains(line, markerWarning) || mediumWordRe.MatchString(line):
		x.currentPriority = models.PriorityMedium
	case strings.Contains(line, markerLow) || lowWordRe.MatchString(line):
		x.currentPriority = models.PriorityLow
	}
}

// stripMarker removes a bullet and/or checkbox marker from a trimmed line.
// ok is false when the line is not a list item at all.
func stripMarker(line string) (body string, checked bool, ok bool) {
	rest := line
	if loc := bulletRe.FindStringIndex(rest); loc != nil {
		rest = rest[loc[1]:]
		ok = true
	}
	if m := checkboxRe.FindStringSubmatchIndex(rest); m != nil {
		checked = m[3] > m[2]
		rest = rest[m[1]:]
		ok = true
	}
	return strings.TrimSpace(rest), checked, ok
}

// cleanTitle strips priority decorations and tidies whitespace.
func cleanTitle(s string) string {
	s = decorations.Replace(s)
	s = priorityWordRe.ReplaceAllString(s, "")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " :")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
