// Package lessoncraft joins the LessonCraft audio catalog with the object
// listing of its storage bucket to report production progress.
package lessoncraft

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNotConfigured is returned when bucket credentials are missing.
var ErrNotConfigured = errors.New("cloudflare credentials are not configured")

// Category names, in display order.
const (
	CategoryDocumentary = "CFM Documentary"
	CategoryEaster      = "Easter"
	CategoryFiresides   = "Firesides"
	CategoryDevotionals = "Devotionals"
	CategoryArtwork     = "Artwork"
	CategoryOther       = "Other"
)

// CategoryOrder lists the tracked categories. Other is counted but not listed.
var CategoryOrder = []string{
	CategoryDocumentary,
	CategoryEaster,
	CategoryFiresides,
	CategoryDevotionals,
	CategoryArtwork,
}

var keyPrefixes = []struct {
	prefix   string
	category string
}{
	{"documentary/", CategoryDocumentary},
	{"easter/", CategoryEaster},
	{"firesides/", CategoryFiresides},
	{"devotionals/", CategoryDevotionals},
	{"artwork/", CategoryArtwork},
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

// Catalog is the published catalog document.
type Catalog struct {
	Version   int             `json:"version"`
	UpdatedAt string          `json:"updatedAt"`
	Series    []CatalogSeries `json:"series"`
}

// CatalogSeries is one series of the catalog.
type CatalogSeries struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Episodes    []CatalogEpisode `json:"episodes,omitempty"`
}

// CatalogEpisode is one episode of a series.
type CatalogEpisode struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	AudioAvailable bool             `json:"audioAvailable,omitempty"`
	Segments       []CatalogSegment `json:"segments,omitempty"`
}

// CatalogSegment is one audio segment of an episode. AudioURL is the object key.
type CatalogSegment struct {
	Index           int     `json:"index"`
	Title           string  `json:"title"`
	Voice           string  `json:"voice,omitempty"`
	AudioURL        string  `json:"audioUrl"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
	AudioAvailable  bool    `json:"audioAvailable,omitempty"`
}

// Object is one stored object of the bucket.
type Object struct {
	Key          string
	Size         int64
	LastModified string
	ContentType  string
}

// Dashboard is the aggregated view.
type Dashboard struct {
	GeneratedAt string        `json:"generatedAt"`
	Catalog     CatalogInfo   `json:"catalog"`
	Overview    Overview      `json:"overview"`
	Series      []SeriesView  `json:"series"`
	Artwork     []ArtworkView `json:"artwork"`
	Security    Security      `json:"security"`
}

// CatalogInfo identifies the catalog revision.
type CatalogInfo struct {
	Version   int    `json:"version"`
	UpdatedAt string `json:"updatedAt"`
}

// Overview summarizes the bucket.
type Overview struct {
	TotalFiles           int                   `json:"totalFiles"`
	TotalBytes           int64                 `json:"totalBytes"`
	CategoryBreakdown    []CategoryStat        `json:"categoryBreakdown"`
	CompletionByCategory map[string]Completion `json:"completionByCategory"`
}

// CategoryStat counts the files and bytes under one category prefix.
type CategoryStat struct {
	Category string `json:"category"`
	Files    int    `json:"files"`
	Bytes    int64  `json:"bytes"`
}

// Completion counts completed episodes against all episodes.
type Completion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// SeriesView is a catalog series annotated with what is present in the bucket.
type SeriesView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category"`
	Episodes    []EpisodeView `json:"episodes"`
	Totals      SeriesTotals  `json:"totals"`
}

// SeriesTotals aggregates a series' episodes.
type SeriesTotals struct {
	Episodes          int `json:"episodes"`
	CompletedEpisodes int `json:"completedEpisodes"`
	EpisodesWithAudio int `json:"episodesWithAudio"`
	Segments          int `json:"segments"`
	CompletedSegments int `json:"completedSegments"`
}

// EpisodeView is a catalog episode with completion.
type EpisodeView struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	AudioAvailable    bool          `json:"audioAvailable,omitempty"`
	HasAudio          bool          `json:"hasAudio"`
	IsComplete        bool          `json:"isComplete"`
	CompletedSegments int           `json:"completedSegments"`
	TotalSegments     int           `json:"totalSegments"`
	Segments          []SegmentView `json:"segments"`
}

// SegmentView is a catalog segment joined with its stored object.
type SegmentView struct {
	CatalogSegment
	Key          string  `json:"key"`
	HasAudio     bool    `json:"hasAudio"`
	FileSize     *int64  `json:"fileSize"`
	LastModified *string `json:"lastModified"`
	ContentType  *string `json:"contentType"`
}

// ArtworkView is an image under artwork/.
type ArtworkView struct {
	Key          string   `json:"key"`
	Filename     string   `json:"filename"`
	Size         int64    `json:"size"`
	LastModified *string  `json:"lastModified"`
	ContentType  *string  `json:"contentType"`
	Tags         []string `json:"tags"`
	Category     string   `json:"category"`
}

// Security describes how the data behind the dashboard is protected.
type Security struct {
	Status          string `json:"status"`
	APIAuth         string `json:"apiAuth"`
	DashboardAccess string `json:"dashboardAccess"`
}

// CategoryFromKey classifies an object key by its top-level prefix.
func CategoryFromKey(key string) string {
	lower := strings.ToLower(key)
	for _, p := range keyPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.category
		}
	}
	return CategoryOther
}

// InferSeriesCategory classifies a series from its text, falling back to the
// key prefix of its first audio segment.
func InferSeriesCategory(s CatalogSeries) string {
	haystack := strings.ToLower(s.ID + " " + s.Title + " " + s.Description)
	switch {
	case strings.Contains(haystack, "easter"):
		return CategoryEaster
	case strings.Contains(haystack, "fireside"):
		return CategoryFiresides
	case strings.Contains(haystack, "devotional"):
		return CategoryDevotionals
	case strings.Contains(haystack, "cfm"),
		strings.Contains(haystack, "come, follow me"),
		strings.Contains(haystack, "documentary"):
		return CategoryDocumentary
	}

	for _, ep := range s.Episodes {
		for _, seg := range ep.Segments {
			if seg.AudioURL == "" {
				continue
			}
			if c := CategoryFromKey(seg.AudioURL); c != CategoryArtwork && c != CategoryOther {
				return c
			}
			return CategoryOther
		}
	}
	return CategoryOther
}

// IsArtworkImage reports whether key is an image under artwork/.
func IsArtworkImage(key string) bool {
	lower := strings.ToLower(key)
	if !strings.HasPrefix(lower, "artwork/") {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Build joins the catalog with the bucket listing.
func Build(catalog Catalog, objects []Object, now time.Time) Dashboard {
	byKey := make(map[string]Object, len(objects))
	stats := make(map[string]*CategoryStat)
	for _, c := range append(append([]string{}, CategoryOrder...), CategoryOther) {
		stats[c] = &CategoryStat{Category: c}
	}

	var totalBytes int64
	for _, o := range objects {
		byKey[o.Key] = o
		st := stats[CategoryFromKey(o.Key)]
		st.Files++
		st.Bytes += o.Size
		totalBytes += o.Size
	}

	completion := make(map[string]Completion, len(CategoryOrder))
	for _, c := range CategoryOrder {
		completion[c] = Completion{}
	}

	series := make([]SeriesView, 0, len(catalog.Series))
	for _, s := range catalog.Series {
		view := buildSeries(s, byKey)
		if c, ok := completion[view.Category]; ok {
			c.Completed += view.Totals.CompletedEpisodes
			c.Total += view.Totals.Episodes
			completion[view.Category] = c
		}
		series = append(series, view)
	}

	breakdown := make([]CategoryStat, 0, len(CategoryOrder))
	for _, c := range CategoryOrder {
		breakdown = append(breakdown, *stats[c])
	}

	return Dashboard{
		GeneratedAt: now.UTC().Format(time.RFC3339Nano),
		Catalog:     CatalogInfo{Version: catalog.Version, UpdatedAt: catalog.UpdatedAt},
		Overview: Overview{
			TotalFiles:           len(objects),
			TotalBytes:           totalBytes,
			CategoryBreakdown:    breakdown,
			CompletionByCategory: completion,
		},
		Series:  series,
		Artwork: buildArtwork(objects),
		Security: Security{
			Status:          "Protected",
			APIAuth:         "HMAC token auth via X-App-Token validated with APP_SECRET",
			DashboardAccess: "Read-only; R2 credentials are server-side only in this command center API",
		},
	}
}

func buildSeries(s CatalogSeries, byKey map[string]Object) SeriesView {
	view := SeriesView{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Category:    InferSeriesCategory(s),
		Episodes:    make([]EpisodeView, 0, len(s.Episodes)),
	}

	for _, ep := range s.Episodes {
		ev := EpisodeView{
			ID:             ep.ID,
			Title:          ep.Title,
			AudioAvailable: ep.AudioAvailable,
			Segments:       make([]SegmentView, 0, len(ep.Segments)),
		}
		for _, seg := range ep.Segments {
			sv := SegmentView{CatalogSegment: seg, Key: seg.AudioURL}
			obj, found := byKey[seg.AudioURL]
			if found {
				size := obj.Size
				sv.FileSize = &size
				sv.LastModified = optional(obj.LastModified)
				sv.ContentType = optional(obj.ContentType)
			}
			sv.HasAudio = found || seg.AudioAvailable
			if sv.HasAudio {
				ev.CompletedSegments++
			}
			ev.Segments = append(ev.Segments, sv)
		}
		ev.TotalSegments = len(ev.Segments)
		ev.HasAudio = ev.CompletedSegments > 0 || ep.AudioAvailable
		if ev.TotalSegments > 0 {
			ev.IsComplete = ev.CompletedSegments == ev.TotalSegments
		} else {
			ev.IsComplete = ev.HasAudio
		}

		view.Totals.Episodes++
		view.Totals.Segments += ev.TotalSegments
		view.Totals.CompletedSegments += ev.CompletedSegments
		if ev.IsComplete {
			view.Totals.CompletedEpisodes++
		}
		if ev.HasAudio {
			view.Totals.EpisodesWithAudio++
		}
		view.Episodes = append(view.Episodes, ev)
	}
	return view
}

func buildArtwork(objects []Object) []ArtworkView {
	artwork := []ArtworkView{}
	for _, o := range objects {
		if !IsArtworkImage(o.Key) {
			continue
		}
		parts := splitKey(o.Key)
		filename := o.Key
		if len(parts) > 0 {
			filename = parts[len(parts)-1]
		}
		tags := []string{}
		if len(parts) > 2 {
			tags = append(tags, parts[1:len(parts)-1]...)
		}
		category := "uncategorized"
		if len(tags) > 0 {
			category = tags[0]
		}
		artwork = append(artwork, ArtworkView{
			Key:          o.Key,
			Filename:     filename,
			Size:         o.Size,
			LastModified: optional(o.LastModified),
			ContentType:  optional(o.ContentType),
			Tags:         tags,
			Category:     category,
		})
	}
	sort.Slice(artwork, func(i, j int) bool { return artwork[i].Key < artwork[j].Key })
	return artwork
}

// ContentDisposition builds an inline or attachment header for an object key.
// Quotes are stripped from the filename so the header cannot be broken out of.
func ContentDisposition(key string, download bool) string {
	mode := "inline"
	if download {
		mode = "attachment"
	}
	return mode + `; filename="` + SafeFilename(key) + `"`
}

// SafeFilename returns the last path segment of key without double quotes.
func SafeFilename(key string) string {
	parts := splitKey(key)
	name := "lessoncraft-asset"
	if len(parts) > 0 {
		name = parts[len(parts)-1]
	}
	return strings.ReplaceAll(name, `"`, "")
}

func splitKey(key string) []string {
	var parts []string
	for _, p := range strings.Split(key, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
