// Package archive maintains the persisted record of published editions and
// regenerates the browsable index from it.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"GridironDigest/internal/domain"
	"GridironDigest/internal/ports"
)

// Entry is one published edition within a week group.
type Entry struct {
	Type        domain.Granularity `json:"type"`
	Day         string             `json:"day,omitempty"`
	Date        string             `json:"date,omitempty"`
	Filename    string             `json:"filename"`
	GameCount   int                `json:"game_count"`
	GeneratedAt string             `json:"generated_at"`
}

// WeekGroup collects the editions published for one (year, week).
type WeekGroup struct {
	Year    int     `json:"year"`
	Week    int     `json:"week"`
	Entries []Entry `json:"entries"`
}

// Document is the whole persisted archive.
type Document struct {
	Newsletters []WeekGroup `json:"newsletters"`
}

// Store owns the archive file and the index document derived from it.
type Store struct {
	Path     string
	DocsDir  string
	Renderer ports.Renderer
	Branding IndexBranding
}

// IndexBranding names the newsletter on the index page.
type IndexBranding struct {
	Name    string
	Tagline string
}

// RecordPublication upserts one edition into the archive. Re-publishing the
// same (year, week, type, day) replaces the prior entry rather than adding a
// duplicate. The whole document is rewritten atomically.
func (s *Store) RecordPublication(meta domain.Metadata, filename string, gameCount int) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	group := findOrCreateGroup(&doc, meta.Year, meta.Week)

	entry := Entry{
		Type:        meta.Type,
		Filename:    filename,
		GameCount:   gameCount,
		GeneratedAt: generatedAt(meta),
	}
	if meta.Type == domain.GranularityDay {
		parsed, err := domain.ParseDate(meta.Date)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		entry.Day = parsed.Format("Monday")
		entry.Date = parsed.Format("2006-01-02")
	}

	// Replace any prior entry with the same (type, day) key.
	kept := group.Entries[:0]
	for _, existing := range group.Entries {
		if existing.Type == entry.Type && existing.Day == entry.Day {
			continue
		}
		kept = append(kept, existing)
	}
	group.Entries = append(kept, entry)

	sortEntries(group.Entries)
	sortGroups(doc.Newsletters)

	return s.save(doc)
}

// RebuildIndex regenerates the index document purely from the archive's
// current contents. Calling it twice with no archive changes produces
// byte-identical output.
func (s *Store) RebuildIndex() error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	html, err := s.Renderer.Render("index", indexView(doc, s.Branding))
	if err != nil {
		return fmt.Errorf("archive: render index: %w", err)
	}

	if err := os.MkdirAll(s.DocsDir, 0o755); err != nil {
		return fmt.Errorf("archive: create docs directory: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.DocsDir, "index.html"), []byte(html))
}

func (s *Store) load() (Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{Newsletters: []WeekGroup{}}, nil
		}
		return Document{}, fmt.Errorf("archive: read %s: %w", s.Path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("archive: parse %s: %w", s.Path, err)
	}
	if doc.Newsletters == nil {
		doc.Newsletters = []WeekGroup{}
	}
	return doc, nil
}

func (s *Store) save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("archive: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("archive: create directory: %w", err)
	}
	return writeFileAtomic(s.Path, data)
}

func findOrCreateGroup(doc *Document, year, week int) *WeekGroup {
	for i := range doc.Newsletters {
		group := &doc.Newsletters[i]
		if group.Year == year && group.Week == week {
			return group
		}
	}
	doc.Newsletters = append(doc.Newsletters, WeekGroup{Year: year, Week: week, Entries: []Entry{}})
	return &doc.Newsletters[len(doc.Newsletters)-1]
}

// dayRank orders day entries Thursday-first to match the season cycle.
var dayRank = map[string]int{
	"Thursday":  0,
	"Friday":    1,
	"Saturday":  2,
	"Sunday":    3,
	"Monday":    4,
	"Tuesday":   5,
	"Wednesday": 6,
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Type != b.Type {
			// Day entries before the whole-week entry.
			return a.Type == domain.GranularityDay
		}
		return dayRank[a.Day] < dayRank[b.Day]
	})
}

func sortGroups(groups []WeekGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Week > b.Week
	})
}

func generatedAt(meta domain.Metadata) string {
	if meta.GeneratedAt != "" {
		return meta.GeneratedAt
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// writeFileAtomic replaces path via temp-file-then-rename so a concurrent
// reader never observes a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
