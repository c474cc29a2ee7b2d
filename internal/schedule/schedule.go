package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClassEntry is a single class offered on a day.
type ClassEntry struct {
	Name      string `json:"name" yaml:"name"`
	StartTime string `json:"startTime" yaml:"startTime"`
}

func (c ClassEntry) String() string {
	return fmt.Sprintf("%s at %s", c.Name, c.StartTime)
}

// document is the on-disk shape: { "days": { "Monday": [ {name, startTime}, ... ] } }.
type document struct {
	Days map[string][]ClassEntry `json:"days" yaml:"days"`
}

// Schedule is the weekly class timetable. It is immutable once built and safe
// for concurrent reads.
type Schedule struct {
	days    map[Day][]ClassEntry
	missing []Day
}

// New builds a Schedule from a day-keyed mapping. Days absent from the
// mapping get an empty sequence.
func New(days map[Day][]ClassEntry) *Schedule {
	s := &Schedule{days: make(map[Day][]ClassEntry, len(dayNames))}
	for _, d := range Days() {
		entries, ok := days[d]
		if !ok {
			s.missing = append(s.missing, d)
		}
		s.days[d] = append([]ClassEntry(nil), entries...)
	}
	return s
}

// Load reads a schedule document from path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func ParseJSON(data []byte) (*Schedule, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding schedule json: %w", err)
	}
	return fromDocument(doc)
}

func ParseYAML(data []byte) (*Schedule, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding schedule yaml: %w", err)
	}
	return fromDocument(doc)
}

func fromDocument(doc document) (*Schedule, error) {
	if doc.Days == nil {
		return nil, fmt.Errorf("schedule: document has no days mapping")
	}

	days := make(map[Day][]ClassEntry, len(doc.Days))
	for name, entries := range doc.Days {
		d, err := ParseDay(name)
		if err != nil {
			return nil, err
		}
		if _, dup := days[d]; dup {
			return nil, fmt.Errorf("schedule: day %s listed twice", d)
		}
		for i, e := range entries {
			if e.Name == "" || e.StartTime == "" {
				return nil, fmt.Errorf("schedule: %s entry %d needs name and startTime", d, i)
			}
		}
		days[d] = entries
	}
	return New(days), nil
}

// ClassesFor returns the classes offered on day in source order.
func (s *Schedule) ClassesFor(day Day) ([]ClassEntry, error) {
	if !day.Valid() {
		return nil, &NotFoundError{Day: day.String()}
	}
	return append([]ClassEntry(nil), s.days[day]...), nil
}

// MissingDays lists the days the source document did not mention.
func (s *Schedule) MissingDays() []Day {
	return append([]Day(nil), s.missing...)
}

// Format renders entries as "name at startTime", dropping exact duplicates
// and joining with ", ".
func Format(entries []ClassEntry) string {
	seen := make(map[string]struct{}, len(entries))
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		s := e.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
