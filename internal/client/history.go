package client

import (
	"encoding/json"
	"time"

	domain "github.com/cryvora/cryvora/internal/domain/analysis"
	"github.com/cryvora/cryvora/internal/kvstore"
)

const (
	historyKey = "cryvoraHistory"
	reportsKey = "cryvoraReports"
	themeKey   = "cryvoraTheme"

	// maxHistory bounds the scan history; the oldest entry is evicted.
	maxHistory = 10
)

// EntryKind enum
type EntryKind string

const (
	KindURL   EntryKind = "URL"
	KindImage EntryKind = "Image"
)

// HistoryEntry is one past scan, newest first in the stored list.
type HistoryEntry struct {
	Kind       EntryKind        `json:"type"`
	InputLabel string           `json:"input"`
	Risk       domain.RiskLevel `json:"risk"`
	Timestamp  time.Time        `json:"timestamp"`
}

// ReportEntry is a user-submitted scam description; the list is append-only.
type ReportEntry struct {
	Report    string    `json:"report"`
	Timestamp time.Time `json:"timestamp"`
}

// LocalState wraps the kvstore with the dashboard's record types.
type LocalState struct {
	store kvstore.Store
}

func NewLocalState(store kvstore.Store) *LocalState {
	return &LocalState{store: store}
}

// History returns the stored scan history, newest first.
func (l *LocalState) History() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := l.load(historyKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddHistory prepends an entry and evicts beyond maxHistory.
func (l *LocalState) AddHistory(e HistoryEntry) error {
	entries, err := l.History()
	if err != nil {
		return err
	}
	entries = append([]HistoryEntry{e}, entries...)
	if len(entries) > maxHistory {
		entries = entries[:maxHistory]
	}
	return l.save(historyKey, entries)
}

// Reports returns all submitted reports in submission order.
func (l *LocalState) Reports() ([]ReportEntry, error) {
	var entries []ReportEntry
	if err := l.load(reportsKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddReport appends; reports are never evicted.
func (l *LocalState) AddReport(e ReportEntry) error {
	entries, err := l.Reports()
	if err != nil {
		return err
	}
	return l.save(reportsKey, append(entries, e))
}

// Theme returns the stored theme preference, defaulting to "light".
func (l *LocalState) Theme() (string, error) {
	v, ok, err := l.store.Get(themeKey)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "light", nil
	}
	return v, nil
}

func (l *LocalState) SetTheme(theme string) error {
	return l.store.Set(themeKey, theme)
}

// Clear removes history and reports, keeping the theme.
func (l *LocalState) Clear() error {
	if err := l.store.Remove(historyKey); err != nil {
		return err
	}
	return l.store.Remove(reportsKey)
}

// Stats summarizes history for the dashboard header.
type Stats struct {
	TotalScans  int
	RecentAlert bool // any Malicious verdict in history
	LastScan    time.Time
}

func (l *LocalState) Stats() (Stats, error) {
	entries, err := l.History()
	if err != nil {
		return Stats{}, err
	}
	s := Stats{TotalScans: len(entries)}
	for _, e := range entries {
		if e.Risk == domain.RiskMalicious {
			s.RecentAlert = true
		}
	}
	if len(entries) > 0 {
		s.LastScan = entries[0].Timestamp
	}
	return s, nil
}

func (l *LocalState) load(key string, out any) error {
	raw, ok, err := l.store.Get(key)
	if err != nil || !ok {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

func (l *LocalState) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return l.store.Set(key, string(raw))
}
