package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guillerg01/date-checker/internal/dates"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func finding(t *testing.T, day int, heading string) dates.Finding {
	t.Helper()
	d, ok := dates.New(2025, time.August, day)
	if !ok {
		t.Fatalf("invalid test date day=%d", day)
	}
	return dates.NewFinding(d, heading)
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	log, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(log.Notified) != 0 {
		t.Errorf("expected empty log, got %d entries", len(log.Notified))
	}
}

func TestStore_MarkAndFilter(t *testing.T) {
	s := newTestStore(t)

	a := finding(t, 4, "Cita 4 de agosto")
	b := finding(t, 5, "Cita 5 de agosto")

	fresh, err := s.FilterNew([]dates.Finding{a, b})
	if err != nil {
		t.Fatalf("FilterNew() error = %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("expected both findings fresh, got %d", len(fresh))
	}

	if err := s.MarkNotified([]dates.Finding{a}); err != nil {
		t.Fatalf("MarkNotified() error = %v", err)
	}

	fresh, err = s.FilterNew([]dates.Finding{a, b})
	if err != nil {
		t.Fatalf("FilterNew() error = %v", err)
	}
	if len(fresh) != 1 || fresh[0].Key() != b.Key() {
		t.Errorf("expected only the unnotified finding, got %v", fresh)
	}
}

func TestStore_MarkNotifiedKeepsFirstTimestamp(t *testing.T) {
	s := newTestStore(t)
	f := finding(t, 4, "Cita 4 de agosto")

	if err := s.MarkNotified([]dates.Finding{f}); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Load()
	stamp := first.Notified[f.Key()]

	if err := s.MarkNotified([]dates.Finding{f}); err != nil {
		t.Fatal(err)
	}
	second, _ := s.Load()
	if second.Notified[f.Key()] != stamp {
		t.Error("re-marking should not overwrite the first-notified timestamp")
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	s1, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	f := finding(t, 4, "Cita 4 de agosto")
	if err := s1.MarkNotified([]dates.Finding{f}); err != nil {
		t.Fatal(err)
	}

	s2, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := s2.FilterNew([]dates.Finding{f})
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 0 {
		t.Error("notified log should survive across store instances")
	}

	if _, err := os.Stat(filepath.Join(dir, notifiedFile)); err != nil {
		t.Errorf("notified file missing: %v", err)
	}
}

func TestStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, notifiedFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Error("expected error for corrupt log file")
	}
}
