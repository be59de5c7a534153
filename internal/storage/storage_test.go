package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type testRecord struct {
	Phrase   string `json:"phrase"`
	Command  string `json:"command"`
	ExitCode int    `json:"exitCode"`
}

func TestPutAndGet(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	rec := testRecord{Phrase: "check status", Command: "git status", ExitCode: 0}
	if err := s.Put(ctx, []string{"history", "01A"}, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got testRecord
	if err := s.Get(ctx, []string{"history", "01A"}, &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != rec {
		t.Errorf("record = %+v, want %+v", got, rec)
	}
}

func TestGetNotFound(t *testing.T) {
	s := New(t.TempDir())

	var rec testRecord
	err := s.Get(context.Background(), []string{"history", "missing"}, &rec)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := os.MkdirAll(filepath.Join(dir, "history"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "history", "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var rec testRecord
	err := s.Get(context.Background(), []string{"history", "bad"}, &rec)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want decode error", err)
	}
}

func TestDelete(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	if err := s.Put(ctx, []string{"history", "gone"}, testRecord{Phrase: "push"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, []string{"history", "gone"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var rec testRecord
	if err := s.Get(ctx, []string{"history", "gone"}, &rec); !errors.Is(err, ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}

	// Deleting again is fine.
	if err := s.Delete(ctx, []string{"history", "gone"}); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestListSortedByKey(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	// Insert out of order; directory listing comes back sorted, which
	// is what makes lexicographic keys chronological.
	for _, key := range []string{"01C", "01A", "01B"} {
		if err := s.Put(ctx, []string{"history", key}, testRecord{Phrase: key}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	keys, err := s.List(ctx, []string{"history"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"01A", "01B", "01C"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestListEmpty(t *testing.T) {
	s := New(t.TempDir())

	keys, err := s.List(context.Background(), []string{"nothing"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %v, want empty", keys)
	}
}

func TestScan(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	want := map[string]testRecord{
		"01A": {Phrase: "check status", Command: "git status"},
		"01B": {Phrase: "push", Command: "git push"},
	}
	for key, rec := range want {
		if err := s.Put(ctx, []string{"history", key}, rec); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	var order []string
	got := make(map[string]testRecord)
	err := s.Scan(ctx, []string{"history"}, func(key string, data json.RawMessage) error {
		var rec testRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		order = append(order, key)
		got[key] = rec
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("scanned %d records, want %d", len(got), len(want))
	}
	for key, rec := range want {
		if got[key] != rec {
			t.Errorf("record %s = %+v, want %+v", key, got[key], rec)
		}
	}
	if order[0] != "01A" || order[1] != "01B" {
		t.Errorf("scan order = %v, want key order", order)
	}
}

func TestScanStopsOnError(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"01A", "01B", "01C"} {
		if err := s.Put(ctx, []string{"history", key}, testRecord{}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	sentinel := errors.New("stop")
	var seen int
	err := s.Scan(ctx, []string{"history"}, func(key string, data json.RawMessage) error {
		seen++
		if seen == 2 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want sentinel", err)
	}
	if seen != 2 {
		t.Errorf("seen = %d, want 2", seen)
	}
}

func TestExists(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	if s.Exists(ctx, []string{"history", "x"}) {
		t.Error("record should not exist yet")
	}
	if err := s.Put(ctx, []string{"history", "x"}, testRecord{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !s.Exists(ctx, []string{"history", "x"}) {
		t.Error("record should exist")
	}
}

func TestConcurrentWritesSameKey(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			rec := testRecord{Phrase: "concurrent", ExitCode: val}
			if err := s.Put(ctx, []string{"history", "same"}, rec); err != nil {
				t.Errorf("Put: %v", err)
			}
		}(i)
	}
	wg.Wait()

	var rec testRecord
	if err := s.Get(ctx, []string{"history", "same"}, &rec); err != nil {
		t.Fatalf("Get after concurrent writes: %v", err)
	}
	if rec.Phrase != "concurrent" {
		t.Errorf("record = %+v, want intact phrase", rec)
	}
}

func TestNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Put(context.Background(), []string{"history", "a"}, testRecord{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	tmpPath := filepath.Join(dir, "history", "a.json.tmp")
	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Error("temp file left behind after write")
	}
}
