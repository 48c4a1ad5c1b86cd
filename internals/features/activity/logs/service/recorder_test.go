package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/activity/logs/model"
)

type memStore struct {
	mu    sync.Mutex
	rows  []*model.ActivityLogModel
	err   error
	block chan struct{}
}

func (s *memStore) Save(_ context.Context, row *model.ActivityLogModel) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, row)
	return nil
}

func (s *memStore) saved() []*model.ActivityLogModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.ActivityLogModel(nil), s.rows...)
}

func TestLoggerWritesEntries(t *testing.T) {
	store := &memStore{}
	l := NewLogger(store, Config{BufferSize: 8})

	uid := uuid.New()
	l.Record(Entry{
		UserID:    &uid,
		Action:    model.ActionCreate,
		Target:    "Artikel",
		Details:   `Membuat artikel "Gempa Bumi M5.0!!" (slug: gempa-bumi-m50)`,
		IPAddress: "10.0.0.7",
		Metadata:  map[string]any{"slug": "gempa-bumi-m50"},
	})
	l.Record(Entry{Action: model.ActionLogin, Target: "Auth"})
	l.Close()

	rows := store.saved()
	if len(rows) != 2 {
		t.Fatalf("saved %d rows", len(rows))
	}
	first := rows[0]
	if first.UserID == nil || *first.UserID != uid || first.Action != model.ActionCreate {
		t.Fatalf("unexpected row %+v", first)
	}
	if first.IPAddress == nil || *first.IPAddress != "10.0.0.7" {
		t.Fatalf("ip %v", first.IPAddress)
	}
	if first.Metadata["slug"] != "gempa-bumi-m50" {
		t.Fatalf("metadata %v", first.Metadata)
	}
	if rows[1].IPAddress != nil || rows[1].UserID != nil {
		t.Fatalf("empty optional fields must stay nil: %+v", rows[1])
	}
}

func TestLoggerSwallowsStoreErrors(t *testing.T) {
	store := &memStore{err: errors.New("relation activity_logs does not exist")}
	l := NewLogger(store, Config{BufferSize: 4})

	done := make(chan struct{})
	go func() {
		l.Record(Entry{Action: model.ActionDelete, Target: "Video"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked")
	}
	l.Close()
}

func TestLoggerDropsWhenBufferFull(t *testing.T) {
	store := &memStore{block: make(chan struct{})}
	l := NewLogger(store, Config{BufferSize: 1})

	// entry pertama diambil writer lalu tertahan di Save; sisanya mengisi buffer.
	for i := 0; i < 10; i++ {
		l.Record(Entry{Action: model.ActionUpdate, Target: "Stasiun IKM"})
	}
	close(store.block)
	l.Close()

	n := len(store.saved())
	if n < 1 || n > 2 {
		t.Fatalf("saved %d rows, want 1 or 2 with buffer size 1", n)
	}
}

func TestLoggerRecordAfterCloseIsNoop(t *testing.T) {
	store := &memStore{}
	l := NewLogger(store, Config{})
	l.Close()
	l.Close()
	l.Record(Entry{Action: model.ActionCreate, Target: "Berita"})
	if len(store.saved()) != 0 {
		t.Fatal("entry written after close")
	}
}
