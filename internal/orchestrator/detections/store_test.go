package detections

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/robodu/edgeml/internal/keyword"
)

func event(kw string, at time.Time) keyword.Event {
	return keyword.Event{Keyword: kw, Confidence: 0.9, Latency: 1500 * time.Microsecond, Timestamp: at}
}

func TestFromEvent(t *testing.T) {
	now := time.Now()
	d := FromEvent(event("maju", now))

	if _, err := uuid.Parse(d.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", d.ID, err)
	}
	if d.Keyword != "maju" || d.Confidence != 0.9 || d.LatencyMS != 1.5 || !d.Timestamp.Equal(now) {
		t.Errorf("FromEvent() = %+v", d)
	}
	if FromEvent(event("maju", now)).ID == d.ID {
		t.Error("detections should get distinct IDs")
	}
}

func TestStoreMaxSize(t *testing.T) {
	s := NewStore(5, 10)
	now := time.Now()
	for i := range 10 {
		s.Add(event("kiri", now.Add(time.Duration(i)*time.Second)))
	}

	all := s.Recent(0)
	if len(all) != 5 {
		t.Fatalf("Recent(0) returned %d, want 5", len(all))
	}
	if !all[0].Timestamp.Equal(now.Add(5 * time.Second)) {
		t.Errorf("oldest kept = %v, want the sixth event", all[0].Timestamp)
	}
}

func TestRecent(t *testing.T) {
	s := NewStore(10, 10)
	now := time.Now()
	for i, kw := range []string{"maju", "mundur", "kanan"} {
		s.Add(event(kw, now.Add(time.Duration(i)*time.Second)))
	}

	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{"maju", "mundur", "kanan"}},
		{2, []string{"mundur", "kanan"}},
		{10, []string{"maju", "mundur", "kanan"}},
	}
	for _, tt := range tests {
		got := s.Recent(tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Recent(%d) returned %d entries, want %d", tt.n, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].Keyword != tt.want[i] {
				t.Errorf("Recent(%d)[%d] = %q, want %q", tt.n, i, got[i].Keyword, tt.want[i])
			}
		}
	}
}

func TestNoHistory(t *testing.T) {
	for _, n := range []int{0, -1} {
		s := NewStore(n, 10)
		d := s.Add(event("maju", time.Now()))
		if d.Keyword != "maju" || d.ID == "" {
			t.Errorf("NewStore(%d).Add() = %+v", n, d)
		}
		if got := s.Recent(0); len(got) != 0 {
			t.Errorf("NewStore(%d) kept %d detections, want 0", n, len(got))
		}
	}
}

func TestEmit(t *testing.T) {
	s := NewStore(10, 10)
	go s.Emit(Detection{Keyword: "robodu"})

	select {
	case d := <-s.Events():
		if d.Keyword != "robodu" {
			t.Errorf("got %q, want robodu", d.Keyword)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for detection")
	}
}

func TestEmitNonBlocking(t *testing.T) {
	s := NewStore(10, 1)
	s.Emit(Detection{Keyword: "1"})

	done := make(chan struct{})
	go func() {
		s.Emit(Detection{Keyword: "2"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Emit blocked on a full buffer")
	}
	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}
}
