package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksSourceAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordSourceAttempt("game_stats", 10*time.Millisecond, nil)
	rec.RecordSourceAttempt("game_stats", 15*time.Millisecond, errors.New("boom"))
	rec.RecordSourceAttempt("schedule", 5*time.Millisecond, nil)

	snap := rec.Source("game_stats")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastCallLatency)
	}
	if got := rec.Source("schedule").Calls; got != 1 {
		t.Fatalf("expected 1 schedule call, got %d", got)
	}
	if got := rec.Source("unknown"); got.Calls != 0 {
		t.Fatalf("expected empty snapshot for unknown operation, got %+v", got)
	}
}

func TestRecorderTracksBatches(t *testing.T) {
	rec := NewRecorder()
	rec.RecordStatsBatch(20*time.Millisecond, map[string]int{"usable": 2, "error": 1})
	rec.RecordStatsBatch(30*time.Millisecond, map[string]int{"usable": 1})
	rec.RecordStaleBatch()

	snap := rec.Batches()
	if snap.Batches != 2 || snap.Games != 4 || snap.Stale != 1 {
		t.Fatalf("unexpected batch snapshot %+v", snap)
	}
	if snap.ByStatus["usable"] != 3 || snap.ByStatus["error"] != 1 {
		t.Fatalf("unexpected status breakdown %+v", snap.ByStatus)
	}
	if snap.LastDuration != 30*time.Millisecond {
		t.Fatalf("expected last duration 30ms, got %s", snap.LastDuration)
	}

	// Snapshot is a copy.
	snap.ByStatus["usable"] = 99
	if rec.Batches().ByStatus["usable"] != 3 {
		t.Fatal("expected snapshot mutation not to leak into recorder")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordSourceAttempt("schedule", time.Millisecond, nil)
	rec.RecordStatsBatch(time.Millisecond, nil)
	rec.RecordStaleBatch()
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	if rec.Source("schedule").Calls != 0 || rec.Batches().Batches != 0 {
		t.Fatal("expected zero snapshots from nil recorder")
	}
}
