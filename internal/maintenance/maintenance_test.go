package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/albapepper/courtside/internal/directory"
	"github.com/albapepper/courtside/internal/provider"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeStore struct {
	before     time.Time
	snapCalls  int
	tokenCalls int
	snapErr    error
	saved      []provider.PlayerSummary
}

func (f *fakeStore) PruneSnapshots(_ context.Context, before time.Time) (int64, error) {
	f.snapCalls++
	f.before = before
	return 3, f.snapErr
}

func (f *fakeStore) PruneRevokedTokens(context.Context) (int64, error) {
	f.tokenCalls++
	return 2, nil
}

func (f *fakeStore) UpsertPlayers(_ context.Context, p []provider.PlayerSummary) (int, error) {
	f.saved = p
	return len(p), nil
}

func (f *fakeStore) ListPlayers(context.Context) ([]provider.PlayerSummary, error) {
	return f.saved, nil
}

type fakeSource struct{}

func (fakeSource) AllPlayers(context.Context, string) ([]provider.PlayerSummary, error) {
	return []provider.PlayerSummary{{ID: 2544, FullName: "LeBron James"}}, nil
}

func TestPrune(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	st := &fakeStore{}

	res := Prune(context.Background(), st, 30*24*time.Hour, now, discard)
	if res.Snapshots != 3 || res.Tokens != 2 {
		t.Errorf("result = %+v", res)
	}
	if want := now.Add(-30 * 24 * time.Hour); !st.before.Equal(want) {
		t.Errorf("cutoff = %v, want %v", st.before, want)
	}
}

func TestPruneZeroRetentionKeepsSnapshots(t *testing.T) {
	st := &fakeStore{}
	Prune(context.Background(), st, 0, time.Now(), discard)
	if st.snapCalls != 0 {
		t.Error("snapshots pruned with zero retention")
	}
	if st.tokenCalls != 1 {
		t.Error("revocations not pruned")
	}
}

func TestPruneContinuesAfterSnapshotFailure(t *testing.T) {
	st := &fakeStore{snapErr: errors.New("boom")}
	Prune(context.Background(), st, time.Hour, time.Now(), discard)
	if st.tokenCalls != 1 {
		t.Error("token prune skipped after snapshot failure")
	}
}

func TestJobs(t *testing.T) {
	st := &fakeStore{}
	deps := Deps{Directory: directory.New(), Source: fakeSource{}, Store: st}

	got := jobs(deps, DefaultConfig(), discard)
	if len(got) != 2 {
		t.Fatalf("jobs = %d, want 2", len(got))
	}

	got[0].run(context.Background())
	if deps.Directory.Len() != 1 || len(st.saved) != 1 {
		t.Errorf("directory job did not refresh: len=%d saved=%d", deps.Directory.Len(), len(st.saved))
	}

	if got := jobs(deps, Config{}, discard); len(got) != 0 {
		t.Errorf("zero config scheduled %d jobs", len(got))
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, Deps{Store: &fakeStore{}}, Config{PruneInterval: time.Hour}, discard)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
