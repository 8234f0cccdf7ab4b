package directory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/albapepper/courtside/internal/provider"
)

var testPlayers = []provider.PlayerSummary{
	{ID: 2544, FullName: "LeBron James", IsActive: true},
	{ID: 201939, FullName: "Stephen Curry", IsActive: true},
	{ID: 977, FullName: "Kobe Bryant"},
	{ID: 1628369, FullName: "Jayson Tatum", IsActive: true},
	{ID: 203076, FullName: "Anthony Davis", IsActive: true},
	{ID: 1630, FullName: "Dell Curry"},
}

func loaded() *Directory {
	d := New()
	d.Replace(testPlayers)
	return d
}

func ids(players []provider.PlayerSummary) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFindByFullName(t *testing.T) {
	d := loaded()
	tests := []struct {
		query string
		want  []int
	}{
		{"lebron james", []int{2544}},
		{"CURRY", []int{201939, 1630}},
		{"  kobe ", []int{977}},
		{"nobody", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := ids(d.FindByFullName(tt.query)); !equalIDs(got, tt.want) {
				t.Errorf("FindByFullName(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchFuzzyFallback(t *testing.T) {
	d := loaded()

	got := d.Search("lbrn", 0)
	if len(got) == 0 || got[0].ID != 2544 {
		t.Errorf("subsequence search = %v", ids(got))
	}

	got = d.Search("Jayson Tatun", 0)
	if len(got) == 0 || got[0].ID != 1628369 {
		t.Errorf("typo search = %v", ids(got))
	}

	if got := d.Search("zzzzqqq", 0); len(got) != 0 {
		t.Errorf("unrelated query matched %v", ids(got))
	}
}

func TestSearchLimit(t *testing.T) {
	d := loaded()
	if got := d.Search("curry", 1); len(got) != 1 || got[0].ID != 201939 {
		t.Errorf("limited search = %v", ids(got))
	}
}

func TestGetAndLen(t *testing.T) {
	d := loaded()
	if d.Len() != len(testPlayers) {
		t.Errorf("Len = %d", d.Len())
	}
	if p, ok := d.Get(977); !ok || p.FullName != "Kobe Bryant" {
		t.Errorf("Get(977) = %+v, %v", p, ok)
	}
	if _, ok := d.Get(1); ok {
		t.Error("Get(1) found a player")
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	in := []provider.PlayerSummary{{ID: 1, FullName: "A B"}}
	d := New()
	d.Replace(in)
	in[0].FullName = "changed"
	if p, _ := d.Get(1); p.FullName != "A B" {
		t.Errorf("index aliased caller slice: %q", p.FullName)
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"lebron james":       "Lebron James",
		"SHAQUILLE o'neal":   "Shaquille O'Neal",
		"karl-anthony towns": "Karl-Anthony Towns",
		"":                   "",
	}
	for in, want := range tests {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeSource struct {
	players []provider.PlayerSummary
	err     error
}

func (f fakeSource) AllPlayers(context.Context, string) ([]provider.PlayerSummary, error) {
	return f.players, f.err
}

type fakeStore struct {
	saved []provider.PlayerSummary
}

func (f *fakeStore) UpsertPlayers(_ context.Context, p []provider.PlayerSummary) (int, error) {
	f.saved = p
	return len(p), nil
}

func (f *fakeStore) ListPlayers(context.Context) ([]provider.PlayerSummary, error) {
	return f.saved, nil
}

func TestRefresh(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := New()
	st := &fakeStore{}

	n, err := d.Refresh(context.Background(), fakeSource{players: testPlayers}, st, "2024-25", logger)
	if err != nil || n != len(testPlayers) {
		t.Fatalf("Refresh = %d, %v", n, err)
	}
	if len(st.saved) != len(testPlayers) || d.Len() != len(testPlayers) {
		t.Errorf("saved %d, indexed %d", len(st.saved), d.Len())
	}

	other := New()
	if n, err := other.LoadFromStore(context.Background(), st); err != nil || n != len(testPlayers) {
		t.Errorf("LoadFromStore = %d, %v", n, err)
	}
}

func TestRefreshKeepsIndexOnFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := loaded()

	if _, err := d.Refresh(context.Background(), fakeSource{err: errors.New("boom")}, nil, "2024-25", logger); err == nil {
		t.Fatal("expected error")
	}
	if _, err := d.Refresh(context.Background(), fakeSource{}, nil, "2024-25", logger); err == nil {
		t.Fatal("expected error for empty list")
	}
	if d.Len() != len(testPlayers) {
		t.Errorf("index changed after failed refresh: %d", d.Len())
	}
}

func TestFindByFullNameIgnoresAccents(t *testing.T) {
	d := New()
	d.Replace([]provider.PlayerSummary{
		{ID: 1629029, FullName: "Luka Dončić"},
		{ID: 203999, FullName: "Nikola Jokić"},
	})
	tests := []struct {
		query string
		want  []int
	}{
		{"luka doncic", []int{1629029}},
		{"Jokic", []int{203999}},
		{"JOKIĆ", []int{203999}},
		{"dončić", []int{1629029}},
	}
	for _, tt := range tests {
		if got := ids(d.FindByFullName(tt.query)); !equalIDs(got, tt.want) {
			t.Errorf("FindByFullName(%q) = %v; want %v", tt.query, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	tests := map[string]string{
		"Luka Dončić":   "luka doncic",
		"Nikola Jokić":  "nikola jokic",
		"Dāvis Bertāns": "davis bertans",
		"LeBron James":  "lebron james",
	}
	for in, want := range tests {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestSearchIgnoresOverlongQuery(t *testing.T) {
	d := loaded()
	q := strings.Repeat("x", MaxQueryLength+1)
	if got := d.Search(q, 0); len(got) != 0 {
		t.Errorf("Search(overlong) = %v; want none", ids(got))
	}
}
