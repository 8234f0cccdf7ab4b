package stats

import (
	"errors"
	"testing"
)

func seasons() (regular, post []StatRecord) {
	var b Builder
	regular = []StatRecord{
		b.Label("SEASON_ID", "2003-04").Set("GP", ptr(79)).Set("PTS", ptr(1654)).Build(),
		b.Label("SEASON_ID", "2004-05").Set("GP", ptr(80)).Set("PTS", ptr(2175)).Build(),
		b.Label("SEASON_ID", "2005-06").Set("GP", ptr(0)).Set("PTS", nil).Build(),
	}
	post = []StatRecord{
		FromFloats(map[string]float64{"GP": 5, "PTS": 50, "REB": 20, "AST": 10, "STL": 5, "BLK": 5}),
	}
	return regular, post
}

func TestSelect_Unselected(t *testing.T) {
	regular, post := seasons()

	got := Select(Unselected, regular, post)

	if got.Title != "" {
		t.Errorf("Title = %q; want empty", got.Title)
	}
	if got.Seasons == nil || len(got.Seasons) != 0 {
		t.Errorf("Seasons = %v; want empty non-nil slice", got.Seasons)
	}
}

func TestSelect_RegularSeason(t *testing.T) {
	regular, post := seasons()

	got := Select(RegularSeason, regular, post)

	if got.Title != "Regular Season" {
		t.Errorf("Title = %q; want Regular Season", got.Title)
	}
	if len(got.Seasons) != len(regular) {
		t.Fatalf("len(Seasons) = %d; want %d", len(got.Seasons), len(regular))
	}
	wantOrder := []string{"2003-04", "2004-05", "2005-06"}
	for i, s := range got.Seasons {
		if id := s.Stats.LabelOf("SEASON_ID"); id != wantOrder[i] {
			t.Errorf("Seasons[%d] = %s; want %s", i, id, wantOrder[i])
		}
		if want := Aggregate(regular[i]).Rates; s.Rates != want {
			t.Errorf("Seasons[%d] rates = %+v; want %+v", i, s.Rates, want)
		}
	}
	if got.Seasons[0].Rates.PPG != 20.94 {
		t.Errorf("first season PPG = %v; want 20.94", got.Seasons[0].Rates.PPG)
	}
	if got.Seasons[2].Rates != (Rates{}) {
		t.Errorf("zero-GP season rates = %+v; want zero", got.Seasons[2].Rates)
	}
}

func TestSelect_PostSeason(t *testing.T) {
	regular, post := seasons()

	got := Select(PostSeason, regular, post)

	if got.Title != "Post Season" {
		t.Errorf("Title = %q; want Post Season", got.Title)
	}
	if len(got.Seasons) != 1 {
		t.Fatalf("len(Seasons) = %d; want 1", len(got.Seasons))
	}
	want := Rates{PPG: 10.0, RPG: 4.0, APG: 2.0, STLPG: 1.0, BLKPG: 1.0}
	if got.Seasons[0].Rates != want {
		t.Errorf("rates = %+v; want %+v", got.Seasons[0].Rates, want)
	}
}

func TestSelect_EmptyLists(t *testing.T) {
	got := Select(PostSeason, nil, nil)
	if got.Title != "Post Season" || len(got.Seasons) != 0 {
		t.Errorf("Select(PostSeason, nil, nil) = %+v", got)
	}
}

func TestSelect_Idempotent(t *testing.T) {
	regular, post := seasons()

	a := Select(RegularSeason, regular, post)
	b := Select(RegularSeason, regular, post)

	if a.Title != b.Title || len(a.Seasons) != len(b.Seasons) {
		t.Fatalf("selections differ: %+v vs %+v", a, b)
	}
	for i := range a.Seasons {
		if a.Seasons[i].Rates != b.Seasons[i].Rates || !a.Seasons[i].Stats.Equal(b.Seasons[i].Stats) {
			t.Errorf("season %d differs", i)
		}
	}
	if regular[2].Has("FG3_PCT") {
		t.Error("Select mutated the provider list")
	}
}

func TestParseSeasonCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    SeasonCategory
		wantErr bool
	}{
		{in: "", want: Unselected},
		{in: "---", want: Unselected},
		{in: "Reg. Season", want: RegularSeason},
		{in: "Post Season", want: PostSeason},
		{in: "Regular Season", want: Unselected, wantErr: true},
		{in: "post season", want: Unselected, wantErr: true},
		{in: "playoffs", want: Unselected, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSeasonCategory(tt.in)
		if got != tt.want {
			t.Errorf("ParseSeasonCategory(%q) = %v; want %v", tt.in, got, tt.want)
		}
		if tt.wantErr != (err != nil) {
			t.Errorf("ParseSeasonCategory(%q) err = %v; wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("ParseSeasonCategory(%q) err = %v; want ErrUnknownCategory", tt.in, err)
		}
	}
}

func TestSeasonCategory_StringRoundTrip(t *testing.T) {
	for _, c := range []SeasonCategory{Unselected, RegularSeason, PostSeason} {
		got, err := ParseSeasonCategory(c.String())
		if err != nil || got != c {
			t.Errorf("ParseSeasonCategory(%q) = %v, %v; want %v", c.String(), got, err, c)
		}
	}
	if len(Options) != 3 {
		t.Errorf("len(Options) = %d; want 3", len(Options))
	}
}
