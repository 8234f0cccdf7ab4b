package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/albapepper/courtside/internal/provider"
	"github.com/jackc/pgx/v5/pgconn"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCreateUser(t *testing.T) {
	db := newFakeDB()
	db.row["user_insert"] = []any{int64(7), now}
	s := New(db)

	u, err := s.CreateUser(context.Background(), "lebron", "lj@example.com", "hash", "")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != 7 || u.Username != "lebron" || !u.CreatedAt.Equal(now) {
		t.Errorf("user = %+v", u)
	}
	if got := db.last().args[3]; got != nil {
		t.Errorf("empty favourite team should insert NULL, got %v", got)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db := newFakeDB()
	db.rowErr["user_insert"] = &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	s := New(db)

	_, err := s.CreateUser(context.Background(), "lebron", "lj@example.com", "hash", "LAL")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestUserByUsernameNotFound(t *testing.T) {
	s := New(newFakeDB())
	_, err := s.UserByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserByID(t *testing.T) {
	db := newFakeDB()
	db.row["user_by_id"] = []any{int64(3), "steph", "sc@example.com", "hash", "GSW", now}
	s := New(db)

	u, err := s.UserByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if u.FavoriteTeam != "GSW" || u.PasswordHash != "hash" {
		t.Errorf("user = %+v", u)
	}
}

func TestAddRosterEntry(t *testing.T) {
	db := newFakeDB()
	db.row["roster_exists"] = []any{false}
	db.row["roster_insert"] = []any{int64(11), now}
	s := New(db)

	e, err := s.AddRosterEntry(context.Background(), 1, 2544, "LeBron James", "img")
	if err != nil {
		t.Fatalf("AddRosterEntry: %v", err)
	}
	if e.ID != 11 || e.PlayerID != 2544 || e.PlayerName != "LeBron James" {
		t.Errorf("entry = %+v", e)
	}
}

func TestAddRosterEntryDuplicate(t *testing.T) {
	db := newFakeDB()
	db.row["roster_exists"] = []any{true}
	s := New(db)

	_, err := s.AddRosterEntry(context.Background(), 1, 2544, "LeBron James", "img")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	for _, c := range db.calls {
		if c.name == "roster_insert" {
			t.Fatal("insert should not run for an existing entry")
		}
	}
}

func TestAddRosterEntryRace(t *testing.T) {
	db := newFakeDB()
	db.row["roster_exists"] = []any{false}
	db.rowErr["roster_insert"] = &pgconn.PgError{Code: "23505"}
	s := New(db)

	_, err := s.AddRosterEntry(context.Background(), 1, 2544, "LeBron James", "img")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestListRoster(t *testing.T) {
	db := newFakeDB()
	db.rows["roster_list"] = [][]any{
		{int64(1), int64(9), 2544, "LeBron James", "a", now},
		{int64(2), int64(9), 201939, "Stephen Curry", "b", now.Add(time.Minute)},
	}
	s := New(db)

	entries, err := s.ListRoster(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListRoster: %v", err)
	}
	if len(entries) != 2 || entries[0].PlayerID != 2544 || entries[1].PlayerName != "Stephen Curry" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestListRosterEmpty(t *testing.T) {
	s := New(newFakeDB())
	entries, err := s.ListRoster(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListRoster: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty non-nil slice", entries)
	}
}

func TestRemoveRosterEntry(t *testing.T) {
	db := newFakeDB()
	db.execTag["roster_delete"] = "DELETE 1"
	s := New(db)

	if err := s.RemoveRosterEntry(context.Background(), 1, 2544); err != nil {
		t.Fatalf("RemoveRosterEntry: %v", err)
	}

	db.execTag["roster_delete"] = "DELETE 0"
	if err := s.RemoveRosterEntry(context.Background(), 1, 2544); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpsertPlayerProfileDefaults(t *testing.T) {
	db := newFakeDB()
	db.row["profile_upsert"] = []any{2544, DefaultPlayerName, DefaultPlayerImageURL, DefaultBackgroundColour, now}
	s := New(db)

	p, err := s.UpsertPlayerProfile(context.Background(), PlayerProfile{PlayerID: 2544})
	if err != nil {
		t.Fatalf("UpsertPlayerProfile: %v", err)
	}
	args := db.last().args
	if args[1] != DefaultPlayerName || args[2] != DefaultPlayerImageURL || args[3] != nil {
		t.Errorf("args = %v", args)
	}
	if p.BackgroundColour != DefaultBackgroundColour {
		t.Errorf("colour = %q", p.BackgroundColour)
	}
}

func TestPlayerProfileNotFound(t *testing.T) {
	s := New(newFakeDB())
	if _, err := s.PlayerProfile(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestComments(t *testing.T) {
	db := newFakeDB()
	db.row["comment_insert"] = []any{int64(5), now}
	db.rows["comment_list"] = [][]any{
		{int64(5), 2544, int64(1), "lebron", "great season", now},
	}
	s := New(db)

	c, err := s.AddComment(context.Background(), 2544, 1, "great season")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if c.ID != 5 || c.Body != "great season" {
		t.Errorf("comment = %+v", c)
	}

	list, err := s.ListComments(context.Background(), 2544, 20)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(list) != 1 || list[0].Username != "lebron" {
		t.Errorf("comments = %+v", list)
	}
	if got := db.last().args[1]; got != 20 {
		t.Errorf("limit arg = %v", got)
	}
}

func TestSnapshots(t *testing.T) {
	db := newFakeDB()
	payload := json.RawMessage(`{"PTS":100}`)
	db.row["snapshot_insert"] = []any{int64(3), now}
	db.rows["snapshot_list"] = [][]any{
		{int64(3), 2544, int64(1), "rookie year", []byte(payload), now},
	}
	db.execTag["snapshot_prune"] = "DELETE 4"
	s := New(db)

	snap, err := s.AddSnapshot(context.Background(), 2544, 1, "rookie year", payload)
	if err != nil {
		t.Fatalf("AddSnapshot: %v", err)
	}
	if snap.ID != 3 || string(snap.Payload) != `{"PTS":100}` {
		t.Errorf("snapshot = %+v", snap)
	}

	list, err := s.ListSnapshots(context.Background(), 2544, 10)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(list) != 1 || string(list[0].Payload) != `{"PTS":100}` {
		t.Errorf("snapshots = %+v", list)
	}

	n, err := s.PruneSnapshots(context.Background(), now)
	if err != nil || n != 4 {
		t.Errorf("PruneSnapshots = %d, %v", n, err)
	}
}

func TestUpsertPlayers(t *testing.T) {
	db := newFakeDB()
	s := New(db)
	players := []provider.PlayerSummary{
		{ID: 2544, FullName: "LeBron James", FirstName: "LeBron", LastName: "James", IsActive: true, TeamAbbr: "LAL", FromYear: 2003, ToYear: 2024},
		{ID: 76001, FullName: "Alaa Abdelnaby"},
	}

	n, err := s.UpsertPlayers(context.Background(), players)
	if err != nil || n != 2 {
		t.Fatalf("UpsertPlayers = %d, %v", n, err)
	}
	args := db.last().args
	if args[2] != nil || args[6] != nil {
		t.Errorf("blank fields should be NULL, got %v", args)
	}
}

func TestUpsertPlayersStopsOnError(t *testing.T) {
	db := newFakeDB()
	db.execErr["player_upsert"] = errors.New("boom")
	s := New(db)

	n, err := s.UpsertPlayers(context.Background(), []provider.PlayerSummary{{ID: 1, FullName: "A"}})
	if err == nil || n != 0 {
		t.Fatalf("UpsertPlayers = %d, %v", n, err)
	}
}

func TestListPlayers(t *testing.T) {
	db := newFakeDB()
	db.rows["player_list"] = [][]any{
		{2544, "LeBron James", "LeBron", "James", true, "LAL", 2003, 2024},
	}
	s := New(db)

	players, err := s.ListPlayers(context.Background())
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(players) != 1 || !players[0].IsActive || players[0].TeamAbbr != "LAL" {
		t.Errorf("players = %+v", players)
	}
}

func TestTokenRevocation(t *testing.T) {
	db := newFakeDB()
	db.row["token_is_revoked"] = []any{true}
	db.execTag["token_prune"] = "DELETE 2"
	s := New(db)

	if err := s.RevokeToken(context.Background(), "jti-1", 1, now); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	revoked, err := s.IsRevoked(context.Background(), "jti-1")
	if err != nil || !revoked {
		t.Fatalf("IsRevoked = %v, %v", revoked, err)
	}
	n, err := s.PruneRevokedTokens(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("PruneRevokedTokens = %d, %v", n, err)
	}
}
