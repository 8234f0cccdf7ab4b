package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/albapepper/courtside/internal/provider"
	"github.com/albapepper/courtside/internal/provider/nbastats"
	"github.com/albapepper/courtside/internal/stats"
	"github.com/albapepper/courtside/internal/store"
)

// fakeProvider serves canned players and counts upstream calls.
type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	err     error
	players map[int]*provider.CareerStats
	infos   map[int]*provider.PlayerInfo
}

func newFakeProvider() *fakeProvider {
	f := 8.0
	career := &provider.CareerStats{
		PlayerID: 2544,
		CareerTotalsRegularSeason: []stats.StatRecord{
			stats.FromFloats(map[string]float64{"GP": 10, "PTS": 255, "REB": 80, "AST": 45, "STL": 12, "BLK": 8}),
		},
		SeasonTotalsRegularSeason: []stats.StatRecord{
			new(stats.Builder).Label("SEASON_ID", "2003-04").Set("GP", &f).Set("PTS", &f).Set("FG3_PCT", nil).Build(),
			stats.FromFloats(map[string]float64{"GP": 2, "PTS": 50}),
		},
		SeasonTotalsPostSeason: []stats.StatRecord{
			stats.FromFloats(map[string]float64{"GP": 4, "PTS": 40}),
		},
	}
	return &fakeProvider{
		players: map[int]*provider.CareerStats{2544: career},
		infos: map[int]*provider.PlayerInfo{
			2544: {ID: 2544, Name: "LeBron James", HeadshotURL: nbastats.HeadshotURL(2544)},
		},
	}
}

func (f *fakeProvider) PlayerCareerStats(_ context.Context, id int) (*provider.CareerStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.players[id]; ok {
		return c, nil
	}
	return &provider.CareerStats{PlayerID: id}, nil
}

func (f *fakeProvider) PlayerInfo(_ context.Context, id int) (*provider.PlayerInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if info, ok := f.infos[id]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("player info %d: %w", id, nbastats.ErrPlayerNotFound)
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memStore is an in-memory profile store.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[string]*store.User
	roster    map[int64][]store.RosterEntry
	profiles  map[int]*store.PlayerProfile
	comments  map[int][]store.Comment
	snapshots map[int][]store.Snapshot
	revoked   map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*store.User{},
		roster:    map[int64][]store.RosterEntry{},
		profiles:  map[int]*store.PlayerProfile{},
		comments:  map[int][]store.Comment{},
		snapshots: map[int][]store.Snapshot{},
		revoked:   map[string]bool{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(_ context.Context, username, email, hash, team string) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; ok {
		return nil, store.ErrDuplicate
	}
	u := &store.User{ID: m.id(), Username: username, Email: email, PasswordHash: hash, FavoriteTeam: team, CreatedAt: time.Now()}
	m.users[username] = u
	return u, nil
}

func (m *memStore) UserByUsername(_ context.Context, username string) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (m *memStore) AddRosterEntry(_ context.Context, userID int64, playerID int, name, img string) (*store.RosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.roster[userID] {
		if e.PlayerID == playerID {
			return nil, store.ErrDuplicate
		}
	}
	e := store.RosterEntry{ID: m.id(), UserID: userID, PlayerID: playerID, PlayerName: name, PlayerImageURL: img, CreatedAt: time.Now()}
	m.roster[userID] = append(m.roster[userID], e)
	return &e, nil
}

func (m *memStore) ListRoster(_ context.Context, userID int64) ([]store.RosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.RosterEntry{}, m.roster[userID]...), nil
}

func (m *memStore) RemoveRosterEntry(_ context.Context, userID int64, playerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.roster[userID]
	for i, e := range entries {
		if e.PlayerID == playerID {
			m.roster[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) UpsertPlayerProfile(_ context.Context, p store.PlayerProfile) (*store.PlayerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.BackgroundColour == "" {
		p.BackgroundColour = store.DefaultBackgroundColour
	}
	p.UpdatedAt = time.Now()
	m.profiles[p.PlayerID] = &p
	return &p, nil
}

func (m *memStore) PlayerProfile(_ context.Context, playerID int) (*store.PlayerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[playerID]; ok {
		return p, nil
	}
	return nil, store.ErrNotFound
}

func (m *memStore) AddComment(_ context.Context, playerID int, userID int64, body string) (*store.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[playerID]; !ok {
		return nil, errors.New("foreign key violation")
	}
	c := store.Comment{ID: m.id(), PlayerID: playerID, UserID: userID, Body: body, CreatedAt: time.Now()}
	m.comments[playerID] = append([]store.Comment{c}, m.comments[playerID]...)
	return &c, nil
}

func (m *memStore) ListComments(_ context.Context, playerID, limit int) ([]store.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]store.Comment{}, m.comments[playerID]...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) AddSnapshot(_ context.Context, playerID int, userID int64, label string, payload json.RawMessage) (*store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[playerID]; !ok {
		return nil, errors.New("foreign key violation")
	}
	s := store.Snapshot{ID: m.id(), PlayerID: playerID, UserID: userID, Label: label, Payload: payload, CreatedAt: time.Now()}
	m.snapshots[playerID] = append([]store.Snapshot{s}, m.snapshots[playerID]...)
	return &s, nil
}

func (m *memStore) ListSnapshots(_ context.Context, playerID, limit int) ([]store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]store.Snapshot{}, m.snapshots[playerID]...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) RevokeToken(_ context.Context, jti string, _ int64, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *memStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck(context.Context) error { return f.err }
