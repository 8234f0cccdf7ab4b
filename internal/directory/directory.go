// Package directory keeps the NBA player index in memory for name lookups.
//
// The index is loaded from the players table at startup and refreshed from
// stats.nba.com by the maintenance scheduler. Lookups follow the full-name
// matching rules of the home page (case-insensitive substring on the
// title-cased query); Search adds fuzzy ranking when nothing matches exactly.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/albapepper/courtside/internal/metrics"
	"github.com/albapepper/courtside/internal/provider"
)

// similarityThreshold is the minimum Levenshtein similarity for typo matches.
const similarityThreshold = 0.7

// MaxQueryLength is the longest name query, in characters, the index accepts.
const MaxQueryLength = 100

// Source fetches the full player list from the stats provider.
type Source interface {
	AllPlayers(ctx context.Context, season string) ([]provider.PlayerSummary, error)
}

// Store persists the player list between restarts.
type Store interface {
	UpsertPlayers(ctx context.Context, players []provider.PlayerSummary) (int, error)
	ListPlayers(ctx context.Context) ([]provider.PlayerSummary, error)
}

// Directory is a goroutine-safe player index.
type Directory struct {
	mu       sync.RWMutex
	players  []provider.PlayerSummary
	folded   []string // Fold(FullName), parallel to players
	byID     map[int]int
	loadedAt time.Time
}

// New creates an empty Directory.
func New() *Directory {
	return &Directory{byID: map[int]int{}}
}

// Replace swaps in a new player list.
func (d *Directory) Replace(players []provider.PlayerSummary) {
	list := make([]provider.PlayerSummary, len(players))
	copy(list, players)
	folded := make([]string, len(list))
	byID := make(map[int]int, len(list))
	for i, p := range list {
		folded[i] = Fold(p.FullName)
		byID[p.ID] = i
	}

	d.mu.Lock()
	d.players = list
	d.folded = folded
	d.byID = byID
	d.loadedAt = time.Now()
	d.mu.Unlock()

	metrics.DirectoryPlayers.Set(float64(len(list)))
}

// Len returns the number of indexed players.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.players)
}

// LoadedAt returns when the index was last replaced.
func (d *Directory) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}

// Get returns the player with the given id.
func (d *Directory) Get(id int) (provider.PlayerSummary, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.byID[id]
	if !ok {
		return provider.PlayerSummary{}, false
	}
	return d.players[i], true
}

// FindByFullName returns players whose full name contains the title-cased
// query, ignoring case and accents, in index order.
func (d *Directory) FindByFullName(query string) []provider.PlayerSummary {
	q := Fold(TitleCase(strings.TrimSpace(query)))
	if q == "" {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []provider.PlayerSummary
	for i, name := range d.folded {
		if strings.Contains(name, q) {
			out = append(out, d.players[i])
		}
	}
	return out
}

// Search returns full-name matches, falling back to fuzzy ranking when there
// are none. At most limit results are returned; limit <= 0 means no limit.
func (d *Directory) Search(query string, limit int) []provider.PlayerSummary {
	out := d.FindByFullName(query)
	if len(out) == 0 {
		out = d.fuzzy(strings.TrimSpace(query))
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type scored struct {
	idx   int
	score float64
}

// fuzzy ranks in-order character matches first, then close misspellings.
func (d *Directory) fuzzy(query string) []provider.PlayerSummary {
	q := Fold(query)
	if q == "" || len([]rune(q)) > MaxQueryLength {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	ranks := fuzzy.RankFindNormalizedFold(q, d.folded)
	sort.Stable(ranks)

	seen := make(map[int]bool, len(ranks))
	out := make([]provider.PlayerSummary, 0, len(ranks))
	for _, r := range ranks {
		seen[r.OriginalIndex] = true
		out = append(out, d.players[r.OriginalIndex])
	}

	var typos []scored
	for i, name := range d.folded {
		if seen[i] {
			continue
		}
		distance := fuzzy.LevenshteinDistance(q, name)
		maxLen := float64(max(len(q), len(name)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > similarityThreshold {
			typos = append(typos, scored{idx: i, score: similarity})
		}
	}
	sort.SliceStable(typos, func(a, b int) bool { return typos[a].score > typos[b].score })
	for _, s := range typos {
		out = append(out, d.players[s.idx])
	}
	return out
}

// LoadFromStore fills the index from persisted players.
func (d *Directory) LoadFromStore(ctx context.Context, st Store) (int, error) {
	players, err := st.ListPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("load player index: %w", err)
	}
	d.Replace(players)
	return len(players), nil
}

// Refresh pulls the player list from the provider, persists it and swaps it
// in. The in-memory index is left untouched when the fetch fails.
func (d *Directory) Refresh(ctx context.Context, src Source, st Store, season string, logger *slog.Logger) (int, error) {
	start := time.Now()
	players, err := src.AllPlayers(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("fetch player index: %w", err)
	}
	if len(players) == 0 {
		return 0, fmt.Errorf("fetch player index: provider returned no players")
	}

	if st != nil {
		if n, err := st.UpsertPlayers(ctx, players); err != nil {
			logger.Warn("Persisting player index failed", "written", n, "error", err)
		}
	}

	d.Replace(players)
	logger.Info("Player index refreshed", "players", len(players), "season", season, "elapsed", time.Since(start))
	return len(players), nil
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest, treating any non-letter as a word boundary ("o'neal" -> "O'Neal").
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// Fold lower-cases s and strips combining marks, so "Dončić" and "doncic"
// compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
