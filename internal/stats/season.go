package stats

import (
	"errors"
	"fmt"
)

// SeasonCategory is the season breakdown a user picked from the dropdown.
type SeasonCategory int

const (
	Unselected SeasonCategory = iota
	RegularSeason
	PostSeason
)

// ErrUnknownCategory is returned for dropdown values outside the three options.
var ErrUnknownCategory = errors.New("unknown season category")

// Option is a dropdown choice: Value is what clients submit, Label is shown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options lists the dropdown choices in display order.
var Options = []Option{
	{Value: "---", Label: "---"},
	{Value: "Reg. Season", Label: "Regular Season"},
	{Value: "Post Season", Label: "Post Season"},
}

// ParseSeasonCategory maps a submitted dropdown value to a category. An empty
// value means nothing was submitted and yields Unselected.
func ParseSeasonCategory(s string) (SeasonCategory, error) {
	switch s {
	case "", "---":
		return Unselected, nil
	case "Reg. Season":
		return RegularSeason, nil
	case "Post Season":
		return PostSeason, nil
	}
	return Unselected, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// String returns the dropdown value for c.
func (c SeasonCategory) String() string {
	switch c {
	case RegularSeason:
		return "Reg. Season"
	case PostSeason:
		return "Post Season"
	default:
		return "---"
	}
}

// Title is the heading for the chosen breakdown; empty for Unselected.
func (c SeasonCategory) Title() string {
	switch c {
	case RegularSeason:
		return "Regular Season"
	case PostSeason:
		return "Post Season"
	default:
		return ""
	}
}

// Selection is the chosen season breakdown. An empty Title means no selection.
type Selection struct {
	Title   string             `json:"title,omitempty"`
	Seasons []AggregatedRecord `json:"seasons"`
}

// Select aggregates the season list matching c, preserving provider order.
// The list not chosen is ignored.
func Select(c SeasonCategory, regular, post []StatRecord) Selection {
	var src []StatRecord
	switch c {
	case RegularSeason:
		src = regular
	case PostSeason:
		src = post
	default:
		return Selection{Seasons: []AggregatedRecord{}}
	}

	seasons := make([]AggregatedRecord, len(src))
	for i, rec := range src {
		seasons[i] = Aggregate(rec)
	}
	return Selection{Title: c.Title(), Seasons: seasons}
}
