package stats

import "math"

// Rates are the five per-game averages shown next to a player's totals.
type Rates struct {
	PPG   float64 `json:"PPG"`
	RPG   float64 `json:"RPG"`
	APG   float64 `json:"APG"`
	STLPG float64 `json:"STLPG"`
	BLKPG float64 `json:"BLKPG"`
}

// AggregatedRecord is a stat record paired with its derived per-game rates.
type AggregatedRecord struct {
	Stats StatRecord
	Rates Rates
}

// MarshalJSON flattens the record: every stat code followed by the rates.
func (a AggregatedRecord) MarshalJSON() ([]byte, error) {
	return a.Stats.marshal([]field{
		{"PPG", a.Rates.PPG},
		{"RPG", a.Rates.RPG},
		{"APG", a.Rates.APG},
		{"STLPG", a.Rates.STLPG},
		{"BLKPG", a.Rates.BLKPG},
	})
}

// Aggregate derives per-game rates for a single season record. The input is
// not modified; a null or missing FG3_PCT reads as 0 in the returned stats.
func Aggregate(r StatRecord) AggregatedRecord {
	out := r
	if _, ok := r.Get(CodeFG3Pct); !ok {
		out = r.with(CodeFG3Pct, 0)
	}
	return AggregatedRecord{Stats: out, Rates: perGame(r)}
}

// CareerRates derives the per-game rates for a career totals record. It
// shares its arithmetic with Aggregate, so both paths agree on any record.
func CareerRates(r StatRecord) Rates {
	return perGame(r)
}

// CareerTotals picks the career record from the provider's zero-or-one list.
// ok is false when the player has no career totals.
func CareerTotals(records []StatRecord) (StatRecord, bool) {
	if len(records) == 0 {
		return StatRecord{}, false
	}
	return records[0], true
}

func perGame(r StatRecord) Rates {
	gp := r.Value(CodeGamesPlayed)
	if gp <= 0 {
		return Rates{}
	}
	return Rates{
		PPG:   Round2(r.Value(CodePoints) / gp),
		RPG:   Round2(r.Value(CodeRebounds) / gp),
		APG:   Round2(r.Value(CodeAssists) / gp),
		STLPG: Round2(r.Value(CodeSteals) / gp),
		BLKPG: Round2(r.Value(CodeBlocks) / gp),
	}
}

// Round2 rounds to two decimal places, ties to even.
func Round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
